package services

import (
	"encoding/json"

	"github.com/askadauletbek-ux/sola/utils"
)

// ReplyKind discriminates the shapes the modify-or-ask protocol allows.
type ReplyKind int

const (
	ReplyParseFailure ReplyKind = iota
	ReplyAnswer
	ReplyUpdate
)

// ModifyReply is the decoded discriminated union of the modify-or-ask
// gateway response. Kind ReplyUpdate with a nil Plan means the action
// was recognized but the plan could not be recovered; the caller must
// not touch the store in that case.
type ModifyReply struct {
	Kind ReplyKind
	Text string
	Plan *DietPlan
}

type rawModifyReply struct {
	Action   string          `json:"action"`
	Text     string          `json:"text"`
	DietPlan json.RawMessage `json:"diet_plan"`
}

// DecodeModifyReply parses raw gateway output into a ModifyReply.
// Anything that is not a top-level object with a known action collapses
// to ReplyParseFailure.
func DecodeModifyReply(raw string) ModifyReply {
	var r rawModifyReply
	if err := utils.DecodeObject(raw, &r); err != nil {
		return ModifyReply{Kind: ReplyParseFailure}
	}

	switch r.Action {
	case "answer":
		return ModifyReply{Kind: ReplyAnswer, Text: r.Text}
	case "update":
		plan, ok := DecodeDietPlan(r.DietPlan)
		if !ok {
			return ModifyReply{Kind: ReplyUpdate, Text: r.Text, Plan: nil}
		}
		return ModifyReply{Kind: ReplyUpdate, Text: r.Text, Plan: plan}
	default:
		return ModifyReply{Kind: ReplyParseFailure}
	}
}

// GenerationReply is the decoded response of the generation scenario.
// Plan is nil when the model chose to ask a clarifying question instead
// of producing a plan.
type GenerationReply struct {
	Message string
	Plan    *DietPlan
}

type rawGenerationReply struct {
	ChatMessage string          `json:"chat_message"`
	DietPlan    json.RawMessage `json:"diet_plan"`
}

// DecodeGenerationReply parses raw gateway output from the generation
// prompt. ok is false when no object shape could be recovered at all.
func DecodeGenerationReply(raw string) (GenerationReply, bool) {
	var r rawGenerationReply
	if err := utils.DecodeObject(raw, &r); err != nil {
		return GenerationReply{}, false
	}

	reply := GenerationReply{Message: r.ChatMessage}
	if plan, ok := DecodeDietPlan(r.DietPlan); ok {
		reply.Plan = plan
	}
	return reply, true
}
