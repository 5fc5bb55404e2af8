package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Turn is one role-tagged message of a conversation.
type Turn struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// CompletionOptions are the generation parameters for one gateway call.
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int32
	JSONMode    bool // request machine-parseable output; best effort, not a guarantee
}

// CompletionClient is the completion gateway. Implementations may fail
// or return malformed content; callers own the recovery.
type CompletionClient interface {
	Complete(ctx context.Context, turns []Turn, opts CompletionOptions) (string, error)
}

type geminiCompletion struct {
	client *genai.Client
	model  string
}

// NewGeminiCompletion builds the production gateway from SOLA_MODEL and
// GEMINI_API_KEY. A missing key is not fatal here; calls will fail and
// the assistant degrades to soft errors.
func NewGeminiCompletion(ctx context.Context) (CompletionClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := os.Getenv("SOLA_MODEL")
	if model == "" {
		model = "gemini-1.5-pro"
	}
	return &geminiCompletion{client: client, model: model}, nil
}

func (g *geminiCompletion) Complete(ctx context.Context, turns []Turn, opts CompletionOptions) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxTokens)
	}
	if opts.JSONMode {
		model.ResponseMIMEType = "application/json"
	}

	var system []genai.Part
	var history []*genai.Content
	for _, t := range turns {
		switch t.Role {
		case "system":
			system = append(system, genai.Text(t.Content))
		case "assistant":
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(t.Content)}})
		default:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(t.Content)}})
		}
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{Parts: system}
	}
	if len(history) == 0 {
		return "", errors.New("no user turns to send")
	}

	last := history[len(history)-1]
	chat := model.StartChat()
	chat.History = history[:len(history)-1]

	resp, err := chat.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty completion")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", errors.New("completion contained no text")
	}
	return out, nil
}
