package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Generation temperatures per scenario.
const (
	defaultTemperature float32 = 0.5
	dietTemperature    float32 = 0.7
)

// User-facing soft-failure copy. Every reachable path answers in chat
// shape; these are the anticipated-error branches.
const (
	msgGatewaySilent    = "ИИ не ответил. Попробуйте еще раз."
	msgGenerationFailed = "Ошибка генерации. Попробуйте еще раз."
	msgModifyFailed     = "Не удалось обработать запрос. Попробуйте переформулировать."
	msgPlanRebuildFail  = "Не удалось перестроить план."
	msgNoActiveDiet     = "У вас еще нет активной диеты. Напишите 'Составь рацион'!"
	msgNoBodyAnalysis   = "Нет данных анализа тела. Загрузите замер с весов!"
	msgImplausiblePlan  = "План получился неправдоподобным, я не стал его сохранять. Попробуйте еще раз."
	estimateDisclaimer  = "\n\n⚠️ Это примерный план: он построен по усреднённым данным, а не по вашим замерам."
)

// Notifier delivers a user notification; best effort, must never block
// or fail the chat response.
type Notifier interface {
	Notify(userID uint, title, body string, data map[string]string)
}

// Tracker emits a product analytics event; same best-effort contract.
type Tracker interface {
	Track(userID uint, event string, props map[string]any)
}

// ChatReply is the chat-shaped outcome of one handled message.
type ChatReply struct {
	Role    string `json:"role"` // always "ai" for handled outcomes
	Content string `json:"content"`
}

// AssistantService is the scenario router: it classifies one user
// message, dispatches to a scenario, reconciles the diet record and
// always produces a chat-shaped reply. There is no cross-request state
// machine; the persisted diet row is the only carried state.
type AssistantService struct {
	classifier *IntentClassifier
	llm        CompletionClient
	diets      DietStore
	contexts   ContextSource
	history    HistoryStore
	notifier   Notifier
	tracker    Tracker
}

func NewAssistantService(
	llm CompletionClient,
	diets DietStore,
	contexts ContextSource,
	history HistoryStore,
	notifier Notifier,
	tracker Tracker,
) *AssistantService {
	return &AssistantService{
		classifier: NewIntentClassifier(llm),
		llm:        llm,
		diets:      diets,
		contexts:   contexts,
		history:    history,
		notifier:   notifier,
		tracker:    tracker,
	}
}

// HandleChat runs one full classify → route → reconcile → respond cycle.
// It never returns an error: gateway and parsing failures become soft
// replies and the conversation stays alive.
func (s *AssistantService) HandleChat(ctx context.Context, userID uint, message string, allowEstimate bool) ChatReply {
	turns := append(s.history.Get(userID), Turn{Role: "user", Content: message})

	label := s.classifier.Classify(ctx, turns[len(turns)-1])
	uc := s.contexts.Build(userID)

	var reply string
	switch label {
	case IntentGenerate:
		reply = s.generateScenario(ctx, userID, uc, turns, allowEstimate)
	case IntentDiet:
		reply = s.modifyScenario(ctx, userID, message)
	case IntentMetrics:
		reply = s.metricsScenario(ctx, userID, message)
	default:
		reply = s.generalScenario(ctx, userID, uc, turns)
	}

	turns = append(turns, Turn{Role: "assistant", Content: reply})
	s.history.Put(userID, turns)

	return ChatReply{Role: "ai", Content: reply}
}

// History exposes the session buffer for the history endpoint.
func (s *AssistantService) History(userID uint) []Turn {
	return s.history.Get(userID)
}

// ClearHistory drops the session buffer.
func (s *AssistantService) ClearHistory(userID uint) {
	s.history.Clear(userID)
}

// complete converts every gateway failure into an empty string, the
// sentinel the scenarios check explicitly. No retries: one failed call
// is one soft error.
func (s *AssistantService) complete(ctx context.Context, turns []Turn, opts CompletionOptions) string {
	out, err := s.llm.Complete(ctx, turns, opts)
	if err != nil {
		log.Printf("completion gateway call failed: %v", err)
		return ""
	}
	return out
}

// ---------------------------------------------------------------
// Scenario: Generate. Build a brand-new plan for today.
// ---------------------------------------------------------------

func (s *AssistantService) generateScenario(ctx context.Context, userID uint, uc UserContext, turns []Turn, allowEstimate bool) string {
	input, missing, estimated := s.energyInput(uc, allowEstimate)
	if len(missing) > 0 {
		// Data-completeness gate: no guessing without explicit opt-in,
		// no gateway call, no store write.
		return missingDataMessage(missing)
	}

	target := targetFromInput(input)
	ucJSON, _ := json.Marshal(uc)

	system := fmt.Sprintf(generationPromptTemplate, uc.Profile.Name, uc.Profile.Gender, string(ucJSON), target)
	raw := s.complete(ctx, append([]Turn{{Role: "system", Content: system}}, turns...), CompletionOptions{
		Temperature: dietTemperature,
		MaxTokens:   2000,
		JSONMode:    true,
	})
	if raw == "" {
		return msgGatewaySilent
	}

	rep, ok := DecodeGenerationReply(raw)
	if !ok {
		return msgGenerationFailed
	}

	intro := rep.Message
	if intro == "" {
		intro = "Готово!"
	}
	if rep.Plan == nil {
		// The model asked a clarifying question instead of producing a plan.
		return intro
	}
	if rep.Plan.TotalKcal < minPlausibleKcal {
		return msgImplausiblePlan
	}

	if _, err := s.diets.ReplaceForDate(userID, time.Now(), rep.Plan); err != nil {
		log.Printf("diet insert failed for user %d: %v", userID, err)
		return msgGenerationFailed
	}

	final := intro + "\n" + FormatDietPlan(rep.Plan)
	if estimated {
		final += estimateDisclaimer
	}

	if s.notifier != nil {
		s.notifier.Notify(userID, "Новый план питания", "Рацион на сегодня готов 🍽", map[string]string{"kind": "diet"})
	}
	if s.tracker != nil {
		s.tracker.Track(userID, "diet_generated", map[string]any{
			"target_kcal": target,
			"total_kcal":  rep.Plan.TotalKcal,
			"estimated":   estimated,
		})
	}

	return final
}

// ---------------------------------------------------------------
// Scenario: ModifyOrAsk. Answer about or replace the current plan.
// ---------------------------------------------------------------

func (s *AssistantService) modifyScenario(ctx context.Context, userID uint, message string) string {
	current, err := s.diets.Active(userID)
	if err != nil {
		log.Printf("diet lookup failed for user %d: %v", userID, err)
		return msgModifyFailed
	}
	if current == nil {
		return msgNoActiveDiet
	}

	system := fmt.Sprintf(modifyPromptTemplate, PlanFromRecord(current).Summary())
	raw := s.complete(ctx, []Turn{
		{Role: "system", Content: system},
		{Role: "user", Content: message},
	}, CompletionOptions{
		Temperature: dietTemperature,
		MaxTokens:   2000,
		JSONMode:    true,
	})
	if raw == "" {
		return msgGatewaySilent
	}

	rep := DecodeModifyReply(raw)
	switch rep.Kind {
	case ReplyAnswer:
		// Read-only branch: the record is untouched by construction.
		return rep.Text

	case ReplyUpdate:
		if rep.Plan == nil {
			return msgPlanRebuildFail
		}
		if err := s.diets.Overwrite(current, rep.Plan); err != nil {
			log.Printf("diet overwrite failed for user %d: %v", userID, err)
			return msgPlanRebuildFail
		}
		if s.tracker != nil {
			s.tracker.Track(userID, "diet_updated", map[string]any{"total_kcal": rep.Plan.TotalKcal})
		}
		text := rep.Text
		if text == "" {
			text = "Готово."
		}
		return text + "\n" + FormatDietPlan(rep.Plan)

	default:
		return msgModifyFailed
	}
}

// ---------------------------------------------------------------
// Scenario: Metrics. Comment on the latest body analysis.
// ---------------------------------------------------------------

func (s *AssistantService) metricsScenario(ctx context.Context, userID uint, message string) string {
	ba, err := s.contexts.LatestAnalysis(userID)
	if err != nil {
		log.Printf("body analysis lookup failed for user %d: %v", userID, err)
		return msgGatewaySilent
	}
	if ba == nil {
		return msgNoBodyAnalysis
	}

	raw := s.complete(ctx, []Turn{
		{Role: "system", Content: "Ты — фитнес-аналитик. Дай короткий совет по данным замера."},
		{Role: "user", Content: fmt.Sprintf("Данные: %s. Вопрос: %s", formatBodySummary(ba), message)},
	}, CompletionOptions{Temperature: defaultTemperature, MaxTokens: 1000})
	if raw == "" {
		return msgGatewaySilent
	}
	return raw
}

// ---------------------------------------------------------------
// Scenario: General. Open-ended chat grounded in the profile.
// ---------------------------------------------------------------

func (s *AssistantService) generalScenario(ctx context.Context, userID uint, uc UserContext, turns []Turn) string {
	profileJSON, _ := json.Marshal(uc.Profile)

	dietSummary := "Диета пуста."
	if current, err := s.diets.Active(userID); err == nil && current != nil {
		dietSummary = PlanFromRecord(current).Summary()
	}

	system := fmt.Sprintf(generalPromptTemplate, uc.Profile.Name, uc.Profile.Gender, string(profileJSON), dietSummary)
	raw := s.complete(ctx, append([]Turn{{Role: "system", Content: system}}, turns...), CompletionOptions{
		Temperature: defaultTemperature,
		MaxTokens:   1000,
	})
	if raw == "" {
		return msgGatewaySilent
	}
	return raw
}
