package services

import (
	"context"
	"log"
	"strings"
)

// IntentLabel is the classified purpose of one user chat turn.
type IntentLabel string

const (
	IntentGenerate IntentLabel = "generate"
	IntentDiet     IntentLabel = "diet"
	IntentMetrics  IntentLabel = "metrics"
	IntentGeneral  IntentLabel = "general"
)

const classificationPrompt = `Определи намерение пользователя:
1. 'Генерация' - если просит НОВЫЙ рацион с нуля.
2. 'Диета' - если хочет изменить ТЕКУЩУЮ диету или спрашивает о ней.
3. 'Показатели' - анализ веса/прогресса.
4. 'Общее' - остальное.
Ответь ОДНИМ словом.`

// IntentClassifier maps one user utterance onto a closed label set with
// a single low-temperature gateway call.
type IntentClassifier struct {
	llm CompletionClient
}

func NewIntentClassifier(llm CompletionClient) *IntentClassifier {
	return &IntentClassifier{llm: llm}
}

// Classify never blocks the conversation: a failed call or an
// unrecognized answer falls open to IntentGeneral.
func (c *IntentClassifier) Classify(ctx context.Context, lastTurn Turn) IntentLabel {
	turns := []Turn{
		{Role: "system", Content: classificationPrompt},
		lastTurn,
	}
	raw, err := c.llm.Complete(ctx, turns, CompletionOptions{
		Temperature: 0.3,
		MaxTokens:   20,
	})
	if err != nil {
		log.Printf("intent classification failed, falling back to general: %v", err)
		return IntentGeneral
	}
	return MatchIntent(raw)
}

// MatchIntent maps a classifier answer onto a label. Matching is
// substring-based and case-insensitive; the model answers in Russian or
// English depending on its mood.
func MatchIntent(answer string) IntentLabel {
	lowered := strings.ToLower(answer)
	switch {
	case strings.Contains(lowered, "генерац") || strings.Contains(lowered, "generat"):
		return IntentGenerate
	case strings.Contains(lowered, "диет") || strings.Contains(lowered, "diet"):
		return IntentDiet
	case strings.Contains(lowered, "показател") || strings.Contains(lowered, "metric") || strings.Contains(lowered, "progress"):
		return IntentMetrics
	default:
		return IntentGeneral
	}
}
