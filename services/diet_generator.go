package services

import (
	"fmt"
	"strings"

	"github.com/askadauletbek-ux/sola/utils"
)

// minPlausibleKcal is the post-hoc sanity floor on a generated plan.
// Anything below it is rejected without a store write.
const minPlausibleKcal = 500

// Population defaults used only in estimate mode, when the user opted
// in to a plan built without real measurements.
var estimateDefaults = map[string]struct {
	heightCm float64
	weightKg float64
	age      int
}{
	"male":   {heightCm: 175, weightKg: 75, age: 30},
	"female": {heightCm: 165, weightKg: 62, age: 30},
}

const generationPromptTemplate = `Ты — Sola, персональный нутрициолог. Задача: составить рацион на день.

ПОЛЬЗОВАТЕЛЬ: %s, Пол: %s.
Данные: %s

ЦЕЛЕВАЯ КАЛОРИЙНОСТЬ: %d ккал. Это жёсткое ограничение: суммарная калорийность рациона должна быть близка к этой цифре.

ПРАВИЛА:
1. Если ЦЕЛЬ пользователя не ясна — задай вопрос в 'chat_message', 'diet_plan' = null.
2. Если цель есть — сгенерируй рацион.
   - В 'chat_message' напиши ТОЛЬКО короткое мотивирующее вступление. НЕ пиши список блюд сюда.
   - В 'diet_plan' положи полный JSON.

ФОРМАТ (JSON):
{
  "chat_message": "Вступление...",
  "diet_plan": { "breakfast": [...], "lunch": [...], "dinner": [...], "snack": [...], "total_kcal": 0, "protein": 0, "fat": 0, "carbs": 0 } ИЛИ null
}
Каждый элемент слота: {"name": "...", "grams": 0, "kcal": 0}.`

const modifyPromptTemplate = `Ты — Sola. Текущий рацион (JSON): %s

Верни JSON СТРОГО одного из двух типов:

ТИП 1 (Вопрос о рационе): "что на ужин?", "сколько белка?".
{ "action": "answer", "text": "Твой ответ..." }

ТИП 2 (Изменение): "не нравится", "хочу другое", "убери рыбу".
{
  "action": "update",
  "text": "Короткий комментарий. НЕ пиши сюда список блюд.",
  "diet_plan": { ...полностью новая структура всех четырёх приёмов и итогов... }
}
ВАЖНО: 'diet_plan' всегда ПОЛНАЯ замена, не частичная правка. Если "не нравится" без деталей — предложи полностью новый сбалансированный вариант.`

const generalPromptTemplate = `Ты — Sola, помощник приложения Kilogr.
Пользователь: %s, Пол: %s.
Профиль: %s
Текущий рацион: %s`

// energyInput assembles the deterministic calorie-target inputs from the
// context snapshot. Returns the missing required field names (Russian,
// user-facing) when the gate should refuse; estimated reports whether
// population defaults were substituted.
func (s *AssistantService) energyInput(uc UserContext, allowEstimate bool) (in utils.EnergyInput, missing []string, estimated bool) {
	in = utils.EnergyInput{
		Sex:         uc.Profile.Gender,
		WeightKg:    uc.Metrics.Weight,
		HeightCm:    uc.Metrics.Height,
		AgeYears:    uc.Profile.Age,
		AvgSteps:    uc.Activity.AvgWeeklySteps,
		Goal:        uc.Profile.Goal,
		MeasuredBMR: uc.Metrics.Metabolism,
	}

	if in.WeightKg <= 0 {
		missing = append(missing, "вес")
	}
	if in.HeightCm <= 0 {
		missing = append(missing, "рост")
	}
	if in.AgeYears <= 0 {
		missing = append(missing, "возраст")
	}
	if len(missing) == 0 {
		return in, nil, false
	}
	if !allowEstimate {
		return in, missing, false
	}

	sex := in.Sex
	if _, ok := estimateDefaults[sex]; !ok {
		sex = "female" // conservative default
	}
	def := estimateDefaults[sex]
	if in.WeightKg <= 0 {
		in.WeightKg = def.weightKg
	}
	if in.HeightCm <= 0 {
		in.HeightCm = def.heightCm
	}
	if in.AgeYears <= 0 {
		in.AgeYears = def.age
	}
	return in, nil, true
}

func targetFromInput(in utils.EnergyInput) int {
	return utils.TargetCalories(in)
}

func missingDataMessage(missing []string) string {
	return fmt.Sprintf(
		"Чтобы составить точный рацион, мне не хватает данных: %s. Обновите профиль или загрузите замер с весов — либо попросите примерный план.",
		strings.Join(missing, ", "))
}
