package services

import (
	"encoding/json"
	"testing"

	"github.com/askadauletbek-ux/sola/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDietPlan_WellFormed(t *testing.T) {
	raw := json.RawMessage(`{
		"breakfast":[{"name":"Овсянка","grams":200,"kcal":350}],
		"lunch":[{"name":"Суп","grams":300,"kcal":250}],
		"dinner":[],
		"snack":[{"name":"Яблоко","grams":150,"kcal":80}],
		"total_kcal":680,"protein":30,"fat":15,"carbs":90}`)

	plan, ok := DecodeDietPlan(raw)
	require.True(t, ok)
	require.Len(t, plan.Breakfast, 1)
	assert.Equal(t, "Овсянка", plan.Breakfast[0].Name)
	assert.Equal(t, 680.0, plan.TotalKcal)
	assert.Empty(t, plan.Dinner)
}

func TestDecodeDietPlan_NullAndEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "  "} {
		plan, ok := DecodeDietPlan(json.RawMessage(raw))
		assert.False(t, ok, "raw=%q", raw)
		assert.Nil(t, plan)
	}
}

func TestDecodeDietPlan_EmbeddedStringQuirk(t *testing.T) {
	// The gateway sometimes wraps the plan object in a JSON string.
	inner := `{"breakfast":[{"name":"Каша","grams":200,"kcal":300}],"total_kcal":300}`
	raw, _ := json.Marshal(inner)

	plan, ok := DecodeDietPlan(raw)
	require.True(t, ok)
	require.Len(t, plan.Breakfast, 1)
	assert.Equal(t, "Каша", plan.Breakfast[0].Name)
	assert.Equal(t, 300.0, plan.TotalKcal)
}

func TestDecodeDietPlan_StringWithoutObjectFails(t *testing.T) {
	plan, ok := DecodeDietPlan(json.RawMessage(`"сделаю позже"`))
	assert.False(t, ok)
	assert.Nil(t, plan)
}

func TestDecodeDietPlan_BareArrayFails(t *testing.T) {
	plan, ok := DecodeDietPlan(json.RawMessage(`[{"name":"x"}]`))
	assert.False(t, ok)
	assert.Nil(t, plan)
}

func TestDecodeDietPlan_BadSlotDoesNotVoidOthers(t *testing.T) {
	raw := json.RawMessage(`{
		"breakfast":[{"name":"Омлет","grams":200,"kcal":300}],
		"lunch":"забыл",
		"dinner":[{"name":"Рыба","grams":250,"kcal":400},"мусор",{"name":"Овощи","grams":100,"kcal":50}],
		"snack":42,
		"total_kcal":"750","protein":null}`)

	plan, ok := DecodeDietPlan(raw)
	require.True(t, ok)
	assert.Len(t, plan.Breakfast, 1)
	assert.Empty(t, plan.Lunch)
	assert.Len(t, plan.Dinner, 2) // the non-object entry is skipped
	assert.Empty(t, plan.Snack)
	assert.Equal(t, 750.0, plan.TotalKcal) // numeric string coerced
	assert.Equal(t, 0.0, plan.Protein)
}

func TestPlanFromRecord_BrokenColumnDegrades(t *testing.T) {
	d := &models.Diet{
		Breakfast: `[{"name":"Сырники","grams":180,"kcal":320}]`,
		Lunch:     `{broken`,
		Dinner:    "",
		TotalKcal: 320,
	}
	plan := PlanFromRecord(d)
	require.NotNil(t, plan)
	assert.Len(t, plan.Breakfast, 1)
	assert.Empty(t, plan.Lunch)
	assert.Empty(t, plan.Dinner)
	assert.Equal(t, 320.0, plan.TotalKcal)
}

func TestPlanFromRecord_Nil(t *testing.T) {
	assert.Nil(t, PlanFromRecord(nil))
}

func TestFormatDietPlan_Nil(t *testing.T) {
	assert.Equal(t, "", FormatDietPlan(nil))
}

func TestFormatDietPlan_EmptyPlanStillHasTotals(t *testing.T) {
	out := FormatDietPlan(&DietPlan{})
	assert.Contains(t, out, "Итого")
	assert.NotContains(t, out, "Завтрак")
}

func TestFormatDietPlan_FullPlan(t *testing.T) {
	plan := &DietPlan{
		Breakfast: []MealEntry{{Name: "Овсянка", Grams: 200, Kcal: 350}},
		Lunch:     []MealEntry{{Grams: 300, Kcal: 550}}, // nameless entry
		TotalKcal: 900, Protein: 60, Fat: 30, Carbs: 100,
	}
	out := FormatDietPlan(plan)
	assert.Contains(t, out, "🍳 Завтрак")
	assert.Contains(t, out, "- Овсянка (200г) — 350 ккал")
	assert.Contains(t, out, "Блюдо") // placeholder for the missing name
	assert.Contains(t, out, "🔥 **Итого:** 900 ккал (Б: 60 / Ж: 30 / У: 100)")
	assert.NotContains(t, out, "Ужин")
}

func TestSummary_NilPlan(t *testing.T) {
	var p *DietPlan
	assert.Equal(t, "Диета пуста.", p.Summary())
}

func TestSummary_RoundTrips(t *testing.T) {
	p := &DietPlan{Breakfast: []MealEntry{{Name: "Каша"}}, TotalKcal: 300}
	var back DietPlan
	require.NoError(t, json.Unmarshal([]byte(p.Summary()), &back))
	assert.Equal(t, *p, back)
}
