package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/askadauletbek-ux/sola/models"
	"github.com/askadauletbek-ux/sola/utils"
)

// MealEntry is one dish inside a meal slot. Grams and kcal are advisory;
// the entry has no identity beyond its position.
type MealEntry struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
	Kcal  float64 `json:"kcal"`
}

// DietPlan is a full day of meals: four slots plus macro totals. It is a
// value object; persistence lives in models.Diet.
type DietPlan struct {
	Breakfast []MealEntry `json:"breakfast"`
	Lunch     []MealEntry `json:"lunch"`
	Dinner    []MealEntry `json:"dinner"`
	Snack     []MealEntry `json:"snack"`
	TotalKcal float64     `json:"total_kcal"`
	Protein   float64     `json:"protein"`
	Fat       float64     `json:"fat"`
	Carbs     float64     `json:"carbs"`
}

// DecodeDietPlan coerces a loosely shaped diet_plan value into a
// DietPlan. The gateway occasionally returns the plan as a string
// containing JSON instead of a nested object, so a string value gets a
// second parse pass. Each slot and total is coerced independently: one
// malformed slot becomes an empty list without voiding the rest.
// Returns nil, false when no object shape can be recovered.
func DecodeDietPlan(raw json.RawMessage) (*DietPlan, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, false
	}

	// Second parse pass for the embedded-string quirk.
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil, false
		}
		obj, err := utils.ExtractJSONObject(inner)
		if err != nil {
			return nil, false
		}
		trimmed = obj
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return nil, false
	}

	return &DietPlan{
		Breakfast: coerceSlot(fields["breakfast"]),
		Lunch:     coerceSlot(fields["lunch"]),
		Dinner:    coerceSlot(fields["dinner"]),
		Snack:     coerceSlot(fields["snack"]),
		TotalKcal: utils.AsNumber(fields["total_kcal"]),
		Protein:   utils.AsNumber(fields["protein"]),
		Fat:       utils.AsNumber(fields["fat"]),
		Carbs:     utils.AsNumber(fields["carbs"]),
	}, true
}

// coerceSlot turns a loosely typed slot value into a list of entries.
// Absent or wrong-typed slots become an empty list; entries that are not
// objects are skipped.
func coerceSlot(v any) []MealEntry {
	items, ok := v.([]any)
	if !ok {
		return []MealEntry{}
	}
	entries := make([]MealEntry, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		entries = append(entries, MealEntry{
			Name:  name,
			Grams: utils.AsNumber(obj["grams"]),
			Kcal:  utils.AsNumber(obj["kcal"]),
		})
	}
	return entries
}

// PlanFromRecord rebuilds the value object from a persisted row. Broken
// slot JSON in the database degrades to an empty slot.
func PlanFromRecord(d *models.Diet) *DietPlan {
	if d == nil {
		return nil
	}
	decode := func(col string) []MealEntry {
		var entries []MealEntry
		if col == "" || json.Unmarshal([]byte(col), &entries) != nil {
			return []MealEntry{}
		}
		return entries
	}
	return &DietPlan{
		Breakfast: decode(d.Breakfast),
		Lunch:     decode(d.Lunch),
		Dinner:    decode(d.Dinner),
		Snack:     decode(d.Snack),
		TotalKcal: d.TotalKcal,
		Protein:   d.Protein,
		Fat:       d.Fat,
		Carbs:     d.Carbs,
	}
}

// Summary serializes the plan for inclusion in a prompt.
func (p *DietPlan) Summary() string {
	if p == nil {
		return "Диета пуста."
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "Диета пуста."
	}
	return string(data)
}

func marshalSlot(entries []MealEntry) string {
	if entries == nil {
		entries = []MealEntry{}
	}
	data, _ := json.Marshal(entries)
	return string(data)
}

var slotTitles = []struct {
	slot  func(*DietPlan) []MealEntry
	title string
}{
	{func(p *DietPlan) []MealEntry { return p.Breakfast }, "🍳 Завтрак"},
	{func(p *DietPlan) []MealEntry { return p.Lunch }, "🍲 Обед"},
	{func(p *DietPlan) []MealEntry { return p.Dinner }, "🥗 Ужин"},
	{func(p *DietPlan) []MealEntry { return p.Snack }, "🥜 Перекус"},
}

// FormatDietPlan renders a plan as chat text. Pure and total: a nil plan
// yields an empty string, missing item fields fall back to placeholders.
func FormatDietPlan(p *DietPlan) string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\n🍽 **Твой план питания:**\n")

	for _, s := range slotTitles {
		items := s.slot(p)
		if len(items) == 0 {
			continue
		}
		sb.WriteString("\n**" + s.title + ":**")
		for _, item := range items {
			name := item.Name
			if name == "" {
				name = "Блюдо"
			}
			sb.WriteString(fmt.Sprintf("\n- %s (%.0fг) — %.0f ккал", name, item.Grams, item.Kcal))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n🔥 **Итого:** %.0f ккал (Б: %.0f / Ж: %.0f / У: %.0f)",
		p.TotalKcal, p.Protein, p.Fat, p.Carbs))

	return sb.String()
}
