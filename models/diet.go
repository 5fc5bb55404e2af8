package models

import (
	"time"

	"gorm.io/gorm"
)

// Diet is the single active meal plan for one user and one day.
// The four slot columns store serialized []MealEntry; the invariant of
// at most one row per (user_id, date) is kept by DietService's
// delete-then-insert on generation.
type Diet struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"` // truncated to local midnight

	Breakfast string // JSON list of MealEntry
	Lunch     string
	Dinner    string
	Snack     string

	TotalKcal float64
	Protein   float64
	Fat       float64
	Carbs     float64
}
