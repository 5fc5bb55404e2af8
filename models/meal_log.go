package models

import (
	"time"

	"gorm.io/gorm"
)

// MealLog is one logged eaten meal; streaks and the deficit history are
// aggregated from these rows.
type MealLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null"`
	Date     time.Time `gorm:"index;not null"`
	Name     string
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}
