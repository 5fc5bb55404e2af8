package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal values stored on User.Goal.
const (
	GoalLoseFat    = "lose_fat"
	GoalGainMuscle = "gain_muscle"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Name     string
	Sex      string // "male" | "female" | ""
	Birthday time.Time

	// Goals set during onboarding
	Goal        string  // lose_fat | gain_muscle | ""
	StartWeight float64 // kg
	WeightGoal  float64 // kg
	FatMassGoal float64 // kg

	// Daily targets used by streak bookkeeping
	DailyCalories float64
	StepGoal      int

	// Recomputed by StreakService, denormalized for cheap reads
	StreakNutrition int
	StreakActivity  int
	CurrentStreak   int
}
