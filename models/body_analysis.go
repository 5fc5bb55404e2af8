package models

import (
	"gorm.io/gorm"
)

// BodyAnalysis is one smart-scale measurement. Rows are append-only;
// the assistant always reads the most recent one.
type BodyAnalysis struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`

	Weight     float64 // kg
	Height     float64 // cm
	FatMass    float64 // kg
	MuscleMass float64 // kg
	Metabolism float64 // measured basal rate, kcal/day; 0 if the scale did not report it
	BMI        float64
}
