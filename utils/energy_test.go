package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMifflinStJeor_MaleForm(t *testing.T) {
	// 10*80 + 6.25*180 - 5*30 + 5
	assert.Equal(t, 1780.0, MifflinStJeor("male", 80, 180, 30))
}

func TestMifflinStJeor_FemaleForm(t *testing.T) {
	// 10*60 + 6.25*165 - 5*25 - 161
	assert.Equal(t, 1345.25, MifflinStJeor("female", 60, 165, 25))
}

func TestMifflinStJeor_UnknownSexUsesFemaleForm(t *testing.T) {
	assert.Equal(t, MifflinStJeor("female", 60, 165, 25), MifflinStJeor("", 60, 165, 25))
}

func TestActivityMultiplier_Tiers(t *testing.T) {
	tests := []struct {
		steps int
		want  float64
	}{
		{0, 1.2},
		{4999, 1.2},
		{5000, 1.375},
		{8000, 1.375},
		{9999, 1.375},
		{10000, 1.55},
		{25000, 1.55},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ActivityMultiplier(tt.steps), "steps=%d", tt.steps)
	}
}

func TestTargetCalories_FatLossExample(t *testing.T) {
	in := EnergyInput{
		Sex:      "male",
		WeightKg: 80,
		HeightCm: 180,
		AgeYears: 30,
		AvgSteps: 8000,
		Goal:     "lose_fat",
	}
	// BMR 1780, TDEE 1780*1.375 = 2447.5, target floor(2447.5*0.85) = 2080
	assert.Equal(t, 2080, TargetCalories(in))
}

func TestTargetCalories_Deterministic(t *testing.T) {
	in := EnergyInput{Sex: "female", WeightKg: 62, HeightCm: 165, AgeYears: 28, AvgSteps: 12000, Goal: "gain_muscle"}
	first := TargetCalories(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, TargetCalories(in))
	}
}

func TestTargetCalories_MuscleGainSurplus(t *testing.T) {
	base := EnergyInput{Sex: "male", WeightKg: 80, HeightCm: 180, AgeYears: 30, AvgSteps: 8000}
	gain := base
	gain.Goal = "gain_muscle"
	assert.Greater(t, TargetCalories(gain), TargetCalories(base))
}

func TestTargetCalories_NoGoalIsPlainTDEE(t *testing.T) {
	in := EnergyInput{Sex: "male", WeightKg: 80, HeightCm: 180, AgeYears: 30, AvgSteps: 2000}
	// 1780 * 1.2 = 2136
	assert.Equal(t, 2136, TargetCalories(in))
}

func TestTargetCalories_MeasuredBMRWins(t *testing.T) {
	in := EnergyInput{
		Sex:         "male",
		WeightKg:    80,
		HeightCm:    180,
		AgeYears:    30,
		AvgSteps:    2000,
		MeasuredBMR: 2000,
	}
	// 2000 * 1.2 = 2400, formula ignored
	assert.Equal(t, 2400, TargetCalories(in))
}

func TestTargetCalories_FatLossNeverBelowBMR(t *testing.T) {
	in := EnergyInput{Sex: "male", WeightKg: 80, HeightCm: 180, AgeYears: 30, AvgSteps: 0, Goal: "lose_fat"}
	assert.GreaterOrEqual(t, float64(TargetCalories(in)), 1780.0)
}
