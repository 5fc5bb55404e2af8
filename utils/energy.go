package utils

import "math"

// EnergyInput carries everything the calorie-target calculation needs.
// MeasuredBMR, when > 0, is a metabolic rate reported by the scale and
// takes precedence over the formula.
type EnergyInput struct {
	Sex         string // "male" | "female"
	WeightKg    float64
	HeightCm    float64
	AgeYears    int
	AvgSteps    int
	Goal        string // models.GoalLoseFat | models.GoalGainMuscle | ""
	MeasuredBMR float64
}

// MifflinStJeor returns the resting energy expenditure in kcal/day.
// Male form ends in +5, female in -161; anything else uses the female
// form as the more conservative estimate.
func MifflinStJeor(sex string, weightKg, heightCm float64, ageYears int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == "male" {
		return base + 5
	}
	return base - 161
}

// ActivityMultiplier maps a trailing-7-day average step count onto a
// three-tier TDEE multiplier.
func ActivityMultiplier(avgSteps int) float64 {
	switch {
	case avgSteps < 5000:
		return 1.2
	case avgSteps < 10000:
		return 1.375
	default:
		return 1.55
	}
}

// TargetCalories computes the daily calorie budget for diet generation.
// A fat-loss goal applies a 15% deficit but never drops below the
// resting rate; a muscle-gain goal applies a 10% surplus. The result is
// floored to a whole number only at the very end so the same inputs
// always give the same output.
func TargetCalories(in EnergyInput) int {
	bmr := in.MeasuredBMR
	if bmr <= 0 {
		bmr = MifflinStJeor(in.Sex, in.WeightKg, in.HeightCm, in.AgeYears)
	}

	tdee := bmr * ActivityMultiplier(in.AvgSteps)

	target := tdee
	switch in.Goal {
	case "lose_fat":
		target = tdee * 0.85
		if target < bmr {
			target = bmr
		}
	case "gain_muscle":
		target = tdee * 1.10
	}

	return int(math.Floor(target))
}
