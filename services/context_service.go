package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/askadauletbek-ux/sola/models"
	"github.com/askadauletbek-ux/sola/utils"

	"gorm.io/gorm"
)

// UserContext is the immutable per-request snapshot used to ground
// prompts. Rebuilt fresh on every request, never cached. Every field is
// optional: a missing measurement or activity row degrades to zero
// values rather than failing the request.
type UserContext struct {
	Profile struct {
		Name        string  `json:"name"`
		Gender      string  `json:"gender"`
		Age         int     `json:"age"`
		Goal        string  `json:"goal"`
		GoalWeight  float64 `json:"goal_weight"`
		GoalFat     float64 `json:"goal_fat"`
		StartWeight float64 `json:"start_weight"`
	} `json:"profile"`
	Metrics struct {
		Weight     float64 `json:"weight"`
		Height     float64 `json:"height"`
		FatMass    float64 `json:"fat_mass"`
		MuscleMass float64 `json:"muscle_mass"`
		Metabolism float64 `json:"metabolism"`
	} `json:"metrics"`
	Activity struct {
		StepsToday     int `json:"steps_today"`
		AvgWeeklySteps int `json:"avg_weekly_steps"`
	} `json:"activity"`
}

// ContextSource aggregates the full user portrait for prompt grounding.
type ContextSource interface {
	Build(userID uint) UserContext
	LatestAnalysis(userID uint) (*models.BodyAnalysis, error)
}

type contextService struct {
	db *gorm.DB
}

func NewContextService(db *gorm.DB) ContextSource {
	return &contextService{db: db}
}

// Build is a pure read. An unknown user yields a neutral empty context,
// not an error: the conversation must stay alive.
func (s *contextService) Build(userID uint) UserContext {
	var uc UserContext

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return uc
	}

	uc.Profile.Name = user.Name
	uc.Profile.Gender = user.Sex
	if uc.Profile.Gender == "" {
		uc.Profile.Gender = "unknown"
	}
	uc.Profile.Age = utils.CalculateAge(user.Birthday)
	uc.Profile.Goal = user.Goal
	uc.Profile.GoalWeight = user.WeightGoal
	uc.Profile.GoalFat = user.FatMassGoal
	uc.Profile.StartWeight = user.StartWeight

	if ba, err := s.LatestAnalysis(userID); err == nil && ba != nil {
		uc.Metrics.Weight = ba.Weight
		uc.Metrics.Height = ba.Height
		uc.Metrics.FatMass = ba.FatMass
		uc.Metrics.MuscleMass = ba.MuscleMass
		uc.Metrics.Metabolism = ba.Metabolism
	}

	today := dayStartLocal(time.Now())
	var act models.Activity
	if err := s.db.Where("user_id = ? AND date = ?", userID, today).First(&act).Error; err == nil {
		uc.Activity.StepsToday = act.Steps
	}

	weekAgo := today.AddDate(0, 0, -7)
	var avgSteps float64
	s.db.Model(&models.Activity{}).
		Where("user_id = ? AND date >= ?", userID, weekAgo).
		Select("COALESCE(AVG(steps), 0)").
		Scan(&avgSteps)
	uc.Activity.AvgWeeklySteps = int(avgSteps)

	return uc
}

// formatBodySummary renders one measurement for the metrics prompt.
func formatBodySummary(ba *models.BodyAnalysis) string {
	if ba == nil {
		return "Данные анализа отсутствуют."
	}
	bmi := ba.BMI
	if bmi <= 0 {
		if computed, err := utils.CalculateBMI(ba.Height, ba.Weight); err == nil {
			bmi = computed
		}
	}
	return fmt.Sprintf("Рост: %.0f см, Вес: %.1f кг, Жир: %.1f кг, Мышцы: %.1f кг, Метаболизм: %.0f ккал, ИМТ: %.1f",
		ba.Height, ba.Weight, ba.FatMass, ba.MuscleMass, ba.Metabolism, bmi)
}

func (s *contextService) LatestAnalysis(userID uint) (*models.BodyAnalysis, error) {
	var ba models.BodyAnalysis
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&ba).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ba, nil
}
