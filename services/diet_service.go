package services

import (
	"errors"
	"time"

	"github.com/askadauletbek-ux/sola/models"

	"gorm.io/gorm"
)

// DietStore owns the single-active-record-per-user diet state. The
// assistant is its only writer.
type DietStore interface {
	// Active returns the newest diet for the user, or nil when none exists.
	Active(userID uint) (*models.Diet, error)

	// ReplaceForDate deletes any diet rows for (user, date) and inserts
	// the new plan, keeping the at-most-one-row-per-day invariant even
	// across repeated generations.
	ReplaceForDate(userID uint, date time.Time, plan *DietPlan) (*models.Diet, error)

	// Overwrite replaces all four slots and all four totals of an
	// existing row in place. Updates are whole-plan, never a merge.
	Overwrite(diet *models.Diet, plan *DietPlan) error
}

type dietService struct {
	db *gorm.DB
}

func NewDietService(db *gorm.DB) DietStore {
	return &dietService{db: db}
}

func (s *dietService) Active(userID uint) (*models.Diet, error) {
	var diet models.Diet
	err := s.db.Where("user_id = ?", userID).Order("date DESC").First(&diet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diet, nil
}

func (s *dietService) ReplaceForDate(userID uint, date time.Time, plan *DietPlan) (*models.Diet, error) {
	day := dayStartLocal(date)
	diet := &models.Diet{
		UserID:    userID,
		Date:      day,
		Breakfast: marshalSlot(plan.Breakfast),
		Lunch:     marshalSlot(plan.Lunch),
		Dinner:    marshalSlot(plan.Dinner),
		Snack:     marshalSlot(plan.Snack),
		TotalKcal: plan.TotalKcal,
		Protein:   plan.Protein,
		Fat:       plan.Fat,
		Carbs:     plan.Carbs,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("user_id = ? AND date = ?", userID, day).
			Delete(&models.Diet{}).Error; err != nil {
			return err
		}
		return tx.Create(diet).Error
	})
	if err != nil {
		return nil, err
	}
	return diet, nil
}

func (s *dietService) Overwrite(diet *models.Diet, plan *DietPlan) error {
	diet.Breakfast = marshalSlot(plan.Breakfast)
	diet.Lunch = marshalSlot(plan.Lunch)
	diet.Dinner = marshalSlot(plan.Dinner)
	diet.Snack = marshalSlot(plan.Snack)
	diet.TotalKcal = plan.TotalKcal
	diet.Protein = plan.Protein
	diet.Fat = plan.Fat
	diet.Carbs = plan.Carbs
	return s.db.Save(diet).Error
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}
