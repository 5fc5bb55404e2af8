package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/askadauletbek-ux/sola/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsService records product events and serves the deficit
// history screen. Event writes are fire-and-forget: they must never
// block or fail the chat path.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Track implements Tracker. Failures are logged and swallowed.
func (s *AnalyticsService) Track(userID uint, event string, props map[string]any) {
	raw, err := json.Marshal(props)
	if err != nil {
		raw = []byte("{}")
	}
	row := &models.AnalyticsEvent{
		EventID:    uuid.NewString(),
		UserID:     userID,
		Name:       event,
		Properties: string(raw),
	}
	if err := s.db.Create(row).Error; err != nil {
		log.Printf("analytics event %q dropped: %v", event, err)
	}
}

// DayDeficit is one day of the consumed-vs-burned history.
type DayDeficit struct {
	Date        string   `json:"date"`
	Consumed    int      `json:"consumed"`
	TotalBurned int      `json:"total_burned"`
	Deficit     int      `json:"deficit"`
	Measurement bool     `json:"is_measurement_day"`
	Weight      *float64 `json:"weight"`
	BMI         *float64 `json:"bmi"`
	FatMass     *float64 `json:"fat_mass"`
}

// DeficitHistory returns up to days of history, newest first. Burned
// calories are the user's basal rate (latest measurement, 1600 default)
// plus logged activity. Days with no data are skipped except the most
// recent three, matching the mobile client's expectations.
func (s *AnalyticsService) DeficitHistory(userID uint, days int) ([]DayDeficit, error) {
	bmr := 1600.0
	var ba models.BodyAnalysis
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&ba).Error; err == nil && ba.Metabolism > 0 {
		bmr = ba.Metabolism
	}

	history := make([]DayDeficit, 0, days)
	today := dayStartLocal(time.Now())

	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)

		var consumed float64
		s.db.Model(&models.MealLog{}).
			Where("user_id = ? AND date >= ? AND date < ?", userID, day, next).
			Select("COALESCE(SUM(calories), 0)").
			Scan(&consumed)

		var burned float64
		s.db.Model(&models.Activity{}).
			Where("user_id = ? AND date >= ? AND date < ?", userID, day, next).
			Select("COALESCE(SUM(burned_kcal), 0)").
			Scan(&burned)
		totalBurned := bmr + burned

		var measurement models.BodyAnalysis
		hasMeasurement := true
		if err := s.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, day, next).
			Order("created_at DESC").First(&measurement).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			hasMeasurement = false
		}

		if consumed == 0 && !hasMeasurement && i >= 3 {
			continue
		}

		d := DayDeficit{
			Date:        day.Format("02.01.2006"),
			Consumed:    int(consumed),
			TotalBurned: int(totalBurned),
			Deficit:     int(totalBurned - consumed),
			Measurement: hasMeasurement,
		}
		if hasMeasurement {
			d.Weight = &measurement.Weight
			d.BMI = &measurement.BMI
			d.FatMass = &measurement.FatMass
		}
		history = append(history, d)
	}

	return history, nil
}
