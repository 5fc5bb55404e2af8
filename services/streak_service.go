package services

import (
	"log"
	"sort"
	"time"

	"github.com/askadauletbek-ux/sola/models"

	"gorm.io/gorm"
)

// StreakService recomputes the three streak counters (nutrition,
// activity, total) from meal and activity rows. It runs independently
// of diet mutations and tolerates reading state mid-update.
type StreakService struct {
	db   *gorm.DB
	push *PushService
}

func NewStreakService(db *gorm.DB, push *PushService) *StreakService {
	return &StreakService{db: db, push: push}
}

// ConsecutiveDays counts the run of back-to-back days ending today or
// yesterday. A latest entry older than yesterday means the streak is
// already burned.
func ConsecutiveDays(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := map[string]time.Time{}
	for _, d := range dates {
		day := dayStartLocal(d)
		seen[day.Format("2006-01-02")] = day
	}
	uniq := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		uniq = append(uniq, d)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].After(uniq[j]) })

	today = dayStartLocal(today)
	yesterday := today.AddDate(0, 0, -1)

	latest := uniq[0]
	if latest.Before(yesterday) {
		return 0
	}

	check := yesterday
	if latest.Equal(today) {
		check = today
	}

	streak := 0
	for _, d := range uniq {
		switch {
		case d.Equal(check):
			streak++
			check = check.AddDate(0, 0, -1)
		case d.After(check):
			// duplicate day already counted
		default:
			return streak
		}
	}
	return streak
}

// Recalculate rebuilds all three streaks for the user and saves them.
// Nutrition days are days with logged food at or under the calorie
// limit; activity days are days at or over the step goal; the total
// streak needs both.
func (s *StreakService) Recalculate(user *models.User) error {
	limit := user.DailyCalories
	if limit <= 0 {
		limit = 2000
	}
	stepGoal := user.StepGoal
	if stepGoal <= 0 {
		stepGoal = 10000
	}

	var mealDays []time.Time
	if err := s.db.Model(&models.MealLog{}).
		Where("user_id = ?", user.ID).
		Group("date").
		Having("SUM(calories) > 0 AND SUM(calories) <= ?", limit).
		Order("date DESC").
		Pluck("date", &mealDays).Error; err != nil {
		return err
	}

	var activityDays []time.Time
	if err := s.db.Model(&models.Activity{}).
		Where("user_id = ? AND steps >= ?", user.ID, stepGoal).
		Order("date DESC").
		Pluck("date", &activityDays).Error; err != nil {
		return err
	}

	mealSet := map[string]struct{}{}
	for _, d := range mealDays {
		mealSet[dayStartLocal(d).Format("2006-01-02")] = struct{}{}
	}
	var totalDays []time.Time
	for _, d := range activityDays {
		if _, ok := mealSet[dayStartLocal(d).Format("2006-01-02")]; ok {
			totalDays = append(totalDays, d)
		}
	}

	now := time.Now()
	user.StreakNutrition = ConsecutiveDays(mealDays, now)
	user.StreakActivity = ConsecutiveDays(activityDays, now)
	user.CurrentStreak = ConsecutiveDays(totalDays, now)

	return s.db.Model(user).Updates(map[string]any{
		"streak_nutrition": user.StreakNutrition,
		"streak_activity":  user.StreakActivity,
		"current_streak":   user.CurrentStreak,
	}).Error
}

// StartEveningChecker launches the background loop that warns users in
// the evening when today's food is not logged yet and yesterday's streak
// is about to burn. The loop does not coordinate with diet writes.
func (s *StreakService) StartEveningChecker() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			if now.Hour() == 18 && now.Minute() < 5 {
				s.runEveningCheck(now)
				time.Sleep(10 * time.Minute)
			}
		}
	}()
}

func (s *StreakService) runEveningCheck(now time.Time) {
	today := dayStartLocal(now)
	yesterday := today.AddDate(0, 0, -1)

	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		log.Printf("streak check: user scan failed: %v", err)
		return
	}

	warned := 0
	for i := range users {
		u := &users[i]

		var todayCount int64
		s.db.Model(&models.MealLog{}).
			Where("user_id = ? AND date >= ?", u.ID, today).
			Count(&todayCount)
		if todayCount > 0 {
			continue
		}

		var yesterdayCount int64
		s.db.Model(&models.MealLog{}).
			Where("user_id = ? AND date >= ? AND date < ?", u.ID, yesterday, today).
			Count(&yesterdayCount)
		if yesterdayCount == 0 {
			continue
		}

		if err := s.Recalculate(u); err != nil {
			log.Printf("streak recalc for user %d failed: %v", u.ID, err)
			continue
		}
		if u.CurrentStreak > 0 && s.push != nil {
			s.push.PushToUser(u.ID, "😱 Стрик под угрозой!",
				"Вы не отметили еду сегодня! Стрик сгорит в полночь 🔥",
				map[string]string{"kind": "streak"})
			warned++
		}
	}
	log.Printf("streak check: %d warnings sent", warned)
}
