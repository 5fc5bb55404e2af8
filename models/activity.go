package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is one day of movement data synced from the phone.
type Activity struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null"`
	Date       time.Time `gorm:"index;not null"` // truncated to local midnight
	Steps      int
	BurnedKcal float64
}
