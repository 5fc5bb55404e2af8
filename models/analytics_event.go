package models

import (
	"gorm.io/gorm"
)

// AnalyticsEvent is a fire-and-forget product analytics row; writes are
// best-effort and must never block a chat response.
type AnalyticsEvent struct {
	gorm.Model
	EventID    string `gorm:"uniqueIndex;size:36"`
	UserID     uint   `gorm:"index"`
	Name       string `gorm:"index;not null"`
	Properties string // JSON
}
