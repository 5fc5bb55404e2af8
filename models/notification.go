package models

import (
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`
	Title  string
	Body   string
	Kind   string // diet | streak | system
	IsRead bool
}

func (n *Notification) ToDict() map[string]any {
	return map[string]any{
		"id":         n.ID,
		"title":      n.Title,
		"body":       n.Body,
		"kind":       n.Kind,
		"is_read":    n.IsRead,
		"created_at": n.CreatedAt,
	}
}
