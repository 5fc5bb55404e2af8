package services

import (
	"log"

	"github.com/askadauletbek-ux/sola/models"

	"gorm.io/gorm"
)

// NotificationService persists notifications and fans them out over the
// realtime hub and mobile push. It implements Notifier for the
// assistant; every step is best effort.
type NotificationService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

func NewNotificationService(db *gorm.DB, hub *RealtimeHub, push *PushService) *NotificationService {
	return &NotificationService{db: db, hub: hub, push: push}
}

func (n *NotificationService) Notify(userID uint, title, body string, data map[string]string) {
	notif := &models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Kind:   data["kind"],
	}
	if err := n.db.Create(notif).Error; err != nil {
		log.Printf("notification insert failed for user %d: %v", userID, err)
	}

	if n.hub != nil {
		n.hub.BroadcastNotification(userID, map[string]any{
			"kind":         "notification.created",
			"notification": notif.ToDict(),
		})
	}
	if n.push != nil {
		n.push.PushToUser(userID, title, body, data)
	}
}

// Recent returns the newest notifications for the inbox screen.
func (n *NotificationService) Recent(userID uint, limit int) ([]models.Notification, error) {
	var out []models.Notification
	err := n.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkRead flags one of the user's notifications as read; a foreign id
// is a no-op.
func (n *NotificationService) MarkRead(userID, notifID uint) error {
	return n.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notifID, userID).
		Update("is_read", true).Error
}
