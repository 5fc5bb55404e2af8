package controllers

import (
	"net/http"
	"strconv"

	"github.com/askadauletbek-ux/sola/services"

	"github.com/gin-gonic/gin"
)

// UserController serves the notification inbox and the deficit history
// screen.
type UserController struct {
	Notifications *services.NotificationService
	Analytics     *services.AnalyticsService
}

func NewUserController(n *services.NotificationService, a *services.AnalyticsService) *UserController {
	return &UserController{Notifications: n, Analytics: a}
}

// GET /api/notifications
func (uc *UserController) ListNotifications(c *gin.Context) {
	uid := c.GetUint("userID")

	notifs, err := uc.Notifications.Recent(uid, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	out := make([]map[string]any, 0, len(notifs))
	for i := range notifs {
		out = append(out, notifs[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notifications": out})
}

// POST /api/notifications/:id/read
func (uc *UserController) MarkNotificationRead(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return
	}

	if err := uc.Notifications.MarkRead(uid, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/history/deficit
func (uc *UserController) DeficitHistory(c *gin.Context) {
	uid := c.GetUint("userID")

	history, err := uc.Analytics.DeficitHistory(uid, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}
