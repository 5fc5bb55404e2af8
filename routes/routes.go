package routes

import (
	"github.com/askadauletbek-ux/sola/controllers"
	"github.com/askadauletbek-ux/sola/middlewares"
	"github.com/askadauletbek-ux/sola/services"

	"github.com/gin-gonic/gin"
)

// Deps carries the constructed services into route wiring.
type Deps struct {
	Assistant *services.AssistantService
	Notifs    *services.NotificationService
	Analytics *services.AnalyticsService
	Streaks   *services.StreakService
	Push      *services.PushService
	Hub       *services.RealtimeHub
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	assistantCtl := controllers.NewAssistantController(d.Assistant)
	userCtl := controllers.NewUserController(d.Notifs, d.Analytics)
	streakCtl := controllers.NewStreakController(d.Streaks)
	realtimeCtl := controllers.NewRealtimeController(d.Hub)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/assistant/chat", assistantCtl.Chat)
		api.GET("/assistant/history", assistantCtl.History)
		api.POST("/assistant/clear", assistantCtl.Clear)

		api.GET("/notifications", userCtl.ListNotifications)
		api.POST("/notifications/:id/read", userCtl.MarkNotificationRead)
		api.GET("/history/deficit", userCtl.DeficitHistory)

		api.GET("/streaks", streakCtl.Get)

		api.GET("/ws/notifications", realtimeCtl.NotificationsWS)
	}

	if d.Push != nil {
		deviceCtl := controllers.NewDeviceController(d.Push)
		api.POST("/devices", deviceCtl.Register)
	}

	return r
}
