package main

import (
	"context"
	"log"
	"time"

	"github.com/askadauletbek-ux/sola/config"
	"github.com/askadauletbek-ux/sola/routes"
	"github.com/askadauletbek-ux/sola/services"
)

func main() {
	config.InitDB()

	llm, err := services.NewGeminiCompletion(context.Background())
	if err != nil {
		log.Fatalf("completion gateway init failed: %v", err)
	}

	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push service unavailable, continuing without it: %v", err)
		push = nil
	}

	notifs := services.NewNotificationService(config.DB, hub, push)
	analytics := services.NewAnalyticsService(config.DB)

	assistant := services.NewAssistantService(
		llm,
		services.NewDietService(config.DB),
		services.NewContextService(config.DB),
		services.NewMemoryHistory(24*time.Hour),
		notifs,
		analytics,
	)

	streaks := services.NewStreakService(config.DB, push)
	streaks.StartEveningChecker()

	r := routes.SetupRouter(routes.Deps{
		Assistant: assistant,
		Notifs:    notifs,
		Analytics: analytics,
		Streaks:   streaks,
		Push:      push,
		Hub:       hub,
	})
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
