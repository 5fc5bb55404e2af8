package controllers

import (
	"net/http"

	"github.com/askadauletbek-ux/sola/config"
	"github.com/askadauletbek-ux/sola/models"
	"github.com/askadauletbek-ux/sola/services"

	"github.com/gin-gonic/gin"
)

type StreakController struct {
	Streaks *services.StreakService
}

func NewStreakController(s *services.StreakService) *StreakController {
	return &StreakController{Streaks: s}
}

// GET /api/streaks recomputes honestly on read, then returns.
func (sc *StreakController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := sc.Streaks.Recalculate(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nutrition": user.StreakNutrition,
		"activity":  user.StreakActivity,
		"total":     user.CurrentStreak,
	})
}
