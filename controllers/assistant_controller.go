package controllers

import (
	"net/http"
	"strings"

	"github.com/askadauletbek-ux/sola/services"

	"github.com/gin-gonic/gin"
)

// AssistantController exposes the chat assistant over HTTP. All handled
// outcomes, including soft failures inside the assistant, answer 200
// with a chat-shaped body; only an empty message (400) and a missing
// session (401) differ.
type AssistantController struct {
	Assistant *services.AssistantService
}

func NewAssistantController(a *services.AssistantService) *AssistantController {
	return &AssistantController{Assistant: a}
}

type chatInput struct {
	Message       string `json:"message"`
	AllowEstimate bool   `json:"allow_estimate"`
}

// POST /api/assistant/chat
func (ac *AssistantController) Chat(c *gin.Context) {
	var input chatInput
	_ = c.ShouldBindJSON(&input)

	message := strings.TrimSpace(input.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"role": "error", "content": "Пустое сообщение"})
		return
	}

	uid := c.GetUint("userID")
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"role": "error", "content": "Пожалуйста, авторизуйтесь."})
		return
	}

	reply := ac.Assistant.HandleChat(c.Request.Context(), uid, message, input.AllowEstimate)
	c.JSON(http.StatusOK, reply)
}

// GET /api/assistant/history
func (ac *AssistantController) History(c *gin.Context) {
	uid := c.GetUint("userID")
	turns := ac.Assistant.History(uid)
	if turns == nil {
		turns = []services.Turn{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": turns})
}

// POST /api/assistant/clear
func (ac *AssistantController) Clear(c *gin.Context) {
	uid := c.GetUint("userID")
	ac.Assistant.ClearHistory(uid)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
