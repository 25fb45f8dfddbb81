package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/services"
	"helpdesk/utils"
)

type ChatController struct {
	Gemini *services.GeminiService
}

func NewChatController(gemini *services.GeminiService) *ChatController {
	return &ChatController{Gemini: gemini}
}

// Ask relays a question to the chat service. The answer may be a degraded
// "Error: ..." string; that still comes back as a 200 and callers must
// not assume success from the shape of the response.
func (cc *ChatController) Ask(c *gin.Context) {
	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	answer := cc.Gemini.GetChatResponse(req.Question)

	utils.RespondJSON(c, http.StatusOK, "Chat response", gin.H{
		"question": req.Question,
		"answer":   answer,
	})
}
