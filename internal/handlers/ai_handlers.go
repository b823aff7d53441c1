package handlers

import (
	"net/http"

	"github.com/apotekcloud/apotek-golang/internal/ai"
	"github.com/gin-gonic/gin"
)

// ChatInput defines the structure of the JSON request body.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// ChatAI is the handler for POST /v1/ai/chat.
// It forwards the question plus an inventory snapshot to Gemini and
// returns the text answer. No history is kept; each question stands
// alone.
func (h *Handlers) ChatAI(c *gin.Context) {
	// 1. The service is nil when GEMINI_API_KEY was never configured.
	if h.AIService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GEMINI_API_KEY belum dikonfigurasi di server"})
		return
	}

	// 2. Parse Input
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 3. Ask Gemini
	response, err := h.AIService.GenerateResponse(c.Request.Context(), input.Message)
	if err != nil {
		errMessage := err.Error()
		if hint := ai.ModelHint(err); hint != "" {
			errMessage = errMessage + ". " + hint
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMessage})
		return
	}

	// 4. Return the Answer
	c.JSON(http.StatusOK, gin.H{"response": response})
}
