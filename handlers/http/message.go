package httpHandler

import (
	"net/http"

	"github.com/Jataveda/Agriconnect/usecases"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	useCase *usecases.MessageUseCase
}

func NewMessageHandler(useCase *usecases.MessageUseCase) *MessageHandler {
	return &MessageHandler{useCase: useCase}
}

// CreateMessage handles POST /api/messages
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var in usecases.MessageInput
	if !bindJSON(c, &in) {
		return
	}
	msg, err := h.useCase.SendMessage(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetOrderMessages handles GET /api/orders/:id/messages
func (h *MessageHandler) GetOrderMessages(c *gin.Context) {
	messages, err := h.useCase.GetThread(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}
