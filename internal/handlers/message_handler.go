package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/services"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

type MessageHandler struct {
	BaseHandler
	messageService services.MessageService
	validator      *utils.Validator
}

func NewMessageHandler(
	messageService services.MessageService,
	validator *utils.Validator,
	logger utils.Logger,
) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    NewBaseHandler(logger),
		messageService: messageService,
		validator:      validator,
	}
}

// BroadcastMessage stores and announces a message to all active students
// @Summary Broadcast message
// @Tags messages
// @Accept json
// @Produce json
// @Param message body services.BroadcastMessageRequest true "Message data"
// @Success 201 {object} models.Message
// @Failure 400 {object} ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) BroadcastMessage(c *gin.Context) {
	senderID, ok := h.requireStudentID(c)
	if !ok {
		return
	}

	var req services.BroadcastMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Broadcasting message", "priority", req.Priority)

	message, err := h.messageService.BroadcastMessage(c.Request.Context(), senderID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessage returns one message by id
func (h *MessageHandler) GetMessage(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	message, err := h.messageService.GetMessage(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// ListMessages returns a paginated message list, newest first
func (h *MessageHandler) ListMessages(c *gin.Context) {
	filters := repositories.MessageFilters{}

	if raw := c.Query("priority"); raw != "" {
		priority := models.MessagePriority(raw)
		filters.Priority = &priority
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.messageService.ListMessages(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteMessage removes one message by id
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting message", "message_id", id)

	if err := h.messageService.DeleteMessage(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Message deleted", nil)
}
