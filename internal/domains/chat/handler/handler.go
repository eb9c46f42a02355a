package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"news-portal-backend/internal/domains/chat/model"
	"news-portal-backend/internal/domains/chat/service"
	"news-portal-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListMessages - GET /chat/:sessionID/messages
func (h *Handler) ListMessages(c *gin.Context) {
	sessionID := c.Param("sessionID")

	messages, err := h.service.History(c.Request.Context(), sessionID)
	if err != nil {
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, messages)
}

// SendMessage - POST /chat/:sessionID/messages
func (h *Handler) SendMessage(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	msg, err := h.service.SendUserMessage(c.Request.Context(), sessionID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

// BotReply - POST /chat/:sessionID/bot
// Callback endpoint the agent posts its answer to.
func (h *Handler) BotReply(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var req model.BotReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}
	if req.SessionID == "" {
		req.SessionID = sessionID
	}

	msg, err := h.service.SendBotReply(c.Request.Context(), sessionID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

// StreamMessages - GET /chat/:sessionID/stream
// Server-sent events feed of messages as they are inserted. Events
// arrive in publish order; clients append without deduplication.
func (h *Handler) StreamMessages(c *gin.Context) {
	sessionID := c.Param("sessionID")

	messages, err := h.service.Subscribe(c.Request.Context(), sessionID)
	if err != nil {
		response.InternalServerError(c, "failed to subscribe to chat feed")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-messages:
			if !ok {
				return false
			}
			c.SSEvent("message", payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}
	response.InternalServerError(c, "Internal server error")
}
