package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/dto"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
)

// chatHandler handles the conversational endpoint.
type chatHandler struct {
	chatSvc portssvc.ChatSvcFacade
}

func newChatHandler(chatSvc portssvc.ChatSvcFacade) *chatHandler {
	return &chatHandler{chatSvc: chatSvc}
}

// postChat accepts {"prompt": "..."} and replies with {"reply": "..."}.
func (h *chatHandler) postChat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	reply, err := h.chatSvc.HandleMessage(c.Request.Context(), req.Prompt)
	if err != nil {
		h.writeError(c, err)
		return
	}

	logger.Debug("Chat message handled")
	c.JSON(http.StatusOK, dto.ChatResponse{Reply: reply})
}

func (h *chatHandler) writeError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var partial *apperrors.PartialRecordError
	switch {
	case errors.As(err, &partial):
		// The orphaned item id must survive for reconciliation.
		logger.Error("Transaction partially recorded",
			slog.String("orphaned_item_entry_id", partial.ItemEntryID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction was only partially recorded; the item entry " + partial.ItemEntryID + " has no cash entry yet"})
	case errors.Is(err, apperrors.ErrUpstreamTimeout):
		logger.Error("Upstream call timed out", slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "The language model took too long to answer"})
	case errors.Is(err, apperrors.ErrUpstream):
		logger.Error("Upstream call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		logger.Error("Ledger store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store is unavailable"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error handling chat message", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to handle chat message", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// RegisterChatRoutes registers the chat endpoint on the given group.
func RegisterChatRoutes(group *gin.RouterGroup, chatSvc portssvc.ChatSvcFacade, middlewares ...gin.HandlerFunc) {
	handler := newChatHandler(chatSvc)
	chat := group.Group("/chat", middlewares...)
	chat.POST("", handler.postChat)
}
