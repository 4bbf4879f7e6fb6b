package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/dto"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
)

// ledgerHandler lists recorded item entries for inspection.
type ledgerHandler struct {
	itemLedgerSvc portssvc.ItemLedgerSvcFacade
}

func newLedgerHandler(itemLedgerSvc portssvc.ItemLedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{itemLedgerSvc: itemLedgerSvc}
}

// getItemEntries returns all item entries for a direction in recording order.
func (h *ledgerHandler) getItemEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	direction, ok := parseDirection(c.Param("direction"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be 'in' or 'out'"})
		return
	}

	entries, err := h.itemLedgerSvc.ListItemEntries(c.Request.Context(), direction)
	if err != nil {
		logger.Error("Failed to list item entries", slog.String("direction", string(direction)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list item entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.ToItemEntryResponses(entries)})
}

// RegisterLedgerRoutes registers the ledger inspection endpoints.
func RegisterLedgerRoutes(group *gin.RouterGroup, itemLedgerSvc portssvc.ItemLedgerSvcFacade) {
	handler := newLedgerHandler(itemLedgerSvc)
	ledger := group.Group("/ledger")
	ledger.GET("/items/:direction", handler.getItemEntries)
}
