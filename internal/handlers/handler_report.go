package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/dto"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
)

// reportHandler exposes the cash aggregates over REST, next to the
// conversational surface.
type reportHandler struct {
	reporterSvc portssvc.ReporterSvcFacade
}

func newReportHandler(reporterSvc portssvc.ReporterSvcFacade) *reportHandler {
	return &reportHandler{reporterSvc: reporterSvc}
}

// getReport returns the aggregate over the cash collection selected by the
// direction path parameter ("in" or "out").
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	direction, ok := parseDirection(c.Param("direction"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be 'in' or 'out'"})
		return
	}

	result, err := h.reporterSvc.Report(c.Request.Context(), domain.ReportRequest{Direction: direction})
	if err != nil {
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			logger.Error("Ledger store unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store is unavailable"})
			return
		}
		logger.Error("Failed to aggregate report", slog.String("direction", string(direction)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReportResponse(direction, result))
}

func parseDirection(raw string) (domain.Direction, bool) {
	switch raw {
	case "in":
		return domain.Inflow, true
	case "out":
		return domain.Outflow, true
	default:
		return "", false
	}
}

// RegisterReportRoutes registers the report endpoints on the given group.
func RegisterReportRoutes(group *gin.RouterGroup, reporterSvc portssvc.ReporterSvcFacade) {
	handler := newReportHandler(reporterSvc)
	reports := group.Group("/reports")
	reports.GET("/:direction", handler.getReport)
}
