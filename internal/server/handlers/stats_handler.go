package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/volaille/internal/analytics"
	"github.com/mamadbah2/volaille/internal/service/stats"
)

// StatsHandler serves the analytics endpoints.
type StatsHandler struct {
	svc    *stats.Service
	logger *zap.Logger
}

// NewStatsHandler constructs the HTTP handler adapter.
func NewStatsHandler(svc *stats.Service, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

func queryFromRequest(c *gin.Context) stats.Query {
	return stats.Query{
		Period:    c.DefaultQuery("period", "30d"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}

// Production returns the production summary for a farm and window.
func (h *StatsHandler) Production(c *gin.Context) {
	summary, err := h.svc.ProductionSummary(c.Request.Context(), c.Param("farmId"), queryFromRequest(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Financial returns the financial report for a farm and window.
func (h *StatsHandler) Financial(c *gin.Context) {
	report, err := h.svc.FinancialReport(c.Request.Context(), c.Param("farmId"), queryFromRequest(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Dashboard returns the compact overview card.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	overview, err := h.svc.DashboardOverview(c.Request.Context(), c.Param("farmId"), queryFromRequest(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *StatsHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, analytics.ErrInvalidDateRange) {
		h.logger.Warn("rejected stats query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range"})
		return
	}
	h.logger.Error("failed computing stats", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute statistics"})
}
