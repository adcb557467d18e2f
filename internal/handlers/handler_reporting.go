package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/dto"
	"github.com/opsdesk/requisition_backend/internal/middleware"
)

// reportingHandler serves dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes mounts the metrics endpoint. It is registered on
// the public engine, before the auth gate, matching the original wiring;
// DESIGN.md flags this as a decision point.
func registerReportingRoutes(r *gin.Engine, rs portssvc.ReportingSvc) {
	h := newReportingHandler(rs)
	r.GET("/api/v1/internal-requisitions/dashboard/metrics", h.getMetrics)
}

// getMetrics godoc
// @Summary Dashboard metrics for requisitions in a date window
// @Tags reporting
// @Produce  json
// @Param   startDate query string false "Window start (YYYY-MM-DD)"
// @Param   endDate query string false "Window end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} domain.RequisitionMetrics
// @Failure 400 {object} map[string]string "Invalid dates"
// @Router /internal-requisitions/dashboard/metrics [get]
func (h *reportingHandler) getMetrics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MetricsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	metrics, err := h.reportingService.GetMetrics(c.Request.Context(), params.StartDate, params.EndDate)
	if err != nil {
		logger.Error("Failed to compute metrics", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
