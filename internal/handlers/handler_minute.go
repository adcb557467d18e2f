package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/dto"
	"github.com/opsdesk/requisition_backend/internal/middleware"
)

// minuteHandler handles HTTP requests for meeting minutes.
type minuteHandler struct {
	minuteService portssvc.MinuteSvcFacade
}

func newMinuteHandler(ms portssvc.MinuteSvcFacade) *minuteHandler {
	return &minuteHandler{minuteService: ms}
}

func registerMinuteRoutes(rg *gin.RouterGroup, ms portssvc.MinuteSvcFacade) {
	h := newMinuteHandler(ms)

	minutes := rg.Group("/minutes")
	{
		minutes.POST("", h.createMinute)
		minutes.GET("", h.listMinutes)
		minutes.GET("/:id", h.getMinute)
		minutes.PUT("/:id", h.updateMinute)
		minutes.DELETE("/:id", h.deleteMinute)
		minutes.PUT("/:id/action-items", h.toggleActionItem)
	}
}

func (h *minuteHandler) createMinute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateMinuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.minuteService.CreateMinute(c.Request.Context(), req, principal)
	if err != nil {
		logger.Error("Failed to create minute", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *minuteHandler) listMinutes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMinutesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	minutes, err := h.minuteService.ListMinutes(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list minutes", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"minutes": minutes})
}

func (h *minuteHandler) getMinute(c *gin.Context) {
	minute, err := h.minuteService.GetMinuteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, minute)
}

func (h *minuteHandler) updateMinute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateMinuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.minuteService.UpdateMinute(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		logger.Error("Failed to update minute", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *minuteHandler) deleteMinute(c *gin.Context) {
	if err := h.minuteService.DeleteMinute(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Minute deleted"})
}

func (h *minuteHandler) toggleActionItem(c *gin.Context) {
	var req dto.ToggleActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.minuteService.ToggleActionItem(c.Request.Context(), c.Param("id"), req.Index, req.Done)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
