package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/dto"
	"github.com/opsdesk/requisition_backend/internal/middleware"
)

// departmentHandler serves the legacy department-selection flow.
type departmentHandler struct {
	tokenService portssvc.DepartmentTokenSvc
}

func newDepartmentHandler(ts portssvc.DepartmentTokenSvc) *departmentHandler {
	return &departmentHandler{tokenService: ts}
}

// registerDepartmentRoutes mounts the public token exchange and the gated
// department context lookup.
func registerDepartmentRoutes(r *gin.Engine, ts portssvc.DepartmentTokenSvc) {
	h := newDepartmentHandler(ts)

	r.POST("/api/department", h.issueToken)
	r.GET("/api/department/me", middleware.DepartmentGate(ts), h.currentDepartment)
}

// issueToken godoc
// @Summary Exchange a department name for a short-lived signed token
// @Tags department
// @Accept  json
// @Produce  json
// @Param   body body dto.DepartmentTokenRequest true "Department name"
// @Success 200 {object} dto.DepartmentTokenResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /api/department [post]
func (h *departmentHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepartmentTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, expiresAt, err := h.tokenService.IssueDepartmentToken(req.Department)
	if err != nil {
		logger.Error("Failed to issue department token", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DepartmentTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

func (h *departmentHandler) currentDepartment(c *gin.Context) {
	department, ok := middleware.GetDepartmentFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": department})
}
