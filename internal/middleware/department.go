package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
)

// DepartmentGate is the narrower legacy gate: it accepts only a locally
// signed department token (never delegating to the identity service) and
// requires the token to carry a department claim.
func DepartmentGate(tokenSvc portssvc.DepartmentTokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Department token missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		department, err := tokenSvc.VerifyDepartmentToken(parts[1])
		if err != nil {
			logger.Warn("Department token rejected", slog.String("error", err.Error()))
			if errors.Is(err, apperrors.ErrForbidden) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Department claim required"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid department token"})
			return
		}

		c.Request = c.Request.WithContext(withDepartment(c.Request.Context(), department))
		c.Next()
	}
}
