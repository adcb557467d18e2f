package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
)

// AuthMiddleware creates a Gin middleware handler that verifies the bearer
// credential and attaches the resulting principal (and its department) to the
// request context. A missing or malformed header fails immediately; the
// verifier is never called.
func AuthMiddleware(verifier portssvc.TokenVerifierSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		principal, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Token verification failed", slog.String("error", err.Error()))
			abortWithAuthError(c, err)
			return
		}

		ctx := withPrincipal(c.Request.Context(), principal)
		enrichedLogger := logger.With(slog.String("user_email", principal.Email))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// abortWithAuthError maps a verifier failure onto the response, preserving
// the verifier's reason and any login redirect hint.
func abortWithAuthError(c *gin.Context, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, apperrors.ErrServiceUnavailable) {
		status = http.StatusServiceUnavailable
	}

	body := gin.H{"error": err.Error()}
	var redirectErr *apperrors.RedirectError
	if errors.As(err, &redirectErr) {
		body["redirectTo"] = redirectErr.RedirectTo
	}
	c.AbortWithStatusJSON(status, body)
}
