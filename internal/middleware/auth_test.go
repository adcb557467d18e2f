package middleware_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	"github.com/opsdesk/requisition_backend/internal/core/services"
	"github.com/opsdesk/requisition_backend/internal/middleware"
	"github.com/opsdesk/requisition_backend/internal/platform/config"
)

// countingVerifier records how often VerifyToken is invoked.
type countingVerifier struct {
	calls     atomic.Int64
	principal domain.Principal
	err       error
}

func (v *countingVerifier) VerifyToken(_ context.Context, _ string) (domain.Principal, error) {
	v.calls.Add(1)
	if v.err != nil {
		return domain.Principal{}, v.err
	}
	return v.principal, nil
}

func newAuthTestRouter(verifier *countingVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier))
	r.GET("/whoami", func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": principal.Name, "department": principal.Department})
	})
	return r
}

func TestAuthMiddleware_MissingHeaderRejectedWithoutVerifierCall(t *testing.T) {
	verifier := &countingVerifier{}
	r := newAuthTestRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.EqualValues(t, 0, verifier.calls.Load(), "verifier must not run without a credential")
}

func TestAuthMiddleware_MalformedHeaderRejectedWithoutVerifierCall(t *testing.T) {
	verifier := &countingVerifier{}
	r := newAuthTestRouter(verifier)

	for _, header := range []string{"whatever", "Basic abc123", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
	assert.EqualValues(t, 0, verifier.calls.Load())
}

func TestAuthMiddleware_ValidCredentialAttachesPrincipal(t *testing.T) {
	verifier := &countingVerifier{
		principal: domain.Principal{ID: "u-1", Name: "Jane", Department: "Finance"},
	}
	r := newAuthTestRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, verifier.calls.Load())

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Jane", body["name"])
	assert.Equal(t, "Finance", body["department"])
}

func TestAuthMiddleware_VerifierOutageMapsTo503(t *testing.T) {
	verifier := &countingVerifier{
		err: fmt.Errorf("identity service unreachable: %w", apperrors.ErrServiceUnavailable),
	}
	r := newAuthTestRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthMiddleware_RedirectHintSurfacesInBody(t *testing.T) {
	verifier := &countingVerifier{
		err: &apperrors.RedirectError{
			Err:        fmt.Errorf("session inactive: %w", apperrors.ErrUnauthenticated),
			RedirectTo: "https://id.example.com/login",
		},
	}
	r := newAuthTestRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer stale-session")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://id.example.com/login", body["redirectTo"])
}

// End to end against a real verifier: a signed token must reach the handler
// with its department claim casing intact.
func TestAuthMiddleware_WithRealVerifier(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:       "gate-test-secret",
		JWTAlg:          "HS256",
		IdentityTimeout: time.Second,
	}
	verifier := services.NewAuthService(cfg, slog.Default())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier))
	r.GET("/whoami", func(c *gin.Context) {
		principal, _ := middleware.GetPrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"department": principal.Department})
	})

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        "u-1",
		"department": "Finance",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Finance", body["department"])
}
