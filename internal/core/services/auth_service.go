package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/platform/config"
)

// departmentClaimKeys is the ordered precedence list for the department claim.
// Evaluated once per token; the first present, non-empty string wins.
var departmentClaimKeys = []string{"department", "department_id", "dept"}

// AuthService verifies bearer credentials. Structurally signed tokens
// (two '.' separators) are verified locally; opaque tokens are delegated to
// the external identity service.
type AuthService struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewAuthService(cfg *config.Config, logger *slog.Logger) *AuthService {
	return &AuthService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.IdentityTimeout},
		logger:     logger,
	}
}

var _ portssvc.TokenVerifierSvc = (*AuthService)(nil)

// VerifyToken implements the two-variant verification strategy.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (domain.Principal, error) {
	var principal domain.Principal
	var err error

	if strings.Count(raw, ".") == 2 {
		principal, err = s.verifyLocal(raw)
	} else {
		principal, err = s.introspect(ctx, raw)
	}
	if err != nil {
		return domain.Principal{}, err
	}

	// Audit trail for every successful verification.
	s.logger.Info("credential verified",
		slog.String("email", principal.Email),
		slog.String("name", principal.Name),
		slog.String("department", principal.Department),
	)
	return principal, nil
}

func (s *AuthService) verifyLocal(raw string) (domain.Principal, error) {
	claims := jwt.MapClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{s.cfg.JWTAlg})}
	if s.cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.JWTIssuer))
	}
	if s.cfg.JWTAudience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.JWTAudience))
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, fmt.Errorf("token expired: %w", apperrors.ErrUnauthenticated)
		}
		return domain.Principal{}, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthenticated)
	}
	if !token.Valid {
		return domain.Principal{}, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthenticated)
	}

	return principalFromClaims(claims), nil
}

// principalFromClaims normalizes the claim set of a locally-verified token.
func principalFromClaims(claims jwt.MapClaims) domain.Principal {
	principal := domain.Principal{
		ID:    stringClaim(claims, "sub"),
		Email: stringClaim(claims, "email"),
		Name:  stringClaim(claims, "name"),
	}
	if principal.ID == "" {
		principal.ID = stringClaim(claims, "id")
	}

	if roles, ok := claims["roles"]; ok {
		switch v := roles.(type) {
		case []interface{}:
			for _, r := range v {
				if role, ok := r.(string); ok {
					principal.Roles = append(principal.Roles, role)
				}
			}
		case string:
			principal.Roles = []string{v}
		}
	}

	if dept, ok := DepartmentFromClaims(claims); ok {
		principal.Department = dept
	}
	return principal
}

// DepartmentFromClaims resolves the department claim via the ordered
// precedence list, preserving the claim value's casing.
func DepartmentFromClaims(claims jwt.MapClaims) (string, bool) {
	for _, key := range departmentClaimKeys {
		if v, ok := claims[key]; ok {
			if dept, ok := v.(string); ok && dept != "" {
				return dept, true
			}
		}
	}
	return "", false
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// introspectionResponse is the identity service's reply on both the POST
// introspect and GET verify endpoints.
type introspectionResponse struct {
	Active bool `json:"active"`
	User   struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		Email      string   `json:"email"`
		Department string   `json:"department"`
		Roles      []string `json:"roles"`
	} `json:"user"`
}

// introspect delegates verification of an opaque token: POST introspect with
// the raw token first, GET verify with the bearer header when the POST
// transport fails.
func (s *AuthService) introspect(ctx context.Context, raw string) (domain.Principal, error) {
	if s.cfg.IdentityBaseURL == "" {
		return domain.Principal{}, fmt.Errorf("no identity service configured for opaque token: %w", apperrors.ErrUnauthenticated)
	}

	resp, postErr := s.postIntrospect(ctx, raw)
	if postErr != nil {
		var getErr error
		resp, getErr = s.getVerify(ctx, raw)
		if getErr != nil {
			s.logger.Error("identity service unreachable",
				slog.String("introspect_error", postErr.Error()),
				slog.String("verify_error", getErr.Error()),
			)
			return domain.Principal{}, fmt.Errorf("identity service unreachable: %w", apperrors.ErrServiceUnavailable)
		}
	}

	if !resp.Active {
		return domain.Principal{}, &apperrors.RedirectError{
			Err:        fmt.Errorf("session inactive: %w", apperrors.ErrUnauthenticated),
			RedirectTo: s.loginURL(),
		}
	}

	return domain.Principal{
		ID:         resp.User.ID,
		Name:       resp.User.Name,
		Email:      resp.User.Email,
		Department: resp.User.Department,
		Roles:      resp.User.Roles,
	}, nil
}

func (s *AuthService) postIntrospect(ctx context.Context, raw string) (*introspectionResponse, error) {
	body, err := json.Marshal(map[string]string{"token": raw})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.IdentityBaseURL+"/api/auth/introspect", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.doIdentityRequest(req)
}

func (s *AuthService) getVerify(ctx context.Context, raw string) (*introspectionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.IdentityBaseURL+"/api/auth/verify", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+raw)
	return s.doIdentityRequest(req)
}

func (s *AuthService) doIdentityRequest(req *http.Request) (*introspectionResponse, error) {
	httpResp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	// 401/403 from the identity service means an invalid session, not a
	// transport failure.
	if httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden {
		return &introspectionResponse{Active: false}, nil
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("identity service returned status %d", httpResp.StatusCode)
	}

	var resp introspectionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	return &resp, nil
}

func (s *AuthService) loginURL() string {
	return s.cfg.IdentityBaseURL + "/login"
}
