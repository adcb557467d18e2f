package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/platform/config"
)

// DepartmentTokenService implements the legacy department-selection flow.
// Tokens are always locally signed and verified; there is no delegation.
type DepartmentTokenService struct {
	secret string
	expiry time.Duration
}

func NewDepartmentTokenService(cfg *config.Config) *DepartmentTokenService {
	return &DepartmentTokenService{
		secret: cfg.DeptTokenSecret,
		expiry: cfg.DeptTokenExpiry,
	}
}

var _ portssvc.DepartmentTokenSvc = (*DepartmentTokenService)(nil)

func (s *DepartmentTokenService) IssueDepartmentToken(department string) (string, time.Time, error) {
	if department == "" {
		return "", time.Time{}, fmt.Errorf("department name required: %w", apperrors.ErrValidation)
	}
	now := time.Now()
	expiresAt := now.Add(s.expiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"department": department,
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign department token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *DepartmentTokenService) VerifyDepartmentToken(raw string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid department token: %w", apperrors.ErrUnauthenticated)
	}

	department, ok := DepartmentFromClaims(claims)
	if !ok {
		return "", fmt.Errorf("department claim missing: %w", apperrors.ErrForbidden)
	}
	return department, nil
}
