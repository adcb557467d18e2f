package services

import (
	"context"
	"time"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
)

// TokenVerifierSvc validates a bearer credential and yields a normalized
// principal. Implementations pick the verification strategy from the token's
// structure: a three-part token is verified locally, anything else is
// delegated to the external identity service.
type TokenVerifierSvc interface {
	// VerifyToken returns the principal behind the raw bearer string, or
	// an error wrapping apperrors.ErrUnauthenticated /
	// apperrors.ErrServiceUnavailable.
	VerifyToken(ctx context.Context, raw string) (domain.Principal, error)
}

// DepartmentTokenSvc is the legacy department-selection flow: a department
// name is exchanged for a short-lived, locally-signed token carrying the
// department as a claim.
type DepartmentTokenSvc interface {
	IssueDepartmentToken(department string) (token string, expiresAt time.Time, err error)

	// VerifyDepartmentToken returns the department claim of a valid token.
	// A valid token with no department claim fails with apperrors.ErrForbidden.
	VerifyDepartmentToken(raw string) (department string, err error)
}
