package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
)

// contextKey is a private type for request context keys.
// Using a custom type prevents collisions.
type contextKey string

const (
	principalCtxKey  = contextKey("principal")
	departmentCtxKey = contextKey("department")
)

// GetPrincipalFromContext retrieves the authenticated principal attached by
// the auth middleware. The boolean reports whether one was found.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	principal, ok := c.Request.Context().Value(principalCtxKey).(domain.Principal)
	return principal, ok
}

// GetDepartmentFromContext retrieves the department attached by either gate.
func GetDepartmentFromContext(c *gin.Context) (string, bool) {
	department, ok := c.Request.Context().Value(departmentCtxKey).(string)
	return department, ok
}

func withPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	ctx = context.WithValue(ctx, principalCtxKey, principal)
	return context.WithValue(ctx, departmentCtxKey, principal.Department)
}

func withDepartment(ctx context.Context, department string) context.Context {
	return context.WithValue(ctx, departmentCtxKey, department)
}
