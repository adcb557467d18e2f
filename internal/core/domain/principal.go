package domain

import "strings"

const (
	// AdminRole is the role name that grants cross-department access.
	AdminRole = "Admin"
	// FinanceDepartment is the department whose members may stamp approvals.
	FinanceDepartment = "finance"
)

// Principal is the verified identity derived from a request's credential.
// It is ephemeral: reconstructed per request, never persisted directly.
type Principal struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Roles      []string `json:"roles"`
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsFinance reports whether the principal belongs to the finance department,
// matched case-insensitively.
func (p Principal) IsFinance() bool {
	return strings.EqualFold(p.Department, FinanceDepartment)
}

// CanSeeAllRequisitions reports whether the principal may list every
// requisition rather than only their own.
func (p Principal) CanSeeAllRequisitions() bool {
	return p.IsFinance() || p.HasRole(AdminRole)
}

// PrincipalSnapshot is the persisted capture of a principal at the moment it
// acted on a requisition (creation or approval). Department casing is kept as
// received.
type PrincipalSnapshot struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// Snapshot captures the principal for persistence. The first role is recorded;
// the original system stores a single role string per actor.
func (p Principal) Snapshot() PrincipalSnapshot {
	role := ""
	if len(p.Roles) > 0 {
		role = p.Roles[0]
	}
	return PrincipalSnapshot{
		Name:       p.Name,
		Email:      p.Email,
		Department: p.Department,
		Role:       role,
	}
}
