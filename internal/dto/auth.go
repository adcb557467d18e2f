package dto

// DepartmentTokenRequest exchanges a department name for a short-lived signed
// token (legacy department-selection flow).
type DepartmentTokenRequest struct {
	Department string `json:"department" binding:"required"`
}

// DepartmentTokenResponse carries the issued department token.
type DepartmentTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
