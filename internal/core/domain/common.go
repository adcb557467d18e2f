package domain

import "time"

// Timestamps holds the standard creation/update audit pair for domain entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
