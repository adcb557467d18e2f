package services

import (
	"context"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
)

// ReportingSvc serves dashboard aggregates.
type ReportingSvc interface {
	// GetMetrics aggregates requisitions created within the window given by
	// the ISO dates; empty bounds default to an open window.
	GetMetrics(ctx context.Context, startDate, endDate string) (*domain.RequisitionMetrics, error)
}
