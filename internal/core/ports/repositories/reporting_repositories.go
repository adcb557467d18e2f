package repositories

import (
	"context"
	"time"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
)

// ReportingRepository provides dashboard aggregates over requisitions.
type ReportingRepository interface {
	// GetRequisitionMetrics aggregates counts per status and the summed
	// approved amount for requisitions created within [start, end).
	GetRequisitionMetrics(ctx context.Context, start, end time.Time) (*domain.RequisitionMetrics, error)
}
