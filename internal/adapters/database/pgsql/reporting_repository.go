package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
	portsrepo "github.com/opsdesk/requisition_backend/internal/core/ports/repositories"
)

type ReportingRepository struct {
	db *pgxpool.Pool
}

func NewReportingRepository(db *pgxpool.Pool) *ReportingRepository {
	return &ReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetRequisitionMetrics computes the dashboard aggregates in one pass using
// FILTER clauses.
func (r *ReportingRepository) GetRequisitionMetrics(ctx context.Context, start, end time.Time) (*domain.RequisitionMetrics, error) {
	query := `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'pending'),
            COUNT(*) FILTER (WHERE status = 'in review'),
            COUNT(*) FILTER (WHERE status = 'approved'),
            COUNT(*) FILTER (WHERE status = 'rejected'),
            COUNT(*) FILTER (WHERE status = 'completed'),
            COALESCE(SUM(total_amount) FILTER (WHERE status = 'approved'), 0)
        FROM requisitions
        WHERE created_at >= $1 AND created_at < $2;
    `
	var metrics domain.RequisitionMetrics
	err := r.db.QueryRow(ctx, query, start, end).Scan(
		&metrics.Total,
		&metrics.Pending,
		&metrics.InReview,
		&metrics.Approved,
		&metrics.Rejected,
		&metrics.Completed,
		&metrics.ApprovedAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate requisition metrics: %w", err)
	}
	return &metrics, nil
}
