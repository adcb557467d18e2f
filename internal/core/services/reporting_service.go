package services

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	portsrepo "github.com/opsdesk/requisition_backend/internal/core/ports/repositories"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
)

const metricsDateLayout = "2006-01-02"

// ReportingService serves dashboard aggregates over requisitions.
type ReportingService struct {
	repo portsrepo.ReportingRepository
}

func NewReportingService(repo portsrepo.ReportingRepository) *ReportingService {
	return &ReportingService{repo: repo}
}

var _ portssvc.ReportingSvc = (*ReportingService)(nil)

// GetMetrics parses the ISO date bounds and aggregates the window. An empty
// start defaults to the epoch, an empty end to tomorrow (so today is
// included; the repository uses a half-open interval).
func (s *ReportingService) GetMetrics(ctx context.Context, startDate, endDate string) (*domain.RequisitionMetrics, error) {
	start := time.Unix(0, 0).UTC()
	if startDate != "" {
		parsed, err := time.Parse(metricsDateLayout, startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", startDate, apperrors.ErrValidation)
		}
		start = parsed
	}

	// Default to tomorrow's local midnight so today is always fully included;
	// truncating in UTC undershoots in zones east of UTC.
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if endDate != "" {
		parsed, err := time.Parse(metricsDateLayout, endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", endDate, apperrors.ErrValidation)
		}
		end = parsed.AddDate(0, 0, 1) // Inclusive end date
	}

	metrics, err := s.repo.GetRequisitionMetrics(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get requisition metrics: %w", err)
	}
	return metrics, nil
}
