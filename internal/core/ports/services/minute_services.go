package services

import (
	"context"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
	"github.com/opsdesk/requisition_backend/internal/dto"
)

// MinuteSvcFacade is the meeting-minutes module: CRUD plus action-item
// tracking.
type MinuteSvcFacade interface {
	CreateMinute(ctx context.Context, req dto.CreateMinuteRequest, creator domain.Principal) (*domain.Minute, error)
	GetMinuteByID(ctx context.Context, minuteID string) (*domain.Minute, error)
	ListMinutes(ctx context.Context, limit, offset int) ([]domain.Minute, error)
	UpdateMinute(ctx context.Context, minuteID string, req dto.UpdateMinuteRequest) (*domain.Minute, error)
	DeleteMinute(ctx context.Context, minuteID string) error

	// ToggleActionItem sets the done flag of the index-th action item.
	ToggleActionItem(ctx context.Context, minuteID string, index int, done bool) (*domain.Minute, error)
}
