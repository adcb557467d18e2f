package repositories

import (
	"context"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
)

// MinuteReader defines read operations for meeting minutes
type MinuteReader interface {
	FindMinuteByID(ctx context.Context, minuteID string) (*domain.Minute, error)
	FindMinutes(ctx context.Context, limit int, offset int) ([]domain.Minute, error)
}

// MinuteWriter defines write operations for meeting minutes
type MinuteWriter interface {
	SaveMinute(ctx context.Context, minute domain.Minute) error
	UpdateMinute(ctx context.Context, minute domain.Minute) error
	DeleteMinute(ctx context.Context, minuteID string) error
}

// MinuteRepositoryFacade combines all minute repository interfaces.
type MinuteRepositoryFacade interface {
	MinuteReader
	MinuteWriter
}
