package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	portsrepo "github.com/opsdesk/requisition_backend/internal/core/ports/repositories"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/dto"
)

// MinuteService owns the meeting-minutes module.
type MinuteService struct {
	repo portsrepo.MinuteRepositoryFacade
}

func NewMinuteService(repo portsrepo.MinuteRepositoryFacade) *MinuteService {
	return &MinuteService{repo: repo}
}

var _ portssvc.MinuteSvcFacade = (*MinuteService)(nil)

func mapActionItems(inputs []dto.ActionItemInput) []domain.ActionItem {
	items := make([]domain.ActionItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.ActionItem{
			Description: in.Description,
			Owner:       in.Owner,
			DueDate:     in.DueDate,
			Done:        in.Done,
		})
	}
	return items
}

func (s *MinuteService) CreateMinute(ctx context.Context, req dto.CreateMinuteRequest, creator domain.Principal) (*domain.Minute, error) {
	now := time.Now()
	minute := domain.Minute{
		MinuteID:    uuid.NewString(),
		Title:       req.Title,
		Date:        req.Date,
		Attendees:   req.Attendees,
		Body:        req.Body,
		ActionItems: mapActionItems(req.ActionItems),
		CreatedBy:   creator.Snapshot(),
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if minute.Attendees == nil {
		minute.Attendees = []string{}
	}

	if err := s.repo.SaveMinute(ctx, minute); err != nil {
		return nil, fmt.Errorf("failed to create minute: %w", err)
	}
	return &minute, nil
}

func (s *MinuteService) GetMinuteByID(ctx context.Context, minuteID string) (*domain.Minute, error) {
	minute, err := s.repo.FindMinuteByID(ctx, minuteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get minute: %w", err)
	}
	return minute, nil
}

func (s *MinuteService) ListMinutes(ctx context.Context, limit, offset int) ([]domain.Minute, error) {
	minutes, err := s.repo.FindMinutes(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list minutes: %w", err)
	}
	return minutes, nil
}

func (s *MinuteService) UpdateMinute(ctx context.Context, minuteID string, req dto.UpdateMinuteRequest) (*domain.Minute, error) {
	minute, err := s.repo.FindMinuteByID(ctx, minuteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load minute for update: %w", err)
	}

	if req.Title != nil {
		minute.Title = *req.Title
	}
	if req.Date != nil {
		minute.Date = *req.Date
	}
	if req.Attendees != nil {
		minute.Attendees = *req.Attendees
	}
	if req.Body != nil {
		minute.Body = *req.Body
	}
	if req.ActionItems != nil {
		minute.ActionItems = mapActionItems(*req.ActionItems)
	}
	minute.UpdatedAt = time.Now()

	if err := s.repo.UpdateMinute(ctx, *minute); err != nil {
		return nil, fmt.Errorf("failed to update minute: %w", err)
	}
	return minute, nil
}

func (s *MinuteService) DeleteMinute(ctx context.Context, minuteID string) error {
	if err := s.repo.DeleteMinute(ctx, minuteID); err != nil {
		return fmt.Errorf("failed to delete minute: %w", err)
	}
	return nil
}

func (s *MinuteService) ToggleActionItem(ctx context.Context, minuteID string, index int, done bool) (*domain.Minute, error) {
	minute, err := s.repo.FindMinuteByID(ctx, minuteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load minute: %w", err)
	}
	if index < 0 || index >= len(minute.ActionItems) {
		return nil, fmt.Errorf("action item index %d out of range: %w", index, apperrors.ErrValidation)
	}

	minute.ActionItems[index].Done = done
	minute.UpdatedAt = time.Now()

	if err := s.repo.UpdateMinute(ctx, *minute); err != nil {
		return nil, fmt.Errorf("failed to toggle action item: %w", err)
	}
	return minute, nil
}
