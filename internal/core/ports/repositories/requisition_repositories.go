package repositories

import (
	"context"
	"time"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
)

// RequisitionReader defines read operations for requisition data
type RequisitionReader interface {
	// FindRequisitionByID retrieves a single requisition by its ID.
	FindRequisitionByID(ctx context.Context, requisitionID string) (*domain.Requisition, error)

	// FindRequisitions retrieves every requisition, newest first.
	FindRequisitions(ctx context.Context) ([]domain.Requisition, error)

	// FindRequisitionsByRequesterName retrieves requisitions created by the
	// named principal, newest first.
	FindRequisitionsByRequesterName(ctx context.Context, name string) ([]domain.Requisition, error)
}

// RequisitionWriter defines write operations for requisition data
type RequisitionWriter interface {
	// SaveRequisition persists a new requisition.
	SaveRequisition(ctx context.Context, requisition domain.Requisition) error

	// ApplyTransition applies a status transition plan as a single conditional
	// update and returns the updated document, or apperrors.ErrNotFound when
	// no row matches.
	ApplyTransition(ctx context.Context, requisitionID string, plan domain.TransitionPlan, now time.Time) (*domain.Requisition, error)

	// DeleteRequisition removes a requisition, or apperrors.ErrNotFound.
	DeleteRequisition(ctx context.Context, requisitionID string) error
}

// RequisitionRepositoryFacade combines all requisition repository interfaces.
type RequisitionRepositoryFacade interface {
	RequisitionReader
	RequisitionWriter
}
