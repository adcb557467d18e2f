package services

import (
	"context"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
	"github.com/opsdesk/requisition_backend/internal/dto"
)

// RequisitionReaderSvc defines read operations for requisitions
type RequisitionReaderSvc interface {
	// GetRequisitionByID retrieves a single requisition.
	GetRequisitionByID(ctx context.Context, requisitionID string) (*domain.Requisition, error)

	// ListRequisitions returns the requisitions visible to the viewer:
	// finance or Admin principals see all, others only their own.
	ListRequisitions(ctx context.Context, viewer domain.Principal) ([]domain.Requisition, error)
}

// RequisitionWriterSvc defines write operations for requisitions
type RequisitionWriterSvc interface {
	// CreateRequisition persists a new requisition with server-computed
	// totals, a generated requisition number, the creator snapshot and the
	// stored attachment paths, then notifies finance.
	CreateRequisition(ctx context.Context, req dto.CreateRequisitionRequest, attachments []string, creator domain.Principal) (*domain.Requisition, error)

	// ApplyStatusChange runs the status transition for the acting principal
	// and returns the updated document plus a confirmation message.
	ApplyStatusChange(ctx context.Context, requisitionID string, requestedStatus string, actor domain.Principal, comment string) (*domain.Requisition, string, error)

	// DeleteRequisition removes a requisition.
	DeleteRequisition(ctx context.Context, requisitionID string) error
}

// RequisitionSvcFacade combines all requisition service interfaces.
type RequisitionSvcFacade interface {
	RequisitionReaderSvc
	RequisitionWriterSvc
}
