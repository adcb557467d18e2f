package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	portsrepo "github.com/opsdesk/requisition_backend/internal/core/ports/repositories"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/dto"
	"github.com/opsdesk/requisition_backend/internal/utils"
)

// RequisitionService owns requisition creation, listing visibility and the
// status transition flow.
type RequisitionService struct {
	repo         portsrepo.RequisitionRepositoryFacade
	notifier     portssvc.NotifierSvc
	financeEmail string
	frontendURL  string
	numberSeq    atomic.Uint64
}

func NewRequisitionService(repo portsrepo.RequisitionRepositoryFacade, notifier portssvc.NotifierSvc, financeEmail, frontendURL string) *RequisitionService {
	s := &RequisitionService{
		repo:         repo,
		notifier:     notifier,
		financeEmail: financeEmail,
		frontendURL:  frontendURL,
	}
	// Seed from the wall clock so sequences don't restart from zero; the
	// atomic increment keeps concurrent in-process creations distinct.
	s.numberSeq.Store(uint64(time.Now().UnixMicro()))
	return s
}

var _ portssvc.RequisitionSvcFacade = (*RequisitionService)(nil)

// nextRequisitionNumber yields IR-<YYYYMMDD>-<6 digit suffix>.
func (s *RequisitionService) nextRequisitionNumber(now time.Time) string {
	suffix := s.numberSeq.Add(1) % 1_000_000
	return fmt.Sprintf("IR-%s-%06d", now.Format("20060102"), suffix)
}

func (s *RequisitionService) CreateRequisition(ctx context.Context, req dto.CreateRequisitionRequest, attachments []string, creator domain.Principal) (*domain.Requisition, error) {
	items := make([]domain.RequisitionItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item quantity must be at least 1: %w", apperrors.ErrValidation)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("item unit price must not be negative: %w", apperrors.ErrValidation)
		}
		items = append(items, domain.RequisitionItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one item is required: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	requisition := domain.Requisition{
		RequisitionID:     uuid.NewString(),
		RequisitionNumber: s.nextRequisitionNumber(now),
		Title:             req.Title,
		Department:        req.Department,
		Category:          req.Category,
		Priority:          req.Priority,
		Purpose:           req.Purpose,
		Items:             items,
		User:              creator.Snapshot(),
		Status:            domain.StatusPending,
		Attachments:       attachments,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.AccountToPay != nil {
		requisition.AccountToPay = &domain.BankAccount{
			AccountName:   req.AccountToPay.AccountName,
			AccountNumber: req.AccountToPay.AccountNumber,
			BankName:      req.AccountToPay.BankName,
		}
	}
	if requisition.Attachments == nil {
		requisition.Attachments = []string{}
	}

	// Client-supplied totals are ignored.
	requisition.ComputeTotals()

	if err := s.repo.SaveRequisition(ctx, requisition); err != nil {
		return nil, fmt.Errorf("failed to create requisition: %w", err)
	}

	s.notifier.Enqueue(s.newRequisitionNotification(requisition))
	return &requisition, nil
}

func (s *RequisitionService) GetRequisitionByID(ctx context.Context, requisitionID string) (*domain.Requisition, error) {
	requisition, err := s.repo.FindRequisitionByID(ctx, requisitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requisition: %w", err)
	}
	return requisition, nil
}

func (s *RequisitionService) ListRequisitions(ctx context.Context, viewer domain.Principal) ([]domain.Requisition, error) {
	if viewer.CanSeeAllRequisitions() {
		return s.repo.FindRequisitions(ctx)
	}
	return s.repo.FindRequisitionsByRequesterName(ctx, viewer.Name)
}

func (s *RequisitionService) ApplyStatusChange(ctx context.Context, requisitionID string, requestedStatus string, actor domain.Principal, comment string) (*domain.Requisition, string, error) {
	now := time.Now()
	plan, err := domain.PlanTransition(domain.RequisitionStatus(requestedStatus), actor, comment, now)
	if err != nil {
		return nil, "", err
	}

	updated, err := s.repo.ApplyTransition(ctx, requisitionID, plan, now)
	if err != nil {
		return nil, "", fmt.Errorf("failed to apply status change: %w", err)
	}

	if plan.Notify {
		s.notifier.Enqueue(s.transitionNotification(*updated, actor, now))
	}

	message := fmt.Sprintf("Requisition %s is now %s", updated.RequisitionNumber, updated.Status)
	return updated, message, nil
}

func (s *RequisitionService) DeleteRequisition(ctx context.Context, requisitionID string) error {
	if err := s.repo.DeleteRequisition(ctx, requisitionID); err != nil {
		return fmt.Errorf("failed to delete requisition: %w", err)
	}
	return nil
}

func (s *RequisitionService) newRequisitionNotification(req domain.Requisition) portssvc.Notification {
	return portssvc.Notification{
		To:      recipients(s.financeEmail),
		Subject: fmt.Sprintf("New requisition %s: %s", req.RequisitionNumber, req.Title),
		Body: fmt.Sprintf(
			"A new requisition has been submitted.\n\n"+
				"Number: %s\nTitle: %s\nDepartment: %s\nTotal: %s\nSubmitted by: %s (%s)\n\n"+
				"Review it at %s/requisitions/%s\n",
			req.RequisitionNumber, req.Title, req.Department,
			utils.FormatAmount(req.TotalAmount),
			req.User.Name, req.User.Department,
			s.frontendURL, req.RequisitionID,
		),
	}
}

func (s *RequisitionService) transitionNotification(req domain.Requisition, actor domain.Principal, when time.Time) portssvc.Notification {
	comment := req.Comment
	if comment == "" {
		comment = "No comment provided."
	}

	outcome := "approved"
	if req.Status == domain.StatusRejected {
		outcome = "rejected"
	}

	return portssvc.Notification{
		To: recipients(req.User.Email, s.financeEmail),
		Subject: fmt.Sprintf("Requisition %s %s: %s",
			req.RequisitionNumber, outcome, req.Title),
		Body: fmt.Sprintf(
			"Requisition %s has been %s.\n\n"+
				"Title: %s\nDepartment: %s\nTotal: %s\nWhen: %s\nBy: %s (%s)\nComment: %s\n\n"+
				"View it at %s/requisitions/%s\n",
			req.RequisitionNumber, outcome,
			req.Title, req.Department,
			utils.FormatAmount(req.TotalAmount),
			when.Format(time.RFC1123),
			actor.Name, actor.Department,
			comment,
			s.frontendURL, req.RequisitionID,
		),
	}
}

// recipients drops empty addresses so an unconfigured finance address never
// produces an invalid envelope.
func recipients(addrs ...string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
