package dto

import (
	"github.com/shopspring/decimal"

	"github.com/opsdesk/requisition_backend/internal/core/domain"
)

// RequisitionItemInput is a client-supplied line item. Total is accepted for
// wire compatibility but always recomputed server-side.
type RequisitionItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// BankAccountInput is the optional payment target supplied at creation.
type BankAccountInput struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
}

// CreateRequisitionRequest is the JSON payload carried in the multipart "data"
// field of the create endpoint.
type CreateRequisitionRequest struct {
	Title        string                 `json:"title" binding:"required"`
	Department   string                 `json:"department"`
	Category     string                 `json:"category"`
	Priority     string                 `json:"priority"`
	Purpose      string                 `json:"purpose"`
	Items        []RequisitionItemInput `json:"items" binding:"required,min=1,dive"`
	TotalAmount  decimal.Decimal        `json:"totalAmount"` // Ignored; recomputed server-side
	AccountToPay *BankAccountInput      `json:"accountToPay"`
}

// UpdateRequisitionStatusRequest is the body of the status-update endpoint.
type UpdateRequisitionStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// RequisitionStatusResponse wraps the updated document with a confirmation
// message, matching the original API shape.
type RequisitionStatusResponse struct {
	Message string             `json:"message"`
	Data    domain.Requisition `json:"data"`
}

// ListRequisitionsResponse wraps the visible requisitions for the caller.
type ListRequisitionsResponse struct {
	Requisitions []domain.Requisition `json:"requisitions"`
}
