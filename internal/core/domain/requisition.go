package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequisitionStatus is the linear workflow state of a requisition.
type RequisitionStatus string

const (
	StatusPending   RequisitionStatus = "pending"
	StatusInReview  RequisitionStatus = "in review"
	StatusApproved  RequisitionStatus = "approved"
	StatusRejected  RequisitionStatus = "rejected"
	StatusCompleted RequisitionStatus = "completed"
)

// IsValid reports whether s is one of the five enumerated statuses.
func (s RequisitionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// RequisitionItem is a single line item on a requisition.
// Total is always derived server-side as Quantity * UnitPrice.
type RequisitionItem struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// BankAccount is the optional payment target of a requisition.
type BankAccount struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
}

// Requisition is an internal payment/procurement request moving through
// pending -> {approved|rejected} -> completed.
type Requisition struct {
	RequisitionID     string `json:"requisitionID"`
	RequisitionNumber string `json:"requisitionNumber"` // Immutable once assigned, globally unique

	Title      string `json:"title"`
	Department string `json:"department"`
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	Purpose    string `json:"purpose"`
	Comment    string `json:"comment"`

	Items       []RequisitionItem `json:"items"`
	TotalAmount decimal.Decimal   `json:"totalAmount"` // Sum of item totals, never trusted from the client

	User                       PrincipalSnapshot  `json:"user"` // Requesting principal at creation time
	ApprovedByFinance          *PrincipalSnapshot `json:"approvedByFinance"`
	ApprovedByHeadOfDepartment bool               `json:"approvedByHeadOfDepartment"`

	AccountToPay *BankAccount `json:"accountToPay"`

	Status     RequisitionStatus `json:"status"`
	ApprovedOn *time.Time        `json:"approvedOn"`
	RejectedOn *time.Time        `json:"rejectedOn"`

	Attachments []string `json:"attachments"`
	Timestamps
}

// ComputeTotals recalculates every line total and the requisition total from
// quantity and unit price, discarding whatever the client supplied.
func (r *Requisition) ComputeTotals() {
	total := decimal.Zero
	for i := range r.Items {
		r.Items[i].Total = r.Items[i].UnitPrice.Mul(decimal.NewFromInt(r.Items[i].Quantity))
		total = total.Add(r.Items[i].Total)
	}
	r.TotalAmount = total
}
