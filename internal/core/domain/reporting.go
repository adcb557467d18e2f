package domain

import "github.com/shopspring/decimal"

// RequisitionMetrics are dashboard aggregates for a date window.
type RequisitionMetrics struct {
	Total          int64           `json:"total"`
	Pending        int64           `json:"pending"`
	InReview       int64           `json:"inReview"`
	Approved       int64           `json:"approved"`
	Rejected       int64           `json:"rejected"`
	Completed      int64           `json:"completed"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
}
