package dto

import "time"

// ActionItemInput is an action item supplied on minute creation or update.
type ActionItemInput struct {
	Description string     `json:"description" binding:"required"`
	Owner       string     `json:"owner"`
	DueDate     *time.Time `json:"dueDate"`
	Done        bool       `json:"done"`
}

// CreateMinuteRequest is the body of the minute creation endpoint.
type CreateMinuteRequest struct {
	Title       string            `json:"title" binding:"required"`
	Date        time.Time         `json:"date" binding:"required"`
	Attendees   []string          `json:"attendees"`
	Body        string            `json:"body"`
	ActionItems []ActionItemInput `json:"actionItems" binding:"dive"`
}

// UpdateMinuteRequest is the body of the minute update endpoint. Nil fields
// are left unchanged.
type UpdateMinuteRequest struct {
	Title       *string            `json:"title"`
	Date        *time.Time         `json:"date"`
	Attendees   *[]string          `json:"attendees"`
	Body        *string            `json:"body"`
	ActionItems *[]ActionItemInput `json:"actionItems"`
}

// ToggleActionItemRequest flips the done flag of one action item.
type ToggleActionItemRequest struct {
	Index int  `json:"index" binding:"min=0"`
	Done  bool `json:"done"`
}

// ListMinutesParams are the query parameters for listing minutes.
type ListMinutesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
