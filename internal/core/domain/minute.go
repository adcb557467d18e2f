package domain

import "time"

// ActionItem is a follow-up task recorded against a meeting minute.
type ActionItem struct {
	Description string     `json:"description"`
	Owner       string     `json:"owner"`
	DueDate     *time.Time `json:"dueDate"`
	Done        bool       `json:"done"`
}

// Minute is a recorded meeting: attendees, free-text body, and tracked action
// items.
type Minute struct {
	MinuteID    string            `json:"minuteID"`
	Title       string            `json:"title"`
	Date        time.Time         `json:"date"`
	Attendees   []string          `json:"attendees"`
	Body        string            `json:"body"`
	ActionItems []ActionItem      `json:"actionItems"`
	CreatedBy   PrincipalSnapshot `json:"createdBy"`
	Timestamps
}
