package dto

// MetricsParams are the query parameters of the dashboard metrics endpoint.
// Dates are ISO "2006-01-02"; both default to an open bound when absent.
type MetricsParams struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
