package services

// Notification is a prepared outbound email: the transition outcome's
// recipients, subject and rendered body.
type Notification struct {
	To      []string
	Subject string
	Body    string
}

// NotifierSvc hands notifications to a background dispatcher. Enqueue never
// blocks the request path and failures are logged, never propagated.
type NotifierSvc interface {
	Enqueue(n Notification)

	// Close drains pending notifications and stops the dispatcher.
	Close()
}
