package services

import (
	"log/slog"
	"sync"

	gomail "gopkg.in/gomail.v2"

	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/platform/config"
)

// mailSender is the dialer surface the worker needs; satisfied by
// gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier delivers notifications over SMTP from a background worker.
// The request path only ever touches the buffered channel; delivery failures
// are logged by the worker and never reach a caller.
type EmailNotifier struct {
	sender mailSender
	from   string
	logger *slog.Logger

	queue chan portssvc.Notification
	wg    sync.WaitGroup
	once  sync.Once
}

const notifierQueueSize = 64

func NewEmailNotifier(cfg *config.Config, logger *slog.Logger) *EmailNotifier {
	return newEmailNotifier(
		gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		cfg.SMTPFrom,
		logger,
	)
}

func newEmailNotifier(sender mailSender, from string, logger *slog.Logger) *EmailNotifier {
	n := &EmailNotifier{
		sender: sender,
		from:   from,
		logger: logger,
		queue:  make(chan portssvc.Notification, notifierQueueSize),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

var _ portssvc.NotifierSvc = (*EmailNotifier)(nil)

func (n *EmailNotifier) run() {
	defer n.wg.Done()
	for notification := range n.queue {
		n.deliver(notification)
	}
}

func (n *EmailNotifier) deliver(notification portssvc.Notification) {
	if len(notification.To) == 0 {
		n.logger.Warn("notification has no recipients, skipping", slog.String("subject", notification.Subject))
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", notification.To...)
	m.SetHeader("Subject", notification.Subject)
	m.SetBody("text/plain", notification.Body)

	if err := n.sender.DialAndSend(m); err != nil {
		n.logger.Error("failed to send notification email",
			slog.String("subject", notification.Subject),
			slog.String("error", err.Error()),
		)
	}
}

// Enqueue never blocks: when the buffer is full the notification is dropped
// with a warning rather than stalling the request.
func (n *EmailNotifier) Enqueue(notification portssvc.Notification) {
	select {
	case n.queue <- notification:
	default:
		n.logger.Warn("notification queue full, dropping", slog.String("subject", notification.Subject))
	}
}

// Close drains pending notifications and stops the worker.
func (n *EmailNotifier) Close() {
	n.once.Do(func() {
		close(n.queue)
	})
	n.wg.Wait()
}

// NoopNotifier is used when SMTP is unconfigured, and in tests.
type NoopNotifier struct {
	logger *slog.Logger
}

func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

var _ portssvc.NotifierSvc = (*NoopNotifier)(nil)

func (n *NoopNotifier) Enqueue(notification portssvc.Notification) {
	n.logger.Debug("notification suppressed (no SMTP configured)", slog.String("subject", notification.Subject))
}

func (n *NoopNotifier) Close() {}
