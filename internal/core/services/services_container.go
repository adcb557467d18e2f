package services

import (
	"log/slog"

	portsrepo "github.com/opsdesk/requisition_backend/internal/core/ports/repositories"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The notifier is constructed here so every service
// shares one dispatcher; main owns its shutdown via container.Notifier.Close.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	if cfg.SMTPHost != "" {
		container.Notifier = NewEmailNotifier(cfg, logger)
	} else {
		logger.Warn("SMTP not configured, notifications disabled")
		container.Notifier = NewNoopNotifier(logger)
	}

	container.TokenVerifier = NewAuthService(cfg, logger)
	container.DepartmentToken = NewDepartmentTokenService(cfg)
	container.Requisition = NewRequisitionService(repos.RequisitionRepo, container.Notifier, cfg.FinanceNotifyEmail, cfg.FrontendBaseURL)
	container.Minute = NewMinuteService(repos.MinuteRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
