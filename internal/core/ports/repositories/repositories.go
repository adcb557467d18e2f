package repositories

// RepositoryProvider bundles every repository the service layer needs.
// Constructed once in main from a shared connection pool.
type RepositoryProvider struct {
	RequisitionRepo RequisitionRepositoryFacade
	MinuteRepo      MinuteRepositoryFacade
	ReportingRepo   ReportingRepository
}
