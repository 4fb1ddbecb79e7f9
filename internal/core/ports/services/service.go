package services

// ServiceContainer holds instances of all the application services. It is
// the main entry point for accessing service functionality and is consumed
// by the handlers and the event bus wiring.
type ServiceContainer struct {
	Journal   JournalSvcFacade
	Balance   BalanceSvcFacade
	Reporting ReportingSvcFacade
	Aging     AgingSvcFacade
	Tax       TaxSvcFacade
	Bridge    BridgeSvcFacade
}
