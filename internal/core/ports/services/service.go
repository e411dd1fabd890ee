package services

// ServiceContainer holds instances of all the application services.
// Handlers only ever see these interfaces.
type ServiceContainer struct {
	Accounts   AccountDirectorySvc
	Mappings   MappingSvcFacade
	Generator  JournalGeneratorSvc
	Posting    PostingSvc
	Reversal   ReversalSvc
	Statements StatementSvc
}
