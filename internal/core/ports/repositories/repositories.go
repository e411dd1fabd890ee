package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	GLAccountRepo GLAccountRepositoryFacade
	MappingRepo   MappingRepositoryFacade
	JournalRepo   JournalRepositoryWithTx
	FloatRepo     FloatRepositoryFacade
}
