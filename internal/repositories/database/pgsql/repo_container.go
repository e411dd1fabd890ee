package pgsql

import (
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		GLAccountRepo: newPgxGLAccountRepository(dbPool),
		MappingRepo:   newPgxMappingRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		FloatRepo:     newPgxFloatRepository(dbPool),
	}
}
