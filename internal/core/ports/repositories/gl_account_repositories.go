package repositories

import (
	"context"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// GLAccountReader defines read operations over the chart of accounts.
type GLAccountReader interface {
	FindGLAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error)

	// FindGLAccountByCode looks an account up by its chart code (e.g. "1010").
	FindGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error)

	// FindGLAccountsByIDs returns the accounts that exist, keyed by ID. Missing IDs are simply absent.
	FindGLAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error)
}

type GLAccountRepositoryFacade interface {
	GLAccountReader
}
