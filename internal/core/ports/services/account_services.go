package services

import (
	"context"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// AccountDirectorySvc looks up GL and float accounts for the rest of the core.
type AccountDirectorySvc interface {
	GetGLAccount(ctx context.Context, accountID string) (*domain.GLAccount, error)
	GetGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error)

	// GetGLAccounts returns every requested account or ErrNotFound naming the first missing one.
	GetGLAccounts(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error)

	GetFloatAccount(ctx context.Context, floatAccountID string) (*domain.FloatAccount, error)
}
