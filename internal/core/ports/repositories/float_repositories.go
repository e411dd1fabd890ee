package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// FloatRepositoryFacade reads float accounts and their native ledger.
// Float balances are written by the owning modules, never by the ledger core.
type FloatRepositoryFacade interface {
	FindFloatAccountByID(ctx context.Context, floatAccountID string) (*domain.FloatAccount, error)

	// ListFloatTransactions returns native rows in the filter's date range ordered by created_at.
	ListFloatTransactions(ctx context.Context, floatAccountID string, filters domain.StatementFilters) ([]domain.FloatTransaction, error)

	// FindLastFloatTransactionBefore returns the latest native row strictly before t, or ErrNotFound.
	FindLastFloatTransactionBefore(ctx context.Context, floatAccountID string, t time.Time) (*domain.FloatTransaction, error)

	// FindFloatGLAccountIDs returns the directly associated GL accounts, primary first.
	FindFloatGLAccountIDs(ctx context.Context, floatAccountID string) ([]string, error)
}
