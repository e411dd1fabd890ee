package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager scopes a posting or reversal to one database transaction.
// Rollback after a successful Commit is a no-op.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
