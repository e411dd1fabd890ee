package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	"github.com/SscSPs/branchledger/internal/models"
	"github.com/SscSPs/branchledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const floatTransactionColumns = `float_transaction_id, float_account_id, transaction_type, amount, balance_before, balance_after,
	description, reference, branch_id, processed_by, created_at`

// PgxFloatRepository reads float accounts, their native ledger and their GL association.
type PgxFloatRepository struct {
	BaseRepository
}

func newPgxFloatRepository(pool *pgxpool.Pool) portsrepo.FloatRepositoryFacade {
	return &PgxFloatRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FloatRepositoryFacade = (*PgxFloatRepository)(nil)

func scanFloatTransaction(row pgx.Row) (models.FloatTransaction, error) {
	var m models.FloatTransaction
	err := row.Scan(
		&m.FloatTransactionID,
		&m.FloatAccountID,
		&m.TransactionType,
		&m.Amount,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.Description,
		&m.Reference,
		&m.BranchID,
		&m.ProcessedBy,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxFloatRepository) FindFloatAccountByID(ctx context.Context, floatAccountID string) (*domain.FloatAccount, error) {
	query := `
		SELECT float_account_id, branch_id, account_type, provider, current_balance, min_threshold, max_threshold,
		       is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM float_accounts
		WHERE float_account_id = $1;
	`
	var m models.FloatAccount
	err := r.Pool.QueryRow(ctx, query, floatAccountID).Scan(
		&m.FloatAccountID,
		&m.BranchID,
		&m.AccountType,
		&m.Provider,
		&m.CurrentBalance,
		&m.MinThreshold,
		&m.MaxThreshold,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find float account "+floatAccountID, err)
	}
	acc := mapping.ToDomainFloatAccount(m)
	return &acc, nil
}

func (r *PgxFloatRepository) ListFloatTransactions(ctx context.Context, floatAccountID string, filters domain.StatementFilters) ([]domain.FloatTransaction, error) {
	query := `SELECT ` + floatTransactionColumns + ` FROM float_transactions WHERE float_account_id = $1`
	args := []any{floatAccountID}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	if filters.BranchID != "" {
		args = append(args, filters.BranchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	if filters.TransactionType != "" {
		args = append(args, filters.TransactionType)
		query += ` AND transaction_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at ASC, float_transaction_id ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query float transactions for "+floatAccountID, err)
	}
	defer rows.Close()

	var txns []domain.FloatTransaction
	for rows.Next() {
		m, err := scanFloatTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan float transaction row", err)
		}
		txns = append(txns, mapping.ToDomainFloatTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating float transaction rows", err)
	}
	return txns, nil
}

func (r *PgxFloatRepository) FindLastFloatTransactionBefore(ctx context.Context, floatAccountID string, t time.Time) (*domain.FloatTransaction, error) {
	query := `
		SELECT ` + floatTransactionColumns + `
		FROM float_transactions
		WHERE float_account_id = $1 AND created_at < $2
		ORDER BY created_at DESC, float_transaction_id DESC
		LIMIT 1;
	`
	m, err := scanFloatTransaction(r.Pool.QueryRow(ctx, query, floatAccountID, t))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find opening float transaction for "+floatAccountID, err)
	}
	txn := mapping.ToDomainFloatTransaction(m)
	return &txn, nil
}

func (r *PgxFloatRepository) FindFloatGLAccountIDs(ctx context.Context, floatAccountID string) ([]string, error) {
	query := `
		SELECT gl_account_id
		FROM float_account_gl_mapping
		WHERE float_account_id = $1 AND is_active
		ORDER BY is_primary DESC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, floatAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL association for float "+floatAccountID, err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read GL association for float "+floatAccountID, err)
	}
	return ids, nil
}
