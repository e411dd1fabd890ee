package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	"github.com/SscSPs/branchledger/internal/models"
	"github.com/SscSPs/branchledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const glAccountColumns = `account_id, code, name, account_type, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxGLAccountRepository reads the chart of accounts.
type PgxGLAccountRepository struct {
	BaseRepository
}

func newPgxGLAccountRepository(pool *pgxpool.Pool) portsrepo.GLAccountRepositoryFacade {
	return &PgxGLAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GLAccountRepositoryFacade = (*PgxGLAccountRepository)(nil)

func scanGLAccount(row pgx.Row) (models.GLAccount, error) {
	var m models.GLAccount
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxGLAccountRepository) FindGLAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	query := `SELECT ` + glAccountColumns + ` FROM gl_accounts WHERE account_id = $1;`
	m, err := scanGLAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find GL account "+accountID, err)
	}
	acc := mapping.ToDomainGLAccount(m)
	return &acc, nil
}

func (r *PgxGLAccountRepository) FindGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	query := `SELECT ` + glAccountColumns + ` FROM gl_accounts WHERE code = $1;`
	m, err := scanGLAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find GL account by code "+code, err)
	}
	acc := mapping.ToDomainGLAccount(m)
	return &acc, nil
}

func (r *PgxGLAccountRepository) FindGLAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	result := make(map[string]domain.GLAccount, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + glAccountColumns + ` FROM gl_accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL accounts", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanGLAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL account row", err)
		}
		result[m.AccountID] = mapping.ToDomainGLAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL account rows", err)
	}
	return result, nil
}
