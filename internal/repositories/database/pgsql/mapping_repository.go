package pgsql

import (
	"context"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	"github.com/SscSPs/branchledger/internal/models"
	"github.com/SscSPs/branchledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxMappingRepository stores GL mappings and their ordered conditions.
type PgxMappingRepository struct {
	BaseRepository
}

func newPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepositoryFacade {
	return &PgxMappingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MappingRepositoryFacade = (*PgxMappingRepository)(nil)

// ListMappings returns mappings in resolution order. An empty transactionType lists the whole module.
func (r *PgxMappingRepository) ListMappings(ctx context.Context, module domain.ServiceModule, transactionType string) ([]domain.GLMapping, error) {
	query := `
		SELECT mapping_id, service_module, transaction_type, branch_id, debit_account_id, credit_account_id,
		       description, priority, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM gl_mappings
		WHERE service_module = $1 AND ($2 = '' OR transaction_type = $2)
		ORDER BY priority ASC, created_at ASC, mapping_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(module), transactionType)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL mappings for "+string(module), err)
	}
	defer rows.Close()

	var headers []models.GLMapping
	for rows.Next() {
		var m models.GLMapping
		if err := rows.Scan(
			&m.MappingID,
			&m.ServiceModule,
			&m.TransactionType,
			&m.BranchID,
			&m.DebitAccountID,
			&m.CreditAccountID,
			&m.Description,
			&m.Priority,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL mapping row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL mapping rows", err)
	}

	conds, err := r.conditionsFor(ctx, headers)
	if err != nil {
		return nil, err
	}

	result := make([]domain.GLMapping, len(headers))
	for i, h := range headers {
		result[i] = mapping.ToDomainGLMapping(h, conds[h.MappingID])
	}
	return result, nil
}

func (r *PgxMappingRepository) conditionsFor(ctx context.Context, headers []models.GLMapping) (map[string][]models.GLMappingCondition, error) {
	conds := make(map[string][]models.GLMappingCondition)
	if len(headers) == 0 {
		return conds, nil
	}
	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.MappingID
	}

	query := `
		SELECT mapping_id, position, attribute, operator, value
		FROM gl_mapping_conditions
		WHERE mapping_id = ANY($1)
		ORDER BY mapping_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL mapping conditions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.GLMappingCondition
		if err := rows.Scan(&c.MappingID, &c.Position, &c.Attribute, &c.Operator, &c.Value); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL mapping condition row", err)
		}
		conds[c.MappingID] = append(conds[c.MappingID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL mapping condition rows", err)
	}
	return conds, nil
}

// SaveMapping inserts the mapping and its conditions in one transaction.
func (r *PgxMappingRepository) SaveMapping(ctx context.Context, d domain.GLMapping) error {
	m, conds := mapping.ToModelGLMapping(d)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO gl_mappings (
			mapping_id, service_module, transaction_type, branch_id, debit_account_id, credit_account_id,
			description, priority, is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.MappingID,
		m.ServiceModule,
		m.TransactionType,
		m.BranchID,
		m.DebitAccountID,
		m.CreditAccountID,
		m.Description,
		m.Priority,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert GL mapping "+m.MappingID, err)
	}

	if len(conds) > 0 {
		batch := &pgx.Batch{}
		condQuery := `INSERT INTO gl_mapping_conditions (mapping_id, position, attribute, operator, value) VALUES ($1, $2, $3, $4, $5);`
		for _, c := range conds {
			batch.Queue(condQuery, c.MappingID, c.Position, c.Attribute, c.Operator, c.Value)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert conditions for GL mapping "+m.MappingID, err)
		}
	}

	return r.Commit(ctx, tx)
}
