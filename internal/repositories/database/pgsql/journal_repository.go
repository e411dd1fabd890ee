package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	"github.com/SscSPs/branchledger/internal/models"
	"github.com/SscSPs/branchledger/internal/utils/mapping"
	"github.com/SscSPs/branchledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reversalOfConstraint enforces at most one reversal per original entry.
const reversalOfConstraint = "uq_gl_transactions_reversal_of"

const entryColumns = `entry_id, transaction_id, transaction_source, transaction_type, reference, description,
	entry_date, branch_id, status, reversal_of, metadata, posted_by, posted_at, reversed_by, reversed_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TransactionID,
		&m.TransactionSource,
		&m.TransactionType,
		&m.Reference,
		&m.Description,
		&m.EntryDate,
		&m.BranchID,
		&m.Status,
		&m.ReversalOf,
		&m.Metadata,
		&m.PostedBy,
		&m.PostedAt,
		&m.ReversedBy,
		&m.ReversedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists the header and all lines in one database transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	if err := r.insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveReversal inserts the reversing entry and flips the original to reversed atomically.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, reversedBy string, reversedAt time.Time) error {
	if reversal.ReversalOf == nil {
		return apperrors.NewValidationError("reversal entry " + reversal.ID + " does not reference an original")
	}
	originalID := *reversal.ReversalOf

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntry(ctx, tx, reversal); err != nil {
		return err
	}

	query := `
		UPDATE gl_transactions
		SET status = 'reversed', reversed_by = $2, reversed_at = $3, last_updated_by = $2, last_updated_at = $3
		WHERE entry_id = $1 AND status = 'posted';
	`
	tag, err := tx.Exec(ctx, query, originalID, reversedBy, reversedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+originalID+" reversed", err)
	}
	if tag.RowsAffected() == 0 {
		// Someone else reversed it between our check and this write.
		return apperrors.ErrDuplicate
	}
	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	if m.Metadata == nil {
		m.Metadata = map[string]string{}
	}
	query := `
		INSERT INTO gl_transactions (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.TransactionID,
		m.TransactionSource,
		m.TransactionType,
		m.Reference,
		m.Description,
		m.EntryDate,
		m.BranchID,
		m.Status,
		m.ReversalOf,
		m.Metadata,
		m.PostedBy,
		m.PostedAt,
		m.ReversedBy,
		m.ReversedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, reversalOfConstraint) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO gl_journal_entries (line_id, entry_id, line_order, account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range mapping.ToModelJournalEntryLines(entry.Lines) {
		batch.Queue(lineQuery, l.LineID, m.EntryID, l.LineOrder, l.AccountID, l.Debit, l.Credit, l.Description)
	}
	// Close reports the first failed insert in the batch.
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM gl_transactions WHERE entry_id = $1;`
	return r.findOne(ctx, query, entryID)
}

func (r *PgxJournalRepository) FindReversalOf(ctx context.Context, originalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM gl_transactions WHERE reversal_of = $1;`
	return r.findOne(ctx, query, originalID)
}

func (r *PgxJournalRepository) findOne(ctx context.Context, query string, arg string) (*domain.JournalEntry, error) {
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+arg, err)
	}

	entries, err := r.withLines(ctx, []models.JournalEntry{m})
	if err != nil {
		return nil, err
	}
	return &entries[0], nil
}

func (r *PgxJournalRepository) FindEntriesBySource(ctx context.Context, source domain.ServiceModule, transactionID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM gl_transactions
		WHERE transaction_source = $1 AND transaction_id = $2
		ORDER BY created_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(source), transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for "+string(source)+" transaction "+transactionID, err)
	}
	defer rows.Close()

	var headers []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return r.withLines(ctx, headers)
}

// withLines converts headers to domain entries and attaches their lines in one query.
func (r *PgxJournalRepository) withLines(ctx context.Context, headers []models.JournalEntry) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, len(headers))
	if len(headers) == 0 {
		return entries, nil
	}
	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}

	query := `
		SELECT line_id, entry_id, line_order, account_id, debit, credit, description
		FROM gl_journal_entries
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_order;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	byEntry := make(map[string][]models.JournalEntryLine, len(headers))
	for rows.Next() {
		var l models.JournalEntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.LineOrder, &l.AccountID, &l.Debit, &l.Credit, &l.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}

	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h)
		entries[i].Lines = mapping.ToDomainJournalEntryLines(byEntry[h.EntryID])
	}
	return entries, nil
}

// ListEntries retrieves a page of entry headers using token-based pagination.
// It returns the entries, a token for the next page, and an error.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var where []string
	var args []any
	addFilter := func(clause string, value any) {
		args = append(args, value)
		where = append(where, strings.Replace(clause, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if filter.Source != "" {
		addFilter("transaction_source = ?", string(filter.Source))
	}
	if filter.TransactionID != "" {
		addFilter("transaction_id = ?", filter.TransactionID)
	}
	if filter.BranchID != "" {
		addFilter("branch_id = ?", filter.BranchID)
	}
	if filter.Status != "" {
		addFilter("status = ?", string(filter.Status))
	}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + err.Error())
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
		n := len(args)
		where = append(where, fmt.Sprintf("(entry_date, created_at, entry_id) < ($%d, $%d, $%d)", n-2, n-1, n))
	}

	query := `SELECT ` + entryColumns + ` FROM gl_transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	headers := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		// The token points to the last item included in this page.
		last := headers[limit-1]
		token := pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID}.Encode()
		nextTokenVal = &token
		headers = headers[:limit]
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h)
	}
	return entries, nextTokenVal, nil
}

// ListLedgerLines reads the lines a float statement derives GL rows from.
func (r *PgxJournalRepository) ListLedgerLines(ctx context.Context, accountIDs []string, start, end *time.Time) ([]domain.GLLedgerLine, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT l.line_id, l.line_order, l.entry_id, l.account_id, a.code, a.name, l.debit, l.credit, l.description,
		       t.entry_date, t.reference, t.description, t.transaction_type, t.transaction_source, t.branch_id, t.created_by, t.created_at
		FROM gl_journal_entries l
		JOIN gl_transactions t ON t.entry_id = l.entry_id
		JOIN gl_accounts a ON a.account_id = l.account_id
		WHERE l.account_id = ANY($1)
		  AND t.status IN ('posted', 'reversed')
		  AND ($2::timestamptz IS NULL OR t.entry_date >= $2)
		  AND ($3::timestamptz IS NULL OR t.entry_date <= $3)
		ORDER BY t.entry_date ASC, t.created_at ASC, l.entry_id ASC, l.line_order ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL ledger lines", err)
	}
	defer rows.Close()

	var lines []domain.GLLedgerLine
	for rows.Next() {
		var l domain.GLLedgerLine
		var source string
		if err := rows.Scan(
			&l.LineID,
			&l.LineOrder,
			&l.EntryID,
			&l.AccountID,
			&l.AccountCode,
			&l.AccountName,
			&l.Debit,
			&l.Credit,
			&l.LineDescription,
			&l.EntryDate,
			&l.EntryReference,
			&l.EntryDescription,
			&l.TransactionType,
			&source,
			&l.BranchID,
			&l.CreatedBy,
			&l.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL ledger line", err)
		}
		l.Source = domain.ServiceModule(source)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL ledger lines", err)
	}
	return lines, nil
}
