package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID returns the entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindReversalOf returns the entry reversing originalID, or ErrNotFound.
	FindReversalOf(ctx context.Context, originalID string) (*domain.JournalEntry, error)

	// FindEntriesBySource returns every entry posted for a business transaction, oldest first, with lines.
	FindEntriesBySource(ctx context.Context, source domain.ServiceModule, transactionID string) ([]domain.JournalEntry, error)

	// ListEntries returns a page of entry headers, newest first, and a token for the next page.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entries.
type JournalEntryWriter interface {
	// SaveEntry persists the header and all lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// SaveReversal persists the reversing entry and marks the original reversed in one transaction.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, reversedBy string, reversedAt time.Time) error
}

// GLLedgerReader reads journal lines for statement reconciliation.
type GLLedgerReader interface {
	// ListLedgerLines returns lines on the given accounts whose entry date is in
	// [start, end], for posted and reversed entries, ordered by entry date then line order.
	ListLedgerLines(ctx context.Context, accountIDs []string, start, end *time.Time) ([]domain.GLLedgerLine, error)
}

type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	GLLedgerReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
