package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of gl_transactions, the entry header.
type JournalEntry struct {
	EntryID           string            `db:"entry_id"`
	TransactionID     string            `db:"transaction_id"`
	TransactionSource string            `db:"transaction_source"`
	TransactionType   string            `db:"transaction_type"`
	Reference         string            `db:"reference"`
	Description       string            `db:"description"`
	EntryDate         time.Time         `db:"entry_date"`
	BranchID          string            `db:"branch_id"`
	Status            string            `db:"status"`
	ReversalOf        *string           `db:"reversal_of"`
	Metadata          map[string]string `db:"metadata"`
	PostedBy          *string           `db:"posted_by"`
	PostedAt          *time.Time        `db:"posted_at"`
	ReversedBy        *string           `db:"reversed_by"`
	ReversedAt        *time.Time        `db:"reversed_at"`
	AuditFields
}

// JournalEntryLine is a row of gl_journal_entries.
type JournalEntryLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineOrder   int             `db:"line_order"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}
