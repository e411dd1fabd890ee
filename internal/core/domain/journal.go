package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryPosted   EntryStatus = "posted"
	EntryReversed EntryStatus = "reversed"
)

// EntrySide says which column of a line an amount lands in.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// BalanceTolerance is the largest |Σdebit − Σcredit| an entry may carry.
var BalanceTolerance = decimal.New(1, -3)

// Reversal metadata keys.
const (
	MetaReversalReason  = "reversalReason"
	MetaOriginalStatus  = "originalStatus"
	MetaOriginalSettled = "originalSettled"
)

// JournalEntryLine is one leg of an entry. Exactly one of Debit and Credit is non-zero.
type JournalEntryLine struct {
	ID          string          `json:"id"`
	EntryID     string          `json:"entryId"`
	AccountID   string          `json:"accountId"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// Amount is the non-zero side of the line.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

func (l JournalEntryLine) Side() EntrySide {
	if l.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// JournalEntry is a balanced double-entry posting for one business event.
type JournalEntry struct {
	ID                string             `json:"id"`
	TransactionID     string             `json:"transactionId"`
	TransactionSource ServiceModule      `json:"transactionSource"`
	TransactionType   string             `json:"transactionType"`
	Reference         string             `json:"reference"`
	Description       string             `json:"description"`
	Date              time.Time          `json:"date"`
	BranchID          string             `json:"branchId"`
	Status            EntryStatus        `json:"status"`
	ReversalOf        *string            `json:"reversalOf,omitempty"`
	Metadata          map[string]string  `json:"metadata,omitempty"`
	PostedBy          *string            `json:"postedBy,omitempty"`
	PostedAt          *time.Time         `json:"postedAt,omitempty"`
	ReversedBy        *string            `json:"reversedBy,omitempty"`
	ReversedAt        *time.Time         `json:"reversedAt,omitempty"`
	Lines             []JournalEntryLine `json:"lines"`
	AuditFields
}

// Totals returns Σdebit and Σcredit across the lines.
func (e JournalEntry) Totals() (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

func (e JournalEntry) IsBalanced() bool {
	debit, credit := e.Totals()
	return debit.Sub(credit).Abs().LessThan(BalanceTolerance)
}

func (e JournalEntry) IsReversal() bool {
	return e.ReversalOf != nil
}

// EntryHeader carries the business identity of an entry built from explicit legs.
type EntryHeader struct {
	TransactionID     string
	TransactionSource ServiceModule
	TransactionType   string
	Reference         string
	Description       string
	Date              time.Time
	BranchID          string
}

// EntryLeg is one requested line of a custom entry.
type EntryLeg struct {
	AccountID   string
	Side        EntrySide
	Amount      decimal.Decimal
	Description string
}

// SourceTransaction is the business transaction a module hands to the ledger.
type SourceTransaction struct {
	ID              string
	Reference       string
	ServiceModule   ServiceModule
	TransactionType string
	Amount          decimal.Decimal
	Fee             decimal.Decimal
	Date            time.Time
	BranchID        string
	Description     string
	Attributes      TransactionAttributes
}

// ReferenceOrID is what line descriptions quote to identify the transaction.
func (t SourceTransaction) ReferenceOrID() string {
	if t.Reference != "" {
		return t.Reference
	}
	return t.ID
}

// ReversalOutcome is the soft-fail result of reversing a source transaction's posting.
type ReversalOutcome struct {
	Entry   *JournalEntry `json:"entry,omitempty"`
	Skipped bool          `json:"skipped"`
	Warning string        `json:"warning,omitempty"`
}

// ReclassifyResult pairs the reversal of the old posting with the new posting.
type ReclassifyResult struct {
	Reversal ReversalOutcome `json:"reversal"`
	Entry    *JournalEntry   `json:"entry"`
}

// EntryFilter narrows entry listings. Empty fields do not filter.
type EntryFilter struct {
	Source        ServiceModule
	TransactionID string
	BranchID      string
	Status        EntryStatus
}

// ReversalRequest describes why and by whom an entry is reversed.
// OriginalSettled is set when the source module reports a terminal paid/settled state.
type ReversalRequest struct {
	Reason          string
	Actor           string
	OriginalSettled *bool
}
