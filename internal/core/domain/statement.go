package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceGL labels GL-derived statement rows whose entry has no source module.
const SourceGL = "gl"

// StatementEntry is one derived row of a float statement.
type StatementEntry struct {
	ID              string          `json:"id"`
	TransactionDate time.Time       `json:"transactionDate"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceBefore   decimal.Decimal `json:"balanceBefore"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	ProcessedBy     string          `json:"processedBy"`
	SourceModule    string          `json:"sourceModule"`
	BranchID        string          `json:"branchId,omitempty"`
	IsGL            bool            `json:"isGL"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
}

// StatementSummary aggregates a statement's rows.
type StatementSummary struct {
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	ClosingBalance     decimal.Decimal `json:"closingBalance"`
	TotalCredits       decimal.Decimal `json:"totalCredits"`
	TotalDebits        decimal.Decimal `json:"totalDebits"`
	NetChange          decimal.Decimal `json:"netChange"`
	TransactionCount   int             `json:"transactionCount"`
	GLTransactionCount int             `json:"glTransactionCount"`
}

// StatementFilters narrows a float statement. A nil date is open-ended.
// BranchID and TransactionType only hide rows; balances are still carried
// through the hidden rows.
type StatementFilters struct {
	StartDate       *time.Time
	EndDate         *time.Time
	BranchID        string
	IncludeGL       bool
	TransactionType string
}

// DateRange drops the row filters, keeping the dates and the GL switch.
func (f StatementFilters) DateRange() StatementFilters {
	f.BranchID = ""
	f.TransactionType = ""
	return f
}

// Shows reports whether a row passes the branch and transaction type filters.
func (f StatementFilters) Shows(row StatementEntry) bool {
	if f.BranchID != "" && row.BranchID != f.BranchID {
		return false
	}
	return f.TransactionType == "" || row.TransactionType == f.TransactionType
}

// Statement is computed per request and never stored.
type Statement struct {
	Account FloatAccount     `json:"account"`
	Entries []StatementEntry `json:"entries"`
	Summary StatementSummary `json:"summary"`
}

// GLLedgerLine is a persisted journal line joined with its entry header and account.
type GLLedgerLine struct {
	LineID           string
	LineOrder        int
	EntryID          string
	AccountID        string
	AccountCode      string
	AccountName      string
	Debit            decimal.Decimal
	Credit           decimal.Decimal
	LineDescription  string
	EntryDate        time.Time
	EntryReference   string
	EntryDescription string
	TransactionType  string
	Source           ServiceModule
	BranchID         string
	CreatedBy        string
	CreatedAt        time.Time
}
