package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FloatAccount is a row of float_accounts.
type FloatAccount struct {
	FloatAccountID string          `db:"float_account_id"`
	BranchID       string          `db:"branch_id"`
	AccountType    string          `db:"account_type"`
	Provider       string          `db:"provider"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	MinThreshold   decimal.Decimal `db:"min_threshold"`
	MaxThreshold   decimal.Decimal `db:"max_threshold"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// FloatTransaction is a row of float_transactions.
type FloatTransaction struct {
	FloatTransactionID string          `db:"float_transaction_id"`
	FloatAccountID     string          `db:"float_account_id"`
	TransactionType    string          `db:"transaction_type"`
	Amount             decimal.Decimal `db:"amount"`
	BalanceBefore      decimal.Decimal `db:"balance_before"`
	BalanceAfter       decimal.Decimal `db:"balance_after"`
	Description        string          `db:"description"`
	Reference          string          `db:"reference"`
	BranchID           string          `db:"branch_id"`
	ProcessedBy        string          `db:"processed_by"`
	CreatedAt          time.Time       `db:"created_at"`
}
