package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FloatAccount is a branch-held liquidity pool with a provider (a momo wallet,
// a partner-bank till, the cash drawer).
type FloatAccount struct {
	ID             string          `json:"id"`
	BranchID       string          `json:"branchId"`
	AccountType    string          `json:"accountType"`
	Provider       string          `json:"provider"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	MinThreshold   decimal.Decimal `json:"minThreshold"`
	MaxThreshold   decimal.Decimal `json:"maxThreshold"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// FloatTransaction is a native float-ledger row written by the owning module.
// Amount is signed: positive increases the float.
type FloatTransaction struct {
	ID              string          `json:"id"`
	FloatAccountID  string          `json:"floatAccountId"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceBefore   decimal.Decimal `json:"balanceBefore"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	BranchID        string          `json:"branchId"`
	ProcessedBy     string          `json:"processedBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// FloatGLTransactionType builds the mapping transaction type used to find a float's
// GL account when no direct association exists, e.g. "momo_float".
func FloatGLTransactionType(accountType string) string {
	return accountType + "_float"
}
