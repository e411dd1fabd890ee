package domain

// AccountType defines the fundamental accounting type of a GL account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five chart-of-accounts types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// GLAccount is a chart-of-accounts node. Accounts are immutable once any
// journal line references them; deactivation is the only permitted change.
type GLAccount struct {
	ID       string      `json:"id"`
	Code     string      `json:"code"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	IsActive bool        `json:"isActive"`
	AuditFields
}
