package domain

import "fmt"

// Operator is a mapping-condition comparison.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpContains    Operator = "contains"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
)

func (o Operator) IsValid() bool {
	switch o {
	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpContains, OpStartsWith, OpEndsWith:
		return true
	}
	return false
}

// MappingCondition is one predicate over a transaction attribute.
type MappingCondition struct {
	Attribute string   `json:"attribute"`
	Operator  Operator `json:"operator"`
	Value     string   `json:"value"`
}

// GLMapping tells the posting engine which GL accounts to debit and credit
// for a given (module, transaction type) pair, optionally gated by conditions.
type GLMapping struct {
	ID              string             `json:"id"`
	ServiceModule   ServiceModule      `json:"serviceModule"`
	TransactionType string             `json:"transactionType"`
	BranchID        *string            `json:"branchId,omitempty"`
	DebitAccountID  string             `json:"debitAccountId"`
	CreditAccountID string             `json:"creditAccountId"`
	Description     string             `json:"description"`
	Conditions      []MappingCondition `json:"conditions,omitempty"`
	Priority        int                `json:"priority"`
	IsActive        bool               `json:"isActive"`
	AuditFields
}

func (m GLMapping) HasConditions() bool {
	return len(m.Conditions) > 0
}

// Validate checks the mapping against the module's attribute schema.
func (m GLMapping) Validate() error {
	if !m.ServiceModule.IsValid() {
		return fmt.Errorf("unknown service module %q", m.ServiceModule)
	}
	if m.TransactionType == "" {
		return fmt.Errorf("transaction type is required")
	}
	if m.DebitAccountID == "" || m.CreditAccountID == "" {
		return fmt.Errorf("debit and credit accounts are required")
	}
	if m.DebitAccountID == m.CreditAccountID {
		return fmt.Errorf("debit and credit accounts must differ")
	}
	for i, c := range m.Conditions {
		if !c.Operator.IsValid() {
			return fmt.Errorf("condition %d: unknown operator %q", i, c.Operator)
		}
		if !m.ServiceModule.HasAttribute(c.Attribute) {
			return fmt.Errorf("condition %d: %s has no attribute %q", i, m.ServiceModule, c.Attribute)
		}
	}
	return nil
}
