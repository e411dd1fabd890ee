package models

// GLMapping is a row of gl_mappings.
type GLMapping struct {
	MappingID       string  `db:"mapping_id"`
	ServiceModule   string  `db:"service_module"`
	TransactionType string  `db:"transaction_type"`
	BranchID        *string `db:"branch_id"` // Nullable: applies to every branch
	DebitAccountID  string  `db:"debit_account_id"`
	CreditAccountID string  `db:"credit_account_id"`
	Description     string  `db:"description"`
	Priority        int     `db:"priority"`
	IsActive        bool    `db:"is_active"`
	AuditFields
}

// GLMappingCondition is a row of gl_mapping_conditions.
type GLMappingCondition struct {
	MappingID string `db:"mapping_id"`
	Position  int    `db:"position"`
	Attribute string `db:"attribute"`
	Operator  string `db:"operator"`
	Value     string `db:"value"`
}
