package models

// GLAccount is a row of gl_accounts.
type GLAccount struct {
	AccountID   string `db:"account_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
