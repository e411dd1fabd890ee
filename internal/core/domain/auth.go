package domain

// Role is the caller's back-office role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleFinance    Role = "finance"
	RoleOperations Role = "operations"
	RoleCashier    Role = "cashier"
)

// AuthContext identifies the caller of a core operation.
type AuthContext struct {
	UserID   string
	Role     Role
	BranchID string
}

// IsAdmin reports whether the caller is unrestricted across branches.
func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}
