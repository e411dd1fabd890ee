package services

import (
	"context"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// StatementSvc reconstructs float statements.
type StatementSvc interface {
	BuildFloatStatement(ctx context.Context, auth domain.AuthContext, floatAccountID string, filters domain.StatementFilters) (*domain.Statement, error)
}
