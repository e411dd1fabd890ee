package handlers_test

import (
	"context"

	"github.com/SscSPs/branchledger/internal/core/domain"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock MappingService ---
type MockMappingService struct {
	mock.Mock
}

var _ portssvc.MappingSvcFacade = (*MockMappingService)(nil)

func (m *MockMappingService) ResolveMapping(ctx context.Context, module domain.ServiceModule, transactionType, branchID string, attrs domain.TransactionAttributes) (*domain.GLMapping, error) {
	args := m.Called(ctx, module, transactionType, branchID, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLMapping), args.Error(1)
}

func (m *MockMappingService) CreateMapping(ctx context.Context, auth domain.AuthContext, mapping domain.GLMapping) (*domain.GLMapping, error) {
	args := m.Called(ctx, auth, mapping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLMapping), args.Error(1)
}

func (m *MockMappingService) ListMappings(ctx context.Context, module domain.ServiceModule, transactionType string) ([]domain.GLMapping, error) {
	args := m.Called(ctx, module, transactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLMapping), args.Error(1)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvc = (*MockPostingService)(nil)

func (m *MockPostingService) PostEntry(ctx context.Context, txn domain.SourceTransaction, mapping domain.GLMapping, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, txn, mapping, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostCustomEntry(ctx context.Context, header domain.EntryHeader, legs []domain.EntryLeg, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, header, legs, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostPrepared(ctx context.Context, entry *domain.JournalEntry, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostSourceTransaction(ctx context.Context, txn domain.SourceTransaction, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, txn, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

// --- Mock ReversalService ---
type MockReversalService struct {
	mock.Mock
}

var _ portssvc.ReversalSvc = (*MockReversalService)(nil)

func (m *MockReversalService) ReverseEntry(ctx context.Context, entryID string, req domain.ReversalRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockReversalService) ReverseSourceTransaction(ctx context.Context, source domain.ServiceModule, transactionID string, req domain.ReversalRequest) domain.ReversalOutcome {
	args := m.Called(ctx, source, transactionID, req)
	return args.Get(0).(domain.ReversalOutcome)
}

func (m *MockReversalService) ReclassifySourceTransaction(ctx context.Context, txn domain.SourceTransaction, req domain.ReversalRequest) (*domain.ReclassifyResult, error) {
	args := m.Called(ctx, txn, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReclassifyResult), args.Error(1)
}

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

var _ portssvc.StatementSvc = (*MockStatementService)(nil)

func (m *MockStatementService) BuildFloatStatement(ctx context.Context, auth domain.AuthContext, floatAccountID string, filters domain.StatementFilters) (*domain.Statement, error) {
	args := m.Called(ctx, auth, floatAccountID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}
