package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Clock / IDs ---

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type sequenceIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (g *sequenceIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n)
}

// --- Mock GLAccountRepository ---
type MockGLAccountRepository struct {
	mock.Mock
}

var _ portsrepo.GLAccountRepositoryFacade = (*MockGLAccountRepository)(nil)

func (m *MockGLAccountRepository) FindGLAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindGLAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, []string) map[string]domain.GLAccount); ok {
		return fn(ctx, accountIDs), args.Error(1)
	}
	return args.Get(0).(map[string]domain.GLAccount), args.Error(1)
}

// --- Mock MappingRepository ---
type MockMappingRepository struct {
	mock.Mock
}

var _ portsrepo.MappingRepositoryFacade = (*MockMappingRepository)(nil)

func (m *MockMappingRepository) ListMappings(ctx context.Context, module domain.ServiceModule, transactionType string) ([]domain.GLMapping, error) {
	args := m.Called(ctx, module, transactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLMapping), args.Error(1)
}

func (m *MockMappingRepository) SaveMapping(ctx context.Context, mapping domain.GLMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindReversalOf(ctx context.Context, originalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, originalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesBySource(ctx context.Context, source domain.ServiceModule, transactionID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, source, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
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

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, reversedBy string, reversedAt time.Time) error {
	args := m.Called(ctx, reversal, reversedBy, reversedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) ListLedgerLines(ctx context.Context, accountIDs []string, start, end *time.Time) ([]domain.GLLedgerLine, error) {
	args := m.Called(ctx, accountIDs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLLedgerLine), args.Error(1)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock FloatRepository ---
type MockFloatRepository struct {
	mock.Mock
}

var _ portsrepo.FloatRepositoryFacade = (*MockFloatRepository)(nil)

func (m *MockFloatRepository) FindFloatAccountByID(ctx context.Context, floatAccountID string) (*domain.FloatAccount, error) {
	args := m.Called(ctx, floatAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FloatAccount), args.Error(1)
}

func (m *MockFloatRepository) ListFloatTransactions(ctx context.Context, floatAccountID string, filters domain.StatementFilters) ([]domain.FloatTransaction, error) {
	args := m.Called(ctx, floatAccountID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FloatTransaction), args.Error(1)
}

func (m *MockFloatRepository) FindLastFloatTransactionBefore(ctx context.Context, floatAccountID string, t time.Time) (*domain.FloatTransaction, error) {
	args := m.Called(ctx, floatAccountID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FloatTransaction), args.Error(1)
}

func (m *MockFloatRepository) FindFloatGLAccountIDs(ctx context.Context, floatAccountID string) ([]string, error) {
	args := m.Called(ctx, floatAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

// --- Mock EventTracker ---
type MockEventTracker struct {
	mock.Mock
}

var _ portssvc.EventTracker = (*MockEventTracker)(nil)

func (m *MockEventTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

// --- In-memory GLAccountCache ---
type mapAccountCache struct {
	mu       sync.Mutex
	accounts map[string]domain.GLAccount
}

func newMapAccountCache() *mapAccountCache {
	return &mapAccountCache{accounts: map[string]domain.GLAccount{}}
}

func (c *mapAccountCache) Get(_ context.Context, id string) (*domain.GLAccount, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	acc, ok := c.accounts[id]
	if !ok {
		return nil, false
	}
	return &acc, true
}

func (c *mapAccountCache) Set(_ context.Context, acc domain.GLAccount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts[acc.ID] = acc
}
