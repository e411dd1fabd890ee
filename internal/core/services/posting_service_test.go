package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockMappingRepo *MockMappingRepository
	mockGLRepo      *MockGLAccountRepository
	mockPublisher   *MockEventPublisher
	accounts        portssvc.AccountDirectorySvc
	resolver        portssvc.MappingSvcFacade
	generator       *services.JournalGenerator
	clock           fixedClock
	service         portssvc.PostingSvc

	cash       domain.GLAccount
	momoFloat  domain.GLAccount
	feeIncome  domain.GLAccount
	suspenseDr domain.GLAccount
	suspenseCr domain.GLAccount
	chart      map[string]domain.GLAccount
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockMappingRepo = new(MockMappingRepository)
	suite.mockGLRepo = new(MockGLAccountRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.clock = fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

	suite.accounts = services.NewAccountDirectory(suite.mockGLRepo, new(MockFloatRepository))
	ids := &sequenceIDs{prefix: "je"}
	suite.resolver = services.NewMappingService(suite.mockMappingRepo, suite.accounts, suite.clock, ids)
	suite.generator = services.NewJournalGenerator(suite.clock, ids)
	suite.service = suite.newService()

	suite.cash = domain.GLAccount{ID: "acc-cash", Code: "1001", Name: "Cash in Till", Type: domain.Asset, IsActive: true}
	suite.momoFloat = domain.GLAccount{ID: "acc-momo", Code: "1101", Name: "MoMo Float", Type: domain.Asset, IsActive: true}
	suite.feeIncome = domain.GLAccount{ID: "acc-fee", Code: "4101", Name: "MoMo Fee Income", Type: domain.Revenue, IsActive: true}
	suite.suspenseDr = domain.GLAccount{ID: "acc-susp-dr", Code: "1999", Name: "Suspense Receivable", Type: domain.Asset, IsActive: true}
	suite.suspenseCr = domain.GLAccount{ID: "acc-susp-cr", Code: "2999", Name: "Suspense Payable", Type: domain.Liability, IsActive: true}
	suite.chart = map[string]domain.GLAccount{}
	for _, acc := range []domain.GLAccount{suite.cash, suite.momoFloat, suite.feeIncome, suite.suspenseDr, suite.suspenseCr} {
		suite.chart[acc.ID] = acc
	}
}

func (suite *PostingServiceTestSuite) newService(opts ...services.PostingServiceOption) portssvc.PostingSvc {
	opts = append([]services.PostingServiceOption{services.WithPostingEventPublisher(suite.mockPublisher)}, opts...)
	return services.NewPostingService(suite.mockJournalRepo, suite.accounts, suite.resolver, suite.generator, suite.clock, opts...)
}

// expectChart serves any batch lookup from the suite's chart of accounts.
func (suite *PostingServiceTestSuite) expectChart() {
	suite.mockGLRepo.On("FindGLAccountsByIDs", mock.Anything, mock.Anything).Return(func(_ context.Context, ids []string) map[string]domain.GLAccount {
		found := map[string]domain.GLAccount{}
		for _, id := range ids {
			if acc, ok := suite.chart[id]; ok {
				found[id] = acc
			}
		}
		return found
	}, nil)
}

func (suite *PostingServiceTestSuite) cashIn(amount, fee int64) domain.SourceTransaction {
	return domain.SourceTransaction{
		ID:              "momo-txn-1",
		Reference:       "MOMO-1",
		ServiceModule:   domain.ModuleMomo,
		TransactionType: "cash_in",
		Amount:          decimal.NewFromInt(amount),
		Fee:             decimal.NewFromInt(fee),
		BranchID:        "branch-1",
		Attributes:      domain.MomoAttributes{Provider: "MTN", Amount: decimal.NewFromInt(amount), Fee: decimal.NewFromInt(fee)},
	}
}

func (suite *PostingServiceTestSuite) cashInMapping() domain.GLMapping {
	return domain.GLMapping{
		ID: "m-cash-in", ServiceModule: domain.ModuleMomo, TransactionType: "cash_in",
		DebitAccountID: suite.cash.ID, CreditAccountID: suite.momoFloat.ID, Description: "MoMo cash in", IsActive: true,
	}
}

func (suite *PostingServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	suite.expectChart()

	var saved domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.JournalEntry)
	}).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.MatchedBy(func(ev services.LedgerEvent) bool {
		return ev.BalanceEffects[suite.cash.ID].Equal(decimal.NewFromInt(500)) &&
			ev.BalanceEffects[suite.momoFloat.ID].Equal(decimal.NewFromInt(-500))
	})).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.cashIn(500, 0), suite.cashInMapping(), "u-teller")

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, entry.Status)
	suite.Require().NotNil(entry.PostedBy)
	suite.Equal("u-teller", *entry.PostedBy)
	suite.Equal(suite.clock.now, *entry.PostedAt)
	suite.Equal(entry.ID, saved.ID)
	suite.Len(saved.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostCustomEntry_UnbalancedNeverPersisted() {
	ctx := context.Background()
	_, err := suite.service.PostCustomEntry(ctx, domain.EntryHeader{Reference: "X"}, []domain.EntryLeg{
		{AccountID: suite.cash.ID, Side: domain.Debit, Amount: decimal.NewFromInt(100)},
		{AccountID: suite.momoFloat.ID, Side: domain.Credit, Amount: decimal.NewFromInt(90)},
	}, "u-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_UnknownAccount() {
	ctx := context.Background()
	suite.expectChart()
	mapping := suite.cashInMapping()
	mapping.CreditAccountID = "acc-missing"

	_, err := suite.service.PostEntry(ctx, suite.cashIn(10, 0), mapping, "u-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	closed := suite.momoFloat
	closed.IsActive = false
	suite.chart[closed.ID] = closed
	suite.expectChart()

	_, err := suite.service.PostEntry(ctx, suite.cashIn(10, 0), suite.cashInMapping(), "u-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostEntry_PersistenceFailure() {
	ctx := context.Background()
	suite.expectChart()
	dbErr := errors.New("connection reset")
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(dbErr).Once()

	entry, err := suite.service.PostEntry(ctx, suite.cashIn(10, 0), suite.cashInMapping(), "u-1")
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrPosting)
	suite.ErrorIs(err, dbErr)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_PublishFailureDoesNotFailPosting() {
	ctx := context.Background()
	suite.expectChart()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.Anything).Return(errors.New("broker down")).Once()

	entry, err := suite.service.PostEntry(ctx, suite.cashIn(10, 0), suite.cashInMapping(), "u-1")
	suite.NoError(err)
	suite.NotNil(entry)
}

func (suite *PostingServiceTestSuite) TestPostSourceTransaction_WithFeeMapping() {
	ctx := context.Background()
	suite.expectChart()
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in").Return([]domain.GLMapping{suite.cashInMapping()}, nil).Once()
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in_fee").Return([]domain.GLMapping{{
		ID: "m-fee", ServiceModule: domain.ModuleMomo, TransactionType: "cash_in_fee",
		DebitAccountID: suite.cash.ID, CreditAccountID: suite.feeIncome.ID, Description: "MoMo fee", IsActive: true,
	}}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostSourceTransaction(ctx, suite.cashIn(500, 5), "u-1")

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 4)
	suite.Equal(suite.feeIncome.ID, entry.Lines[3].AccountID)
	suite.True(entry.Lines[3].Credit.Equal(decimal.NewFromInt(5)))
	suite.Equal("MoMo fee - MOMO-1", entry.Lines[3].Description)
	debits, credits := entry.Totals()
	suite.True(debits.Equal(decimal.NewFromInt(505)))
	suite.True(credits.Equal(decimal.NewFromInt(505)))
}

func (suite *PostingServiceTestSuite) TestPostSourceTransaction_FeeWithoutMappingPostsPrincipal() {
	ctx := context.Background()
	suite.expectChart()
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in").Return([]domain.GLMapping{suite.cashInMapping()}, nil).Once()
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in_fee").Return([]domain.GLMapping{}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostSourceTransaction(ctx, suite.cashIn(500, 5), "u-1")
	suite.Require().NoError(err)
	suite.Len(entry.Lines, 2)
}

func (suite *PostingServiceTestSuite) TestPostSourceTransaction_NoMappingNoFallback() {
	ctx := context.Background()
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in").Return([]domain.GLMapping{}, nil).Once()

	_, err := suite.service.PostSourceTransaction(ctx, suite.cashIn(10, 0), "u-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostSourceTransaction_FallbackAccounts() {
	ctx := context.Background()
	service := suite.newService(services.WithPostingFallback("1999", "2999"))
	suite.expectChart()
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in").Return([]domain.GLMapping{}, nil).Once()
	suite.mockGLRepo.On("FindGLAccountByCode", ctx, "1999").Return(&suite.suspenseDr, nil).Once()
	suite.mockGLRepo.On("FindGLAccountByCode", ctx, "2999").Return(&suite.suspenseCr, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.Anything).Return(nil).Once()

	entry, err := service.PostSourceTransaction(ctx, suite.cashIn(10, 0), "u-1")

	suite.Require().NoError(err)
	suite.Equal(suite.suspenseDr.ID, entry.Lines[0].AccountID)
	suite.Equal(suite.suspenseCr.ID, entry.Lines[1].AccountID)
	suite.Equal("Unmapped momo cash_in - MOMO-1", entry.Lines[0].Description)
}

func (suite *PostingServiceTestSuite) TestPostSourceTransaction_AmountConditionSeesTransactionAmount() {
	ctx := context.Background()
	suite.expectChart()
	large := suite.cashInMapping()
	large.ID = "m-large"
	large.DebitAccountID = suite.suspenseDr.ID
	large.Conditions = []domain.MappingCondition{{Attribute: "amount", Operator: domain.OpGreaterThan, Value: "1000"}}
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in").
		Return([]domain.GLMapping{large, suite.cashInMapping()}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.Anything).Return(nil).Once()

	attrs, err := domain.DecodeAttributes(domain.ModuleMomo, []byte(`{"provider":"MTN"}`))
	suite.Require().NoError(err)
	txn := suite.cashIn(5000, 0)
	txn.Attributes = attrs

	entry, err := suite.service.PostSourceTransaction(ctx, txn, "u-1")

	suite.Require().NoError(err)
	suite.Equal(suite.suspenseDr.ID, entry.Lines[0].AccountID)
}

func (suite *PostingServiceTestSuite) TestPostSourceTransaction_NoAttributesStillBindsAmount() {
	ctx := context.Background()
	suite.expectChart()
	large := suite.cashInMapping()
	large.ID = "m-large"
	large.DebitAccountID = suite.suspenseDr.ID
	large.Conditions = []domain.MappingCondition{{Attribute: "amount", Operator: domain.OpGreaterThan, Value: "1000"}}
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in").
		Return([]domain.GLMapping{large, suite.cashInMapping()}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.Anything).Return(nil).Once()

	txn := suite.cashIn(5000, 0)
	txn.Attributes = nil

	entry, err := suite.service.PostSourceTransaction(ctx, txn, "u-1")

	suite.Require().NoError(err)
	suite.Equal(suite.suspenseDr.ID, entry.Lines[0].AccountID)
}

func (suite *PostingServiceTestSuite) TestPostSourceTransaction_ContradictingAmountAttributeRejected() {
	ctx := context.Background()
	attrs, err := domain.DecodeAttributes(domain.ModuleMomo, []byte(`{"provider":"MTN","amount":50}`))
	suite.Require().NoError(err)
	txn := suite.cashIn(5000, 0)
	txn.Attributes = attrs

	_, err = suite.service.PostSourceTransaction(ctx, txn, "u-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "ListMappings", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostSourceTransaction_OtherBranchMappingSkipped() {
	ctx := context.Background()
	suite.expectChart()
	accra := "branch-accra"
	accraOnly := suite.cashInMapping()
	accraOnly.ID = "m-accra"
	accraOnly.BranchID = &accra
	accraOnly.DebitAccountID = suite.suspenseDr.ID
	suite.mockMappingRepo.On("ListMappings", ctx, domain.ModuleMomo, "cash_in").
		Return([]domain.GLMapping{accraOnly, suite.cashInMapping()}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostSourceTransaction(ctx, suite.cashIn(500, 0), "u-1")

	suite.Require().NoError(err)
	suite.Equal(suite.cash.ID, entry.Lines[0].AccountID)
}

func (suite *PostingServiceTestSuite) TestPostPrepared_RejectsPostedEntry() {
	_, err := suite.service.PostPrepared(context.Background(), &domain.JournalEntry{ID: "je-1", Status: domain.EntryPosted}, "u-1")
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestPostPrepared_Payment() {
	ctx := context.Background()
	suite.expectChart()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, services.EventEntryPosted, mock.Anything).Return(nil).Once()

	prepared, err := suite.generator.GeneratePayment(domain.EntryHeader{Reference: "PAY-1"}, suite.suspenseCr.ID, suite.cash.ID, decimal.NewFromInt(40))
	suite.Require().NoError(err)

	entry, err := suite.service.PostPrepared(ctx, prepared, "u-fin")
	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, entry.Status)
}

func (suite *PostingServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-x").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntry(ctx, "je-x")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestListEntries_ClampsLimit() {
	ctx := context.Background()
	filter := domain.EntryFilter{Source: domain.ModuleMomo}
	suite.mockJournalRepo.On("ListEntries", ctx, filter, 100, (*string)(nil)).Return([]domain.JournalEntry{{ID: "je-1"}}, "next", nil).Once()
	suite.mockJournalRepo.On("ListEntries", ctx, filter, 20, (*string)(nil)).Return([]domain.JournalEntry{}, nil, nil).Once()

	entries, token, err := suite.service.ListEntries(ctx, filter, 5000, nil)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Require().NotNil(token)
	suite.Equal("next", *token)

	_, token, err = suite.service.ListEntries(ctx, filter, 0, nil)
	suite.Require().NoError(err)
	suite.Nil(token)
}

// --- Run Test Suite ---
func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
