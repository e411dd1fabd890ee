package handlers_test

import (
	"errors"
	"net/http"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/SscSPs/branchledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func postedEntry(id string) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:                id,
		TransactionID:     "pw-1",
		TransactionSource: domain.ModulePower,
		TransactionType:   "sale",
		Reference:         "PW-REF-1",
		BranchID:          "branch-1",
		Status:            domain.EntryPosted,
		Lines: []domain.JournalEntryLine{
			{ID: id + "-l1", EntryID: id, AccountID: "gl-1001", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
			{ID: id + "-l2", EntryID: id, AccountID: "gl-1004", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *LedgerHandlerTestSuite) TestPostSourceTransaction_Success() {
	body := `{
		"transactionId": "pw-1",
		"reference": "PW-REF-1",
		"serviceModule": "power",
		"transactionType": "sale",
		"amount": "100",
		"branchId": "branch-1",
		"attributes": {"provider": "ecg", "meterType": "prepaid"}
	}`

	suite.mockPostingService.On("PostSourceTransaction",
		mock.Anything,
		mock.MatchedBy(func(txn domain.SourceTransaction) bool {
			provider, ok := txn.Attributes.Lookup("provider")
			return txn.ID == "pw-1" &&
				txn.ServiceModule == domain.ModulePower &&
				txn.Amount.Equal(decimal.NewFromInt(100)) &&
				txn.Fee.IsZero() &&
				ok && provider.Text() == "ecg"
		}),
		"user-1",
	).Return(postedEntry("je-1"), nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries", body, suite.cashierToken())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("je-1", resp.EntryID)
	suite.Equal("posted", resp.Status)
	suite.Len(resp.Lines, 2)
	suite.Equal("DEBIT", resp.Lines[0].Side)
	suite.True(resp.TotalDebit.Equal(resp.TotalCredit))
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostSourceTransaction_UndeclaredAttribute() {
	body := `{"transactionId":"pw-1","serviceModule":"power","transactionType":"sale","amount":"100","branchId":"branch-1","attributes":{"colour":"red"}}`

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries", body, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostSourceTransaction")
}

func (suite *LedgerHandlerTestSuite) TestPostSourceTransaction_NonPositiveAmount() {
	for _, amount := range []string{`"0"`, `"-5"`} {
		body := `{"transactionId":"pw-1","serviceModule":"power","transactionType":"sale","amount":` + amount + `,"branchId":"branch-1"}`

		w := suite.serve(http.MethodPost, "/api/v1/gl/entries", body, suite.cashierToken())

		suite.Equal(http.StatusBadRequest, w.Code, amount)
	}
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostSourceTransaction")
}

func (suite *LedgerHandlerTestSuite) TestPostSourceTransaction_PostingFailure() {
	body := `{"transactionId":"pw-1","serviceModule":"power","transactionType":"sale","amount":100,"branchId":"branch-1"}`
	suite.mockPostingService.On("PostSourceTransaction", mock.Anything, mock.Anything, "user-1").
		Return(nil, apperrors.NewPostingError("failed to persist entry", errors.New("connection reset"))).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries", body, suite.cashierToken())

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "manual reconciliation")
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *LedgerHandlerTestSuite) TestPostSourceTransaction_Unmapped() {
	body := `{"transactionId":"jm-9","serviceModule":"jumia","transactionType":"refund","amount":40,"branchId":"branch-1"}`
	suite.mockPostingService.On("PostSourceTransaction", mock.Anything, mock.Anything, "user-1").
		Return(nil, apperrors.NewValidationError("no GL mapping for jumia/refund")).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries", body, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "no GL mapping")
}

func (suite *LedgerHandlerTestSuite) TestPostCustomEntry_PassesLegsThrough() {
	body := `{
		"transactionId": "exp-7",
		"transactionSource": "expenses",
		"transactionType": "utilities",
		"branchId": "branch-1",
		"legs": [
			{"accountId": "gl-5001", "side": "DEBIT", "amount": "75.50"},
			{"accountId": "gl-1001", "side": "CREDIT", "amount": "75.50"}
		]
	}`
	suite.mockPostingService.On("PostCustomEntry",
		mock.Anything,
		mock.MatchedBy(func(h domain.EntryHeader) bool {
			return h.TransactionID == "exp-7" && h.TransactionSource == domain.ModuleExpenses && h.Date.IsZero()
		}),
		mock.MatchedBy(func(legs []domain.EntryLeg) bool {
			return len(legs) == 2 && legs[0].Side == domain.Debit && legs[1].Side == domain.Credit &&
				legs[0].Amount.Equal(decimal.RequireFromString("75.5"))
		}),
		"user-1",
	).Return(postedEntry("je-2"), nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries/custom", body, suite.cashierToken())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostCustomEntry_Unbalanced() {
	body := `{"transactionId":"exp-7","transactionSource":"expenses","transactionType":"utilities","branchId":"branch-1",
		"legs":[{"accountId":"gl-5001","side":"DEBIT","amount":"80"},{"accountId":"gl-1001","side":"CREDIT","amount":"75"}]}`
	suite.mockPostingService.On("PostCustomEntry", mock.Anything, mock.Anything, mock.Anything, "user-1").
		Return(nil, apperrors.NewValidationError("entry is unbalanced")).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries/custom", body, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostCustomEntry_BadSide() {
	body := `{"transactionId":"exp-7","transactionSource":"expenses","transactionType":"utilities","branchId":"branch-1",
		"legs":[{"accountId":"gl-5001","side":"LEFT","amount":"80"},{"accountId":"gl-1001","side":"CREDIT","amount":"80"}]}`

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries/custom", body, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostCustomEntry")
}

func (suite *LedgerHandlerTestSuite) TestPostPurchase_GeneratesBalancedEntry() {
	body := `{"transactionId":"inv-3","transactionSource":"inventory","transactionType":"purchase","branchId":"branch-1",
		"inventoryAccountId":"gl-1301","paymentAccountId":"gl-1001","amount":"500","feeAccountId":"gl-5001","fee":"5"}`
	suite.mockPostingService.On("PostPrepared",
		mock.Anything,
		mock.MatchedBy(func(e *domain.JournalEntry) bool {
			return e.Status == domain.EntryPending && e.IsBalanced() && len(e.Lines) == 3
		}),
		"user-1",
	).Return(postedEntry("je-3"), nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries/purchases", body, suite.cashierToken())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostAdjustment_NoDifference() {
	body := `{"transactionId":"com-1","transactionSource":"commissions","transactionType":"monthly_commission","branchId":"branch-1",
		"debitOnIncreaseAccountId":"gl-1201","creditOnIncreaseAccountId":"gl-4301","oldAmount":"200","newAmount":"200"}`

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries/adjustments", body, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostPrepared")
}

func (suite *LedgerHandlerTestSuite) TestPostPayment_Success() {
	body := `{"transactionId":"exp-8","transactionSource":"expenses","transactionType":"payment","branchId":"branch-1",
		"payableAccountId":"gl-2101","cashAccountId":"gl-1001","amount":"120"}`
	suite.mockPostingService.On("PostPrepared",
		mock.Anything,
		mock.MatchedBy(func(e *domain.JournalEntry) bool {
			return len(e.Lines) == 2 && e.Lines[0].AccountID == "gl-2101" && e.Lines[0].Side() == domain.Debit
		}),
		"user-1",
	).Return(postedEntry("je-4"), nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries/payments", body, suite.cashierToken())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestGetEntry_NotFound() {
	suite.mockPostingService.On("GetEntry", mock.Anything, "je-missing").
		Return(nil, apperrors.NewNotFoundError("journal entry je-missing")).Once()

	w := suite.serve(http.MethodGet, "/api/v1/gl/entries/je-missing", nil, suite.cashierToken())

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListEntries_FiltersAndPagination() {
	suite.mockPostingService.On("ListEntries",
		mock.Anything,
		domain.EntryFilter{Source: domain.ModuleMomo, BranchID: "branch-1", Status: domain.EntryPosted},
		10,
		mock.MatchedBy(func(tok *string) bool { return tok != nil && *tok == "abc" }),
	).Return([]domain.JournalEntry{*postedEntry("je-5")}, "next-page", nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/gl/entries?source=momo&branchId=branch-1&status=posted&limit=10&nextToken=abc", nil, suite.cashierToken())

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListEntriesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func (suite *LedgerHandlerTestSuite) TestListEntries_LimitTooLarge() {
	w := suite.serve(http.MethodGet, "/api/v1/gl/entries?limit=500", nil, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "ListEntries")
}

func (suite *LedgerHandlerTestSuite) TestReverseEntry_AlreadyReversed() {
	suite.mockReversalService.On("ReverseEntry", mock.Anything, "je-1",
		domain.ReversalRequest{Reason: "duplicate", Actor: "user-1"},
	).Return(nil, apperrors.NewConflictError("entry je-1 is already reversed")).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/entries/je-1/reverse", `{"reason":"duplicate"}`, suite.cashierToken())

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockReversalService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestReverseEntry_ReasonRequired() {
	w := suite.serve(http.MethodPost, "/api/v1/gl/entries/je-1/reverse", `{}`, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReversalService.AssertNotCalled(suite.T(), "ReverseEntry")
}

func (suite *LedgerHandlerTestSuite) TestReverseSourceTransaction_WarningIsNotAnError() {
	suite.mockReversalService.On("ReverseSourceTransaction", mock.Anything, domain.ModuleMomo, "mm-1",
		mock.MatchedBy(func(r domain.ReversalRequest) bool {
			return r.Reason == "customer cancelled" && r.Actor == "user-1" && r.OriginalSettled != nil && *r.OriginalSettled
		}),
	).Return(domain.ReversalOutcome{Warning: "GL reversal failed; reconcile manually"}).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/sources/momo/mm-1/reverse",
		`{"reason":"customer cancelled","originalSettled":true}`, suite.cashierToken())

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ReversalOutcomeResponse
	suite.decode(w, &resp)
	suite.NotEmpty(resp.Warning)
	suite.Nil(resp.Entry)
}

func (suite *LedgerHandlerTestSuite) TestReverseSourceTransaction_UnknownModule() {
	w := suite.serve(http.MethodPost, "/api/v1/gl/sources/lottery/lt-1/reverse", `{"reason":"x"}`, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReversalService.AssertNotCalled(suite.T(), "ReverseSourceTransaction")
}

func (suite *LedgerHandlerTestSuite) TestReclassify_PathMismatch() {
	body := `{"reason":"wrong meter type","transaction":{"transactionId":"pw-2","serviceModule":"power","transactionType":"sale","amount":"150","branchId":"branch-1"}}`

	w := suite.serve(http.MethodPost, "/api/v1/gl/sources/power/pw-1/reclassify", body, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReversalService.AssertNotCalled(suite.T(), "ReclassifySourceTransaction")
}

func (suite *LedgerHandlerTestSuite) TestReclassify_Success() {
	body := `{"reason":"amount corrected","transaction":{"transactionId":"pw-1","serviceModule":"power","transactionType":"sale","amount":"150","branchId":"branch-1"}}`
	reversal := postedEntry("je-1-rev")
	suite.mockReversalService.On("ReclassifySourceTransaction",
		mock.Anything,
		mock.MatchedBy(func(txn domain.SourceTransaction) bool {
			return txn.ID == "pw-1" && txn.Amount.Equal(decimal.NewFromInt(150))
		}),
		domain.ReversalRequest{Reason: "amount corrected", Actor: "user-1"},
	).Return(&domain.ReclassifyResult{
		Reversal: domain.ReversalOutcome{Entry: reversal},
		Entry:    postedEntry("je-6"),
	}, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/sources/power/pw-1/reclassify", body, suite.cashierToken())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ReclassifyResponse
	suite.decode(w, &resp)
	suite.Equal("je-6", resp.Entry.EntryID)
	suite.Require().NotNil(resp.Reversal.Entry)
	suite.Equal("je-1-rev", resp.Reversal.Entry.EntryID)
}
