package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/SscSPs/branchledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *LedgerHandlerTestSuite) TestFloatStatement_Success() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	endOfDay := time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC)
	auth := domain.AuthContext{UserID: "user-1", Role: domain.RoleCashier, BranchID: "branch-1"}

	suite.mockStatementService.On("BuildFloatStatement",
		mock.Anything,
		auth,
		"fa-1",
		mock.MatchedBy(func(f domain.StatementFilters) bool {
			return f.StartDate != nil && f.StartDate.Equal(start) &&
				f.EndDate != nil && f.EndDate.Equal(endOfDay) &&
				f.IncludeGL && f.TransactionType == ""
		}),
	).Return(&domain.Statement{
		Account: domain.FloatAccount{ID: "fa-1", BranchID: "branch-1", CurrentBalance: decimal.NewFromInt(1150)},
		Summary: domain.StatementSummary{
			OpeningBalance: decimal.NewFromInt(1000),
			ClosingBalance: decimal.NewFromInt(1150),
			NetChange:      decimal.NewFromInt(150),
		},
	}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/float-accounts/fa-1/statement?startDate=2024-03-01&endDate=2024-03-31", nil, suite.cashierToken())

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.StatementResponse
	suite.decode(w, &resp)
	suite.NotNil(resp.Entries)
	suite.Empty(resp.Entries)
	suite.True(resp.Summary.NetChange.Equal(decimal.NewFromInt(150)))
	suite.True(resp.Filters.IncludeGL)
	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestFloatStatement_ExcludeGL() {
	suite.mockStatementService.On("BuildFloatStatement", mock.Anything, mock.Anything, "fa-1",
		mock.MatchedBy(func(f domain.StatementFilters) bool {
			return !f.IncludeGL && f.TransactionType == "topup" && f.StartDate == nil
		}),
	).Return(&domain.Statement{}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/float-accounts/fa-1/statement?includeGL=false&transactionType=topup", nil, suite.cashierToken())

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestFloatStatement_OtherBranchForbidden() {
	suite.mockStatementService.On("BuildFloatStatement", mock.Anything, mock.Anything, "fa-2", mock.Anything).
		Return(nil, apperrors.NewForbiddenError("branch branch-2 is outside the caller's scope")).Once()

	w := suite.serve(http.MethodGet, "/api/v1/float-accounts/fa-2/statement", nil, suite.cashierToken())

	suite.Equal(http.StatusForbidden, w.Code)
	suite.NotContains(w.Body.String(), "branch-2")
}

func (suite *LedgerHandlerTestSuite) TestFloatStatement_NotFound() {
	suite.mockStatementService.On("BuildFloatStatement", mock.Anything, mock.Anything, "fa-missing", mock.Anything).
		Return(nil, apperrors.NewNotFoundError("float account fa-missing")).Once()

	w := suite.serve(http.MethodGet, "/api/v1/float-accounts/fa-missing/statement", nil, suite.cashierToken())

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestFloatStatement_InvalidDate() {
	w := suite.serve(http.MethodGet, "/api/v1/float-accounts/fa-1/statement?startDate=03/01/2024", nil, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStatementService.AssertNotCalled(suite.T(), "BuildFloatStatement")
}
