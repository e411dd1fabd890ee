package handlers_test

import (
	"net/http"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/SscSPs/branchledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *LedgerHandlerTestSuite) TestResolveMapping_Success() {
	suite.mockMappingService.On("ResolveMapping",
		mock.Anything,
		domain.ModulePower,
		"sale",
		"branch-1",
		mock.MatchedBy(func(attrs domain.TransactionAttributes) bool {
			v, ok := attrs.Lookup("provider")
			return ok && v.Text() == "ecg"
		}),
	).Return(&domain.GLMapping{ID: "map-1", DebitAccountID: "gl-1001", CreditAccountID: "gl-1004"}, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/mappings/resolve",
		`{"serviceModule":"power","transactionType":"sale","attributes":{"provider":"ecg"}}`, suite.cashierToken())

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp domain.GLMapping
	suite.decode(w, &resp)
	suite.Equal("gl-1001", resp.DebitAccountID)
}

func (suite *LedgerHandlerTestSuite) TestResolveMapping_NoMatch() {
	suite.mockMappingService.On("ResolveMapping", mock.Anything, domain.ModuleMomo, "cash_out", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("no GL mapping for momo/cash_out")).Once()

	w := suite.serve(http.MethodPost, "/api/v1/gl/mappings/resolve",
		`{"serviceModule":"momo","transactionType":"cash_out"}`, suite.cashierToken())

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestResolveMapping_OtherBranchForbiddenForCashier() {
	w := suite.serve(http.MethodPost, "/api/v1/gl/mappings/resolve",
		`{"serviceModule":"power","transactionType":"sale","branchId":"branch-2"}`, suite.cashierToken())

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockMappingService.AssertNotCalled(suite.T(), "ResolveMapping")
}

func (suite *LedgerHandlerTestSuite) TestResolveMapping_AdminChoosesBranch() {
	suite.mockMappingService.On("ResolveMapping", mock.Anything, domain.ModulePower, "sale", "branch-2", mock.Anything).
		Return(&domain.GLMapping{ID: "map-branch-2"}, nil).Once()
	token := suite.generateTestToken("admin-1", domain.RoleAdmin, "")

	w := suite.serve(http.MethodPost, "/api/v1/gl/mappings/resolve",
		`{"serviceModule":"power","transactionType":"sale","branchId":"branch-2"}`, token)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.mockMappingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateMapping_Forbidden() {
	suite.mockMappingService.On("CreateMapping", mock.Anything,
		domain.AuthContext{UserID: "user-1", Role: domain.RoleCashier, BranchID: "branch-1"},
		mock.MatchedBy(func(m domain.GLMapping) bool {
			return m.ServiceModule == domain.ModuleMomo && m.IsActive && len(m.Conditions) == 1
		}),
	).Return(nil, apperrors.NewForbiddenError("only admins may manage GL mappings")).Once()

	body := `{"serviceModule":"momo","transactionType":"cash_in","debitAccountId":"gl-1101","creditAccountId":"gl-2101",
		"conditions":[{"attribute":"provider","operator":"equals","value":"MTN"}]}`
	w := suite.serve(http.MethodPost, "/api/v1/gl/mappings", body, suite.cashierToken())

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockMappingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateMapping_SameAccountsRejected() {
	body := `{"serviceModule":"momo","transactionType":"cash_in","debitAccountId":"gl-1101","creditAccountId":"gl-1101"}`
	token := suite.generateTestToken("admin-1", domain.RoleAdmin, "")

	w := suite.serve(http.MethodPost, "/api/v1/gl/mappings", body, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMappingService.AssertNotCalled(suite.T(), "CreateMapping")
}

func (suite *LedgerHandlerTestSuite) TestListMappings_Success() {
	suite.mockMappingService.On("ListMappings", mock.Anything, domain.ModuleMomo, "").
		Return(nil, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/gl/mappings?module=momo", nil, suite.cashierToken())

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListMappingsResponse
	suite.decode(w, &resp)
	suite.NotNil(resp.Mappings)
}

func (suite *LedgerHandlerTestSuite) TestListMappings_ModuleRequired() {
	w := suite.serve(http.MethodGet, "/api/v1/gl/mappings", nil, suite.cashierToken())

	suite.Equal(http.StatusBadRequest, w.Code)
}
