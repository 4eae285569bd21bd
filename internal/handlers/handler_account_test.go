package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/dto"
	"github.com/SscSPs/pix_simulator/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountService) GetStatement(ctx context.Context, accountID string, params domain.StatementParams) (*domain.Statement, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAccountService = new(MockAccountService)

	api := suite.router.Group("/api")
	handlers.RegisterAccountRoutes(api, suite.mockAccountService)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

func (suite *AccountHandlerTestSuite) do(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestGetBalance_Success() {
	suite.mockAccountService.On("GetBalance", mock.Anything, "1").
		Return(decimal.RequireFromString("9900.50"), nil).Once()

	w := suite.do("/api/accounts/1/balance")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.RequireFromString("9900.5").Equal(resp.Balance))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalance_NotFound() {
	suite.mockAccountService.On("GetBalance", mock.Anything, "999").
		Return(decimal.Zero, apperrors.New(apperrors.CodeAccountNotFound)).Once()

	w := suite.do("/api/accounts/999/balance")

	suite.Equal(http.StatusNotFound, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(apperrors.CodeAccountNotFound, resp.Error.Code)
	suite.Equal("Account not found.", resp.Error.Message)
	suite.Empty(resp.IdempotencyKey)
}

func (suite *AccountHandlerTestSuite) TestGetBalance_InternalErrorHidesDetails() {
	suite.mockAccountService.On("GetBalance", mock.Anything, "1").
		Return(decimal.Zero, errors.New("secret connection string")).Once()

	w := suite.do("/api/accounts/1/balance")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "secret")
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(apperrors.CodeInternal, resp.Error.Code)
}

func (suite *AccountHandlerTestSuite) TestGetStatement_Success() {
	txnID := uuid.NewString()
	ts := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	suite.mockAccountService.On("GetStatement", mock.Anything, "1", domain.StatementParams{}).
		Return(&domain.Statement{Transactions: []domain.Transaction{{
			ID:                txnID,
			IdempotencyKey:    "k",
			Type:              domain.PixTransfer,
			SenderAccountID:   "1",
			ReceiverCpf:       "222.222.222-22",
			ReceiverAccountID: "2",
			Amount:            decimal.NewFromInt(100),
			Timestamp:         ts,
			Status:            domain.TransactionCompleted,
		}}}, nil).Once()

	w := suite.do("/api/accounts/1/statement")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StatementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Statement, 1)
	suite.Equal(txnID, resp.Statement[0].ID)
	suite.Equal("222.222.222-22", resp.Statement[0].ReceiverCpf)
	suite.True(ts.Equal(resp.Statement[0].Timestamp))
	suite.Empty(resp.NextToken)
	suite.NotContains(w.Body.String(), "nextToken")
}

func (suite *AccountHandlerTestSuite) TestGetStatement_EmptyIsJSONArray() {
	suite.mockAccountService.On("GetStatement", mock.Anything, "2", domain.StatementParams{}).
		Return(&domain.Statement{}, nil).Once()

	w := suite.do("/api/accounts/2/statement")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"statement":[]}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestGetStatement_PassesQueryParams() {
	params := domain.StatementParams{IncludeRefunded: true, Limit: 5, NextToken: "abc"}
	suite.mockAccountService.On("GetStatement", mock.Anything, "1", params).
		Return(&domain.Statement{NextToken: "def"}, nil).Once()

	w := suite.do("/api/accounts/1/statement?includeRefunded=true&limit=5&nextToken=abc")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"statement":[],"nextToken":"def"}`, w.Body.String())
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetStatement_BadQueryParams() {
	for _, query := range []string{"limit=-1", "limit=101", "limit=abc", "includeRefunded=maybe"} {
		w := suite.do("/api/accounts/1/statement?" + query)

		suite.Equal(http.StatusBadRequest, w.Code, query)
		var resp dto.ErrorResponse
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.Equal(apperrors.CodeValidation, resp.Error.Code, query)
	}
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetStatement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetStatement_NotFound() {
	suite.mockAccountService.On("GetStatement", mock.Anything, "999", domain.StatementParams{}).
		Return(nil, apperrors.New(apperrors.CodeAccountNotFound)).Once()

	w := suite.do("/api/accounts/999/statement")

	suite.Equal(http.StatusNotFound, w.Code)
}
