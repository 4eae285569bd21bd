package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/core/services"
	"github.com/SscSPs/pix_simulator/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MockAccountReader is a mock type for the AccountReader interface
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByCpf(ctx context.Context, cpf string) (*domain.Account, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockTransactionReader is a mock type for the TransactionReader interface
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) ListTransactionsByAccount(ctx context.Context, accountID string, includeRefunded bool) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, includeRefunded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ListSentBetween(ctx context.Context, senderID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, senderID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) FindActiveTransaction(ctx context.Context, transactionID string, senderID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccounts     *MockAccountReader
	mockTransactions *MockTransactionReader
	service          portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountReader)
	suite.mockTransactions = new(MockTransactionReader)
	suite.service = services.NewAccountService(suite.mockAccounts, suite.mockTransactions)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func makeTransactions(n int) []domain.Transaction {
	txns := make([]domain.Transaction, n)
	for i := range txns {
		txns[i] = domain.Transaction{
			ID:              fmt.Sprintf("txn-%d", i),
			SenderAccountID: "1",
			Amount:          decimal.NewFromInt(int64(i + 1)),
			Status:          domain.TransactionCompleted,
		}
	}
	return txns
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestGetBalance_Success() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByID", ctx, "1").
		Return(&domain.Account{ID: "1", Balance: decimal.RequireFromString("123.45")}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, "1")

	suite.Require().NoError(err)
	suite.Equal("123.45", balance.String())
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetBalance_NotFound() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByID", ctx, "9").
		Return(nil, fmt.Errorf("%w: account 9", apperrors.ErrNotFound)).Once()

	_, err := suite.service.GetBalance(ctx, "9")

	suite.ErrorIs(err, apperrors.New(apperrors.CodeAccountNotFound))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetBalance_RepositoryFailurePropagates() {
	ctx := context.Background()
	dbErr := errors.New("store unavailable")
	suite.mockAccounts.On("FindAccountByID", ctx, "1").Return(nil, dbErr).Once()

	_, err := suite.service.GetBalance(ctx, "1")

	suite.ErrorIs(err, dbErr)
	suite.Equal(apperrors.CodeInternal, apperrors.CodeOf(err))
}

func (suite *AccountServiceTestSuite) TestGetStatement_UnknownAccount() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByID", ctx, "9").
		Return(nil, fmt.Errorf("%w: account 9", apperrors.ErrNotFound)).Once()

	_, err := suite.service.GetStatement(ctx, "9", domain.StatementParams{})

	suite.ErrorIs(err, apperrors.New(apperrors.CodeAccountNotFound))
	suite.mockTransactions.AssertNotCalled(suite.T(), "ListTransactionsByAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetStatement_PassesRefundFilter() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByID", ctx, "1").Return(&domain.Account{ID: "1"}, nil)
	suite.mockTransactions.On("ListTransactionsByAccount", ctx, "1", true).Return(makeTransactions(2), nil).Once()

	st, err := suite.service.GetStatement(ctx, "1", domain.StatementParams{IncludeRefunded: true})

	suite.Require().NoError(err)
	suite.Len(st.Transactions, 2)
	suite.Empty(st.NextToken)
	suite.mockTransactions.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetStatement_Paging() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByID", ctx, "1").Return(&domain.Account{ID: "1"}, nil)
	suite.mockTransactions.On("ListTransactionsByAccount", ctx, "1", false).Return(makeTransactions(5), nil)

	var (
		seen  []string
		token string
		pages int
	)
	for {
		st, err := suite.service.GetStatement(ctx, "1", domain.StatementParams{Limit: 2, NextToken: token})
		suite.Require().NoError(err)
		pages++
		for _, txn := range st.Transactions {
			seen = append(seen, txn.ID)
		}
		if st.NextToken == "" {
			break
		}
		suite.Require().Less(pages, 10, "paging does not terminate")
		token = st.NextToken
	}

	suite.Equal(3, pages)
	suite.Equal([]string{"txn-0", "txn-1", "txn-2", "txn-3", "txn-4"}, seen)
}

func (suite *AccountServiceTestSuite) TestGetStatement_InvalidParams() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByID", ctx, "1").Return(&domain.Account{ID: "1"}, nil)
	suite.mockTransactions.On("ListTransactionsByAccount", ctx, "1", false).Return(makeTransactions(1), nil)

	for _, params := range []domain.StatementParams{
		{Limit: -1},
		{Limit: services.MaxStatementPageSize + 1},
		{NextToken: "%%%"},
	} {
		_, err := suite.service.GetStatement(ctx, "1", params)
		suite.ErrorIs(err, apperrors.New(apperrors.CodeValidation), "%+v", params)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
}

func (suite *AccountServiceTestSuite) TestGetStatement_RepositoryFailurePropagates() {
	ctx := context.Background()
	dbErr := errors.New("boom")
	suite.mockAccounts.On("FindAccountByID", ctx, "1").Return(&domain.Account{ID: "1"}, nil)
	suite.mockTransactions.On("ListTransactionsByAccount", ctx, "1", false).Return(nil, dbErr)

	_, err := suite.service.GetStatement(ctx, "1", domain.StatementParams{})
	suite.ErrorIs(err, dbErr)
}

func TestDeriveIdempotencyKey(t *testing.T) {
	key := services.DeriveIdempotencyKey("1", "222.222.222-22", decimal.NewFromInt(100))

	// sha256("1:222.222.222-22:100")
	require.Len(t, key, 64)
	assert.Equal(t, key, services.DeriveIdempotencyKey("1", "222.222.222-22", decimal.RequireFromString("100.00")))
	assert.NotEqual(t, key, services.DeriveIdempotencyKey("1", "222.222.222-22", decimal.RequireFromString("100.01")))
	assert.NotEqual(t, key, services.DeriveIdempotencyKey("2", "222.222.222-22", decimal.NewFromInt(100)))
	assert.NotEqual(t, key, services.DeriveIdempotencyKey("1", "333.333.333-33", decimal.NewFromInt(100)))
}

func TestStatementOfNewAccountIsEmptyList(t *testing.T) {
	store := newSeededStore(t)
	svc := services.NewAccountService(store, store)

	st, err := svc.GetStatement(context.Background(), "2", domain.StatementParams{})

	require.NoError(t, err)
	assert.NotNil(t, st.Transactions)
	assert.Empty(t, st.Transactions)
}

func newSeededStore(t *testing.T) *memory.LedgerStore {
	t.Helper()
	store, err := memory.NewLedgerStore(memory.DefaultSeed())
	require.NoError(t, err)
	return store
}
