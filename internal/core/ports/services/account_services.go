package services

import (
	"context"

	"github.com/SscSPs/pix_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account by its unique identifier.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetBalance returns the current balance of an account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// AccountStatementSvc defines the transaction history view of an account
type AccountStatementSvc interface {
	// GetStatement lists the transactions where the account is sender or receiver, oldest first.
	GetStatement(ctx context.Context, accountID string, params domain.StatementParams) (*domain.Statement, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountStatementSvc
}
