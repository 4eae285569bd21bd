package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pix_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID returns a copy of the account or apperrors.ErrNotFound.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCpf resolves the account owning a CPF or returns apperrors.ErrNotFound.
	FindAccountByCpf(ctx context.Context, cpf string) (*domain.Account, error)
}

// AccountWriter defines balance mutations. Only the transfer and refund engines call it.
type AccountWriter interface {
	UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error
}

// TransactionReader defines read operations over the transaction history.
type TransactionReader interface {
	// ListTransactionsByAccount returns transactions in insertion order where the account is
	// sender or receiver. Refunded transactions are only returned when includeRefunded is set.
	ListTransactionsByAccount(ctx context.Context, accountID string, includeRefunded bool) ([]domain.Transaction, error)

	// ListSentBetween returns completed transactions sent by senderID with from <= timestamp < to.
	ListSentBetween(ctx context.Context, senderID string, from, to time.Time) ([]domain.Transaction, error)

	// FindActiveTransaction returns the completed transaction with the given id sent by senderID.
	FindActiveTransaction(ctx context.Context, transactionID string, senderID string) (*domain.Transaction, error)
}

// TransactionWriter appends and transitions transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	MarkTransactionRefunded(ctx context.Context, transactionID string, at time.Time) (*domain.Transaction, error)
}

// IdempotencyRegistry maps idempotency keys to the transaction snapshot they produced.
type IdempotencyRegistry interface {
	FindIdempotencyRecord(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
	SaveIdempotencyRecord(ctx context.Context, record domain.IdempotencyRecord) error
	DeleteIdempotencyRecord(ctx context.Context, key string) error
}

// LedgerTx is the view of the ledger available inside an exclusive unit of work.
type LedgerTx interface {
	AccountReader
	AccountWriter
	TransactionReader
	TransactionWriter
	IdempotencyRegistry
}

// LedgerRepositoryFacade combines the read side of the ledger with a transaction runner.
type LedgerRepositoryFacade interface {
	AccountReader
	TransactionReader

	// WithTransaction runs fn with exclusive access to the ledger. Mutations made through tx
	// are only visible to readers once fn returns nil; a non-nil error discards them.
	WithTransaction(ctx context.Context, fn func(tx LedgerTx) error) error

	// Reset restores the seed accounts and clears the history and the idempotency registry.
	Reset(ctx context.Context) error
}
