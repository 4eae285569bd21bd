package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/pix_simulator/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ledgerTx is only handed out by LedgerStore.WithTransaction, which holds the write lock for
// its whole lifetime.
type ledgerTx struct {
	store *LedgerStore
	undo  []func()
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (tx *ledgerTx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (tx *ledgerTx) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return tx.store.findAccountByID(accountID)
}

func (tx *ledgerTx) FindAccountByCpf(ctx context.Context, cpf string) (*domain.Account, error) {
	return tx.store.findAccountByCpf(cpf)
}

func (tx *ledgerTx) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	acc, ok := tx.store.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	previous := acc.Balance
	acc.Balance = balance
	tx.undo = append(tx.undo, func() { acc.Balance = previous })
	return nil
}

func (tx *ledgerTx) ListTransactionsByAccount(ctx context.Context, accountID string, includeRefunded bool) ([]domain.Transaction, error) {
	return tx.store.listTransactionsByAccount(accountID, includeRefunded), nil
}

func (tx *ledgerTx) ListSentBetween(ctx context.Context, senderID string, from, to time.Time) ([]domain.Transaction, error) {
	return tx.store.listSentBetween(senderID, from, to), nil
}

func (tx *ledgerTx) FindActiveTransaction(ctx context.Context, transactionID string, senderID string) (*domain.Transaction, error) {
	return tx.store.findActiveTransaction(transactionID, senderID)
}

func (tx *ledgerTx) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	s := tx.store
	if _, exists := s.txnIndex[txn.ID]; exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.ID)
	}
	s.transactions = append(s.transactions, copyTransaction(txn))
	s.txnIndex[txn.ID] = len(s.transactions) - 1
	tx.undo = append(tx.undo, func() {
		s.transactions = s.transactions[:len(s.transactions)-1]
		delete(s.txnIndex, txn.ID)
	})
	return nil
}

func (tx *ledgerTx) MarkTransactionRefunded(ctx context.Context, transactionID string, at time.Time) (*domain.Transaction, error) {
	s := tx.store
	i, ok := s.txnIndex[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if !s.transactions[i].IsActive() {
		return nil, fmt.Errorf("%w: transaction %s already refunded", apperrors.ErrValidation, transactionID)
	}
	previous := s.transactions[i]
	refundedAt := at
	s.transactions[i].Status = domain.TransactionRefunded
	s.transactions[i].RefundedAt = &refundedAt
	tx.undo = append(tx.undo, func() { s.transactions[i] = previous })

	cp := copyTransaction(s.transactions[i])
	return &cp, nil
}

func (tx *ledgerTx) FindIdempotencyRecord(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	rec, ok := tx.store.idempotency[key]
	if !ok {
		return nil, fmt.Errorf("%w: idempotency key %s", apperrors.ErrNotFound, key)
	}
	return &rec, nil
}

func (tx *ledgerTx) SaveIdempotencyRecord(ctx context.Context, record domain.IdempotencyRecord) error {
	s := tx.store
	if _, exists := s.idempotency[record.Key]; exists {
		return fmt.Errorf("%w: idempotency key %s", apperrors.ErrDuplicate, record.Key)
	}
	s.idempotency[record.Key] = record
	tx.undo = append(tx.undo, func() { delete(s.idempotency, record.Key) })
	return nil
}

func (tx *ledgerTx) DeleteIdempotencyRecord(ctx context.Context, key string) error {
	s := tx.store
	rec, ok := s.idempotency[key]
	if !ok {
		return fmt.Errorf("%w: idempotency key %s", apperrors.ErrNotFound, key)
	}
	delete(s.idempotency, key)
	tx.undo = append(tx.undo, func() { s.idempotency[key] = rec })
	return nil
}
