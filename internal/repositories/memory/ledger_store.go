// Package memory implements the ledger repositories on top of process memory. State does not
// survive a restart; Reset brings the store back to its seed.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/pix_simulator/internal/core/ports/repositories"
)

// LedgerStore owns every account, transaction and idempotency record of a single ledger.
// A single RWMutex serializes writers (one unit of work at a time) while letting readers run
// concurrently; readers always receive copies.
type LedgerStore struct {
	mu   sync.RWMutex
	seed []domain.Account

	accounts     map[string]*domain.Account
	cpfIndex     map[string]string // cpf -> account id
	transactions []domain.Transaction
	txnIndex     map[string]int // transaction id -> position in transactions
	idempotency  map[string]domain.IdempotencyRecord
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerStore)(nil)

// NewLedgerStore creates a store initialized with seed. The seed is copied, so later changes
// to the caller's slice do not leak into Reset.
func NewLedgerStore(seed []domain.Account) (*LedgerStore, error) {
	if err := validateSeed(seed); err != nil {
		return nil, err
	}
	s := &LedgerStore{seed: append([]domain.Account(nil), seed...)}
	s.reset()
	return s, nil
}

func validateSeed(seed []domain.Account) error {
	ids := make(map[string]struct{}, len(seed))
	cpfs := make(map[string]struct{}, len(seed))
	for _, acc := range seed {
		if acc.ID == "" || acc.Cpf == "" {
			return fmt.Errorf("%w: seed account requires id and cpf", apperrors.ErrValidation)
		}
		if _, dup := ids[acc.ID]; dup {
			return fmt.Errorf("%w: duplicate seed account id %s", apperrors.ErrDuplicate, acc.ID)
		}
		if _, dup := cpfs[acc.Cpf]; dup {
			return fmt.Errorf("%w: duplicate seed cpf %s", apperrors.ErrDuplicate, acc.Cpf)
		}
		if acc.Balance.IsNegative() {
			return fmt.Errorf("%w: seed account %s has a negative balance", apperrors.ErrValidation, acc.ID)
		}
		ids[acc.ID] = struct{}{}
		cpfs[acc.Cpf] = struct{}{}
	}
	return nil
}

// Reset restores the seed accounts and clears transactions and the idempotency registry.
func (s *LedgerStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *LedgerStore) reset() {
	s.accounts = make(map[string]*domain.Account, len(s.seed))
	s.cpfIndex = make(map[string]string, len(s.seed))
	for _, acc := range s.seed {
		cp := acc
		s.accounts[cp.ID] = &cp
		s.cpfIndex[cp.Cpf] = cp.ID
	}
	s.transactions = nil
	s.txnIndex = make(map[string]int)
	s.idempotency = make(map[string]domain.IdempotencyRecord)
}

// WithTransaction runs fn while holding the write lock. Every mutation performed through the
// LedgerTx is journaled and rolled back if fn returns an error.
func (s *LedgerStore) WithTransaction(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &ledgerTx{store: s}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (s *LedgerStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findAccountByID(accountID)
}

func (s *LedgerStore) FindAccountByCpf(ctx context.Context, cpf string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findAccountByCpf(cpf)
}

func (s *LedgerStore) ListTransactionsByAccount(ctx context.Context, accountID string, includeRefunded bool) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTransactionsByAccount(accountID, includeRefunded), nil
}

func (s *LedgerStore) ListSentBetween(ctx context.Context, senderID string, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSentBetween(senderID, from, to), nil
}

func (s *LedgerStore) FindActiveTransaction(ctx context.Context, transactionID string, senderID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findActiveTransaction(transactionID, senderID)
}

// --- unlocked helpers, callers must hold s.mu ---

func (s *LedgerStore) findAccountByID(accountID string) (*domain.Account, error) {
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	cp := *acc
	return &cp, nil
}

func (s *LedgerStore) findAccountByCpf(cpf string) (*domain.Account, error) {
	id, ok := s.cpfIndex[cpf]
	if !ok {
		return nil, fmt.Errorf("%w: cpf %s", apperrors.ErrNotFound, cpf)
	}
	return s.findAccountByID(id)
}

func (s *LedgerStore) listTransactionsByAccount(accountID string, includeRefunded bool) []domain.Transaction {
	out := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if !includeRefunded && !txn.IsActive() {
			continue
		}
		if txn.Involves(accountID) {
			out = append(out, copyTransaction(txn))
		}
	}
	return out
}

func (s *LedgerStore) listSentBetween(senderID string, from, to time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, txn := range s.transactions {
		if !txn.IsActive() || txn.SenderAccountID != senderID {
			continue
		}
		if txn.Timestamp.Before(from) || !txn.Timestamp.Before(to) {
			continue
		}
		out = append(out, copyTransaction(txn))
	}
	return out
}

func (s *LedgerStore) findActiveTransaction(transactionID string, senderID string) (*domain.Transaction, error) {
	i, ok := s.txnIndex[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	txn := s.transactions[i]
	if !txn.IsActive() || txn.SenderAccountID != senderID {
		return nil, fmt.Errorf("%w: transaction %s for sender %s", apperrors.ErrNotFound, transactionID, senderID)
	}
	cp := copyTransaction(txn)
	return &cp, nil
}

func copyTransaction(txn domain.Transaction) domain.Transaction {
	if txn.RefundedAt != nil {
		at := *txn.RefundedAt
		txn.RefundedAt = &at
	}
	return txn
}
