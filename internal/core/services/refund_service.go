package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/pix_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/platform/clock"
	"github.com/SscSPs/pix_simulator/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	operationRefund = "refund"

	// DefaultRefundWindow is how long after a transfer its sender may still reverse it.
	DefaultRefundWindow = time.Minute
)

// refundService implements the RefundSvc interface
type refundService struct {
	BaseService
	ledger portsrepo.LedgerRepositoryFacade
	window time.Duration
}

// RefundOption is a functional option for configuring the refund service
type RefundOption func(*refundService)

// WithRefundClock sets the clock the refund window is measured against
func WithRefundClock(c clock.Clock) RefundOption {
	return func(s *refundService) {
		s.Clock = c
	}
}

// WithRefundWindow overrides DefaultRefundWindow. Non-positive values are ignored.
func WithRefundWindow(window time.Duration) RefundOption {
	return func(s *refundService) {
		if window > 0 {
			s.window = window
		}
	}
}

// NewRefundService creates a new refund service with the provided options
func NewRefundService(ledger portsrepo.LedgerRepositoryFacade, options ...RefundOption) portssvc.RefundSvc {
	svc := &refundService{
		ledger: ledger,
		window: DefaultRefundWindow,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RefundSvc = (*refundService)(nil)

// Refund moves the amount back from the receiver to the sender and retires the transaction:
// it leaves the active history and its idempotency key becomes free again.
func (s *refundService) Refund(ctx context.Context, cmd domain.RefundCommand) (*domain.Transaction, error) {
	logAttrs := []any{
		slog.String("transaction_id", cmd.TransactionID),
		slog.String("account_id", cmd.AccountID),
	}

	var refunded *domain.Transaction
	err := s.ledger.WithTransaction(ctx, func(tx portsrepo.LedgerTx) error {
		txn, err := s.refund(ctx, tx, cmd)
		if err != nil {
			return err
		}
		refunded = txn
		return nil
	})
	if err != nil {
		observeOperation(operationRefund, decimal.Zero, err)
		s.LogOutcome(ctx, err, "Pix refund rejected", logAttrs...)
		return nil, err
	}

	observeOperation(operationRefund, refunded.Amount, nil)
	s.LogInfo(ctx, "Pix refund completed", append(logAttrs, slog.String("amount", utils.FormatAmount(refunded.Amount)))...)
	return refunded, nil
}

func (s *refundService) refund(ctx context.Context, tx portsrepo.LedgerTx, cmd domain.RefundCommand) (*domain.Transaction, error) {
	if cmd.TransactionID == "" || cmd.AccountID == "" {
		return nil, apperrors.New(apperrors.CodeTransactionNotFound)
	}

	txn, err := tx.FindActiveTransaction(ctx, cmd.TransactionID, cmd.AccountID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.CodeTransactionNotFound)
	}

	now := s.now()
	if txn.Timestamp.Before(now.Add(-s.window)) {
		return nil, s.expiredError()
	}

	// Debit the receiver first; a transfer to oneself then nets out when the sender is read.
	if txn.ReceiverAccountID != "" {
		receiver, err := tx.FindAccountByID(ctx, txn.ReceiverAccountID)
		if err != nil {
			return nil, err
		}
		if receiver.Balance.LessThan(txn.Amount) {
			return nil, apperrors.New(apperrors.CodeInsufficientBalance)
		}
		if err := tx.UpdateAccountBalance(ctx, receiver.ID, receiver.Balance.Sub(txn.Amount)); err != nil {
			return nil, err
		}
	}

	sender, err := tx.FindAccountByID(ctx, txn.SenderAccountID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.CodeAccountNotFound)
	}
	if err := tx.UpdateAccountBalance(ctx, sender.ID, sender.Balance.Add(txn.Amount)); err != nil {
		return nil, err
	}

	refunded, err := tx.MarkTransactionRefunded(ctx, txn.ID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.DeleteIdempotencyRecord(ctx, txn.IdempotencyKey); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return refunded, nil
}

func (s *refundService) expiredError() error {
	if s.window == DefaultRefundWindow {
		return apperrors.New(apperrors.CodeRefundExpired)
	}
	return apperrors.Newf(apperrors.CodeRefundExpired, "The refund can no longer be processed. The %s window has passed.", s.window)
}
