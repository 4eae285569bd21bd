package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/pix_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/platform/clock"
	"github.com/SscSPs/pix_simulator/internal/utils"
	"github.com/SscSPs/pix_simulator/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const operationTransfer = "transfer"

// transferService implements the TransferSvc interface
type transferService struct {
	BaseService
	ledger            portsrepo.LedgerRepositoryFacade
	timeoutSimulation bool
	newID             func() string
}

// TransferOption is a functional option for configuring the transfer service
type TransferOption func(*transferService)

// WithTransferClock sets the clock used for timestamps and the daily window
func WithTransferClock(c clock.Clock) TransferOption {
	return func(s *transferService) {
		s.Clock = c
	}
}

// WithTimeoutSimulation enables or disables the timeout simulation hook
func WithTimeoutSimulation(enabled bool) TransferOption {
	return func(s *transferService) {
		s.timeoutSimulation = enabled
	}
}

// WithTransactionIDGenerator replaces the uuid based transaction id generator
func WithTransactionIDGenerator(fn func() string) TransferOption {
	return func(s *transferService) {
		s.newID = fn
	}
}

// NewTransferService creates a new transfer service with the provided options
func NewTransferService(ledger portsrepo.LedgerRepositoryFacade, options ...TransferOption) portssvc.TransferSvc {
	svc := &transferService{
		ledger:            ledger,
		timeoutSimulation: true,
		newID:             uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransferSvc = (*transferService)(nil)

// Transfer runs the idempotency check through the commit inside one unit of work.
func (s *transferService) Transfer(ctx context.Context, cmd domain.TransferCommand) (*domain.Transaction, string, error) {
	key := cmd.IdempotencyKey
	if key == "" {
		key = DeriveIdempotencyKey(cmd.SenderAccountID, cmd.ReceiverCpf, cmd.Amount)
	}
	logAttrs := []any{
		slog.String("sender_account_id", cmd.SenderAccountID),
		slog.String("receiver_cpf", cmd.ReceiverCpf),
		slog.String("amount", utils.FormatAmount(cmd.Amount)),
		slog.String("idempotency_key", key),
	}

	var created *domain.Transaction
	err := s.ledger.WithTransaction(ctx, func(tx portsrepo.LedgerTx) error {
		txn, err := s.transfer(ctx, tx, cmd, key)
		if err != nil {
			return err
		}
		created = txn
		return nil
	})
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		err = apperrors.New(apperrors.CodeTimeout)
	}
	observeOperation(operationTransfer, cmd.Amount, err)
	if err != nil {
		s.LogOutcome(ctx, err, "Pix transfer rejected", logAttrs...)
		return nil, key, err
	}

	s.LogInfo(ctx, "Pix transfer completed", append(logAttrs, slog.String("transaction_id", created.ID))...)
	return created, key, nil
}

func (s *transferService) transfer(ctx context.Context, tx portsrepo.LedgerTx, cmd domain.TransferCommand, key string) (*domain.Transaction, error) {
	record, err := tx.FindIdempotencyRecord(ctx, key)
	switch {
	case err == nil:
		if record.Matches(cmd.SenderAccountID, cmd.ReceiverCpf, cmd.Amount) {
			return nil, apperrors.New(apperrors.CodeDuplicateTransaction)
		}
		return nil, apperrors.New(apperrors.CodeIdempotencyKeyReused)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	if cmd.SimulateTimeout && s.timeoutSimulation {
		return nil, apperrors.New(apperrors.CodeTimeout)
	}

	if strings.TrimSpace(cmd.ReceiverCpf) == "" {
		return nil, apperrors.New(apperrors.CodeDestinationAccountRequired)
	}

	if !cmd.Amount.IsPositive() {
		return nil, apperrors.New(apperrors.CodeInvalidAmount)
	}

	sender, err := tx.FindAccountByID(ctx, cmd.SenderAccountID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.CodeAccountNotFound)
	}

	now := s.now()
	if err := s.checkDailyLimit(ctx, tx, sender, cmd.Amount, now); err != nil {
		return nil, err
	}

	if sender.Balance.LessThan(cmd.Amount) {
		return nil, apperrors.New(apperrors.CodeInsufficientBalance)
	}

	if err := tx.UpdateAccountBalance(ctx, sender.ID, sender.Balance.Sub(cmd.Amount)); err != nil {
		return nil, err
	}

	// The receiver is read after the debit so that a transfer to oneself nets out.
	receiverAccountID := ""
	receiver, err := tx.FindAccountByCpf(ctx, cmd.ReceiverCpf)
	switch {
	case err == nil:
		receiverAccountID = receiver.ID
		if err := tx.UpdateAccountBalance(ctx, receiver.ID, receiver.Balance.Add(cmd.Amount)); err != nil {
			return nil, err
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	txn := domain.Transaction{
		ID:                s.newID(),
		IdempotencyKey:    key,
		Type:              domain.PixTransfer,
		SenderAccountID:   sender.ID,
		ReceiverCpf:       cmd.ReceiverCpf,
		ReceiverAccountID: receiverAccountID,
		Amount:            cmd.Amount,
		Timestamp:         now,
		Status:            domain.TransactionCompleted,
	}
	if err := tx.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}
	if err := tx.SaveIdempotencyRecord(ctx, domain.IdempotencyRecord{
		Key:             key,
		TransactionID:   txn.ID,
		SenderAccountID: txn.SenderAccountID,
		ReceiverCpf:     txn.ReceiverCpf,
		Amount:          txn.Amount,
	}); err != nil {
		return nil, err
	}
	return &txn, nil
}

// checkDailyLimit sums the sender's completed transfers of the current calendar day. Reaching
// the limit exactly is allowed.
func (s *transferService) checkDailyLimit(ctx context.Context, tx portsrepo.LedgerTx, sender *domain.Account, amount decimal.Decimal, now time.Time) error {
	dayStart := clock.StartOfDay(now)
	sent, err := tx.ListSentBetween(ctx, sender.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	if accounting.ExceedsLimit(accounting.SumAmounts(sent), amount, sender.EffectiveDailyLimit()) {
		if sender.IsFavorite {
			return apperrors.New(apperrors.CodeFavoriteLimitExceeded)
		}
		return apperrors.New(apperrors.CodeDailyLimitExceeded)
	}
	return nil
}

// translateNotFound turns a repository not-found error into the coded error clients see.
func translateNotFound(err error, code apperrors.Code) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.New(code)
	}
	return err
}
