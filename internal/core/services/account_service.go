package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/pix_simulator/internal/apperrors"
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/pix_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// MaxStatementPageSize caps StatementParams.Limit.
const MaxStatementPageSize = 100

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
}

// NewAccountService creates the read-only account query service.
func NewAccountService(accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		err = translateNotFound(err, apperrors.CodeAccountNotFound)
		s.LogOutcome(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogDebug(ctx, "Account retrieved successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *accountService) GetStatement(ctx context.Context, accountID string, params domain.StatementParams) (*domain.Statement, error) {
	if params.Limit < 0 || params.Limit > MaxStatementPageSize {
		err := apperrors.Newf(apperrors.CodeValidation, "limit must be between 1 and %d.", MaxStatementPageSize)
		s.LogRejection(ctx, err, "Invalid statement page size", slog.Int("limit", params.Limit))
		return nil, err
	}

	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	txns, err := s.transactionRepo.ListTransactionsByAccount(ctx, accountID, params.IncludeRefunded)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, err
	}

	start := 0
	if params.NextToken != "" {
		offset, lastID, err := pagination.DecodeCursorToken(params.NextToken)
		if err != nil {
			coded := apperrors.Newf(apperrors.CodeValidation, "Invalid nextToken.")
			s.LogRejection(ctx, coded, "Invalid statement token", slog.String("error", err.Error()))
			return nil, coded
		}
		ids := make([]string, len(txns))
		for i, txn := range txns {
			ids[i] = txn.ID
		}
		start = pagination.ResumeIndex(ids, offset, lastID)
	}

	end := len(txns)
	if params.Limit > 0 && start+params.Limit < end {
		end = start + params.Limit
	}

	statement := &domain.Statement{Transactions: txns[start:end]}
	if end < len(txns) {
		statement.NextToken = pagination.EncodeCursorToken(end, txns[end-1].ID)
	}

	s.LogDebug(ctx, "Statement retrieved successfully",
		slog.String("account_id", accountID),
		slog.Int("count", len(statement.Transactions)),
		slog.Bool("has_more", statement.NextToken != ""))
	return statement, nil
}
