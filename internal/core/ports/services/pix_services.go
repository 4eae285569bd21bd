package services

import (
	"context"

	"github.com/SscSPs/pix_simulator/internal/core/domain"
)

// TransferSvc moves money between accounts.
type TransferSvc interface {
	// Transfer executes a Pix transfer. The effective idempotency key is returned alongside
	// both successful and failed results.
	Transfer(ctx context.Context, cmd domain.TransferCommand) (*domain.Transaction, string, error)
}

// RefundSvc reverses recent transfers.
type RefundSvc interface {
	// Refund reverses a transfer made by cmd.AccountID and returns the refunded record.
	Refund(ctx context.Context, cmd domain.RefundCommand) (*domain.Transaction, error)
}
