package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags the kind of money movement a transaction represents.
type TransactionType string

const (
	PixTransfer TransactionType = "PIX_TRANSFER"
)

// TransactionStatus tracks the lifecycle of a transaction.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionRefunded  TransactionStatus = "REFUNDED"
)

// Transaction is a single Pix transfer recorded in the ledger.
type Transaction struct {
	ID                string            `json:"id"`
	IdempotencyKey    string            `json:"idempotencyKey"`
	Type              TransactionType   `json:"type"`
	SenderAccountID   string            `json:"senderAccountId"`
	ReceiverCpf       string            `json:"receiverCpf"`
	ReceiverAccountID string            `json:"receiverAccountId,omitempty"` // Empty for receivers outside the ledger
	Amount            decimal.Decimal   `json:"amount"`
	Timestamp         time.Time         `json:"timestamp"`
	Status            TransactionStatus `json:"status"`
	RefundedAt        *time.Time        `json:"refundedAt,omitempty"`
}

// IsActive reports whether the transaction still has financial effect.
func (t Transaction) IsActive() bool {
	return t.Status == TransactionCompleted
}

// Involves reports whether accountID took part in the transaction as sender or receiver.
func (t Transaction) Involves(accountID string) bool {
	return t.SenderAccountID == accountID || (t.ReceiverAccountID != "" && t.ReceiverAccountID == accountID)
}
