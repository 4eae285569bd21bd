package dto

import (
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	TransferSuccessMessage = "Pix transfer completed successfully."
	RefundSuccessMessage   = "Pix refund completed successfully."
)

// TransferRequest defines the body of a Pix transfer. Field presence is checked by the
// transfer engine, which reports each missing field with its own code.
type TransferRequest struct {
	SenderAccountID string          `json:"senderAccountId"`
	ReceiverCpf     string          `json:"receiverCpf"`
	Amount          decimal.Decimal `json:"amount"`
	IdempotencyKey  string          `json:"idempotencyKey"` // Optional; the X-Idempotency-Key header wins
}

// ToCommand converts the request to the engine input.
func (r TransferRequest) ToCommand(headerKey string, simulateTimeout bool) domain.TransferCommand {
	key := r.IdempotencyKey
	if headerKey != "" {
		key = headerKey
	}
	return domain.TransferCommand{
		SenderAccountID: r.SenderAccountID,
		ReceiverCpf:     r.ReceiverCpf,
		Amount:          r.Amount,
		IdempotencyKey:  key,
		SimulateTimeout: simulateTimeout,
	}
}

// TransferResponse defines the data returned for an accepted transfer.
type TransferResponse struct {
	Message        string              `json:"message"`
	Transaction    TransactionResponse `json:"transaction"`
	IdempotencyKey string              `json:"idempotencyKey"`
}

// RefundRequest defines the body of a Pix refund.
type RefundRequest struct {
	TransactionID string `json:"transactionId"`
	AccountID     string `json:"accountId"` // Must be the sender of the original transfer
}

// ToCommand converts the request to the engine input.
func (r RefundRequest) ToCommand() domain.RefundCommand {
	return domain.RefundCommand{TransactionID: r.TransactionID, AccountID: r.AccountID}
}

// RefundResponse defines the data returned for an accepted refund.
type RefundResponse struct {
	Message             string              `json:"message"`
	RefundedTransaction TransactionResponse `json:"refundedTransaction"`
}
