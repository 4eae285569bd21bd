package dto

import (
	"time"

	"github.com/SscSPs/pix_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// StatementParams defines query parameters for the statement listing.
type StatementParams struct {
	IncludeRefunded bool   `form:"includeRefunded"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken       string `form:"nextToken"`
}

// ToDomain converts the query parameters to the service input.
func (p StatementParams) ToDomain() domain.StatementParams {
	return domain.StatementParams{
		IncludeRefunded: p.IncludeRefunded,
		Limit:           p.Limit,
		NextToken:       p.NextToken,
	}
}

// TransactionResponse defines the data returned for a transaction.
// Mirrors domain.Transaction.
type TransactionResponse struct {
	ID                string                   `json:"id"`
	IdempotencyKey    string                   `json:"idempotencyKey"`
	Type              domain.TransactionType   `json:"type"`
	SenderAccountID   string                   `json:"senderAccountId"`
	ReceiverCpf       string                   `json:"receiverCpf"`
	ReceiverAccountID string                   `json:"receiverAccountId,omitempty"`
	Amount            decimal.Decimal          `json:"amount"`
	Timestamp         time.Time                `json:"timestamp"`
	Status            domain.TransactionStatus `json:"status"`
	RefundedAt        *time.Time               `json:"refundedAt,omitempty"`
}

// StatementResponse is one page of an account statement.
type StatementResponse struct {
	Statement []TransactionResponse `json:"statement"`
	NextToken string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                txn.ID,
		IdempotencyKey:    txn.IdempotencyKey,
		Type:              txn.Type,
		SenderAccountID:   txn.SenderAccountID,
		ReceiverCpf:       txn.ReceiverCpf,
		ReceiverAccountID: txn.ReceiverAccountID,
		Amount:            txn.Amount,
		Timestamp:         txn.Timestamp,
		Status:            txn.Status,
		RefundedAt:        txn.RefundedAt,
	}
}

// ToStatementResponse converts a domain.Statement. The list is never null in JSON.
func ToStatementResponse(st *domain.Statement) StatementResponse {
	res := StatementResponse{Statement: make([]TransactionResponse, 0, len(st.Transactions)), NextToken: st.NextToken}
	for i := range st.Transactions {
		res.Statement = append(res.Statement, ToTransactionResponse(&st.Transactions[i]))
	}
	return res
}
