package domain

import "github.com/shopspring/decimal"

// TransferCommand is the input to the transfer engine.
type TransferCommand struct {
	SenderAccountID string
	ReceiverCpf     string
	Amount          decimal.Decimal
	IdempotencyKey  string // Optional; derived from the payload when empty
	SimulateTimeout bool
}

// RefundCommand is the input to the refund engine.
type RefundCommand struct {
	TransactionID string
	AccountID     string // Must be the original sender
}

// StatementParams narrows a statement query.
type StatementParams struct {
	IncludeRefunded bool
	Limit           int    // Zero means no paging
	NextToken       string // Opaque cursor returned by a previous page
}

// Statement is a page of transactions involving one account.
type Statement struct {
	Transactions []Transaction
	NextToken    string
}
