package domain

import "github.com/shopspring/decimal"

// IdempotencyRecord is the registry snapshot kept for a key. It holds just enough of the
// original request to tell a retried request apart from a different one reusing the key.
type IdempotencyRecord struct {
	Key             string
	TransactionID   string
	SenderAccountID string
	ReceiverCpf     string
	Amount          decimal.Decimal
}

// Matches reports whether the incoming payload is the same as the recorded one.
func (r IdempotencyRecord) Matches(senderAccountID, receiverCpf string, amount decimal.Decimal) bool {
	return r.SenderAccountID == senderAccountID &&
		r.ReceiverCpf == receiverCpf &&
		r.Amount.Equal(amount)
}
