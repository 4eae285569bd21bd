package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
)

// DeriveIdempotencyKey returns the key used when a transfer request carries none. It is the
// hex encoded SHA-256 of "<sender>:<receiverCpf>:<amount>", with the amount in its canonical
// decimal form (100.00 becomes "100"), so a retried payload always lands on the same key.
func DeriveIdempotencyKey(senderAccountID, receiverCpf string, amount decimal.Decimal) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", senderAccountID, receiverCpf, amount.String())))
	return hex.EncodeToString(sum[:])
}
