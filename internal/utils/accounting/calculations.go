// Package accounting holds the arithmetic shared by the ledger engines.
package accounting

import (
	"github.com/SscSPs/pix_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumAmounts adds up the amounts of txns.
func SumAmounts(txns []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.Amount)
	}
	return sum
}

// TotalBalance adds up the balances of accounts. Accepted operations between ledger accounts
// never change it.
func TotalBalance(accounts []domain.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}
	return total
}

// ExceedsLimit reports whether adding amount to what was already sent goes past limit.
// Landing exactly on the limit is allowed.
func ExceedsLimit(alreadySent, amount, limit decimal.Decimal) bool {
	return alreadySent.Add(amount).GreaterThan(limit)
}
