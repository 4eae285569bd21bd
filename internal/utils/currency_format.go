package utils

import (
	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of decimal places of the Brazilian real.
const CurrencyPrecision = 2

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatAmount formats an amount in reais with exactly two decimal places.
// Example: amount 100 returns "100.00"
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, CurrencyPrecision)
}
