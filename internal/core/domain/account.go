package domain

import "github.com/shopspring/decimal"

// Account is a ledger account addressable by its ID or, for incoming Pix transfers, by its CPF.
type Account struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Cpf              string          `json:"cpf"`
	Agency           string          `json:"agency"`
	Number           string          `json:"number"`
	Balance          decimal.Decimal `json:"balance"`
	DailyPixLimit    decimal.Decimal `json:"dailyPixLimit"`
	FavoritePixLimit decimal.Decimal `json:"favoritePixLimit"`
	IsFavorite       bool            `json:"isFavorite"`
}

// EffectiveDailyLimit returns the ceiling that applies to the account's cumulative daily transfers.
func (a Account) EffectiveDailyLimit() decimal.Decimal {
	if a.IsFavorite {
		return a.FavoritePixLimit
	}
	return a.DailyPixLimit
}
