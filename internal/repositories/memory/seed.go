package memory

import (
	"fmt"
	"os"

	"github.com/SscSPs/pix_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultSeed returns the three accounts the simulator starts with.
func DefaultSeed() []domain.Account {
	dailyLimit := decimal.NewFromInt(1000)
	favoriteLimit := decimal.NewFromInt(5000)
	return []domain.Account{
		{
			ID:               "1",
			Name:             "Alice",
			Cpf:              "111.111.111-11",
			Agency:           "0001",
			Number:           "12345-6",
			Balance:          decimal.NewFromInt(10000),
			DailyPixLimit:    dailyLimit,
			FavoritePixLimit: favoriteLimit,
			IsFavorite:       false,
		},
		{
			ID:               "2",
			Name:             "Bob",
			Cpf:              "222.222.222-22",
			Agency:           "0001",
			Number:           "78901-2",
			Balance:          decimal.NewFromInt(500),
			DailyPixLimit:    dailyLimit,
			FavoritePixLimit: favoriteLimit,
			IsFavorite:       false,
		},
		{
			ID:               "3",
			Name:             "Charlie",
			Cpf:              "333.333.333-33",
			Agency:           "0001",
			Number:           "34567-8",
			Balance:          decimal.NewFromInt(10000),
			DailyPixLimit:    dailyLimit,
			FavoritePixLimit: favoriteLimit,
			IsFavorite:       true,
		},
	}
}

// seedFile is the on-disk layout of a seed file. Amounts are strings so that they are parsed
// exactly by decimal rather than through float64.
type seedFile struct {
	Accounts []seedAccount `yaml:"accounts"`
}

type seedAccount struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Cpf              string `yaml:"cpf"`
	Agency           string `yaml:"agency"`
	Number           string `yaml:"number"`
	Balance          string `yaml:"balance"`
	DailyPixLimit    string `yaml:"daily_pix_limit"`
	FavoritePixLimit string `yaml:"favorite_pix_limit"`
	IsFavorite       bool   `yaml:"is_favorite"`
}

// LoadSeedFile reads seed accounts from a YAML file.
func LoadSeedFile(path string) ([]domain.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed accounts from YAML.
func ParseSeed(data []byte) ([]domain.Account, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if len(f.Accounts) == 0 {
		return nil, fmt.Errorf("seed file contains no accounts")
	}

	accounts := make([]domain.Account, 0, len(f.Accounts))
	for _, sa := range f.Accounts {
		acc := domain.Account{
			ID:         sa.ID,
			Name:       sa.Name,
			Cpf:        sa.Cpf,
			Agency:     sa.Agency,
			Number:     sa.Number,
			IsFavorite: sa.IsFavorite,
		}
		var err error
		if acc.Balance, err = parseAmount(sa.Balance, "balance", sa.ID); err != nil {
			return nil, err
		}
		if acc.DailyPixLimit, err = parseAmount(sa.DailyPixLimit, "daily_pix_limit", sa.ID); err != nil {
			return nil, err
		}
		if acc.FavoritePixLimit, err = parseAmount(sa.FavoritePixLimit, "favorite_pix_limit", sa.ID); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func parseAmount(raw, field, accountID string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: invalid %s %q: %w", accountID, field, raw, err)
	}
	return d, nil
}

// MarshalSeed encodes accounts in the seed file layout accepted by ParseSeed.
func MarshalSeed(accounts []domain.Account) ([]byte, error) {
	f := seedFile{Accounts: make([]seedAccount, 0, len(accounts))}
	for _, acc := range accounts {
		f.Accounts = append(f.Accounts, seedAccount{
			ID:               acc.ID,
			Name:             acc.Name,
			Cpf:              acc.Cpf,
			Agency:           acc.Agency,
			Number:           acc.Number,
			Balance:          acc.Balance.String(),
			DailyPixLimit:    acc.DailyPixLimit.String(),
			FavoritePixLimit: acc.FavoritePixLimit.String(),
			IsFavorite:       acc.IsFavorite,
		})
	}
	out, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding seed: %w", err)
	}
	return out, nil
}
