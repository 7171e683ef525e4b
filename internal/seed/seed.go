// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/repository"
	"offer-ledger/internal/service"
)

// Currencies, users, wallets and assets of the demo data set. Wallet and
// asset entries refer to users and currencies by index.
var (
	Currencies = []string{"Bitcoin", "Dogecoin", "Ethereum", "Avalanche", "Zcash"}
	Users      = []string{"Bertha Shepherd", "Rufus Shaffer"}
	Wallets    = []int{0, 0, 0, 1, 1}
	Assets     = []struct {
		Wallet   int
		Currency int
		Amount   string
	}{
		{0, 0, "15"},
		{0, 1, "3.5"},
		{0, 2, "0.3"},
		{1, 3, "15"},
		{1, 4, "3.5"},
		{2, 2, "0.3"},
		{3, 3, "15"},
		{3, 1, "3.5"},
		{3, 2, "0.3"},
		{3, 4, "0.3"},
		{4, 3, "15"},
	}
)

// resetStatement empties every ledger table, children first.
const resetStatement = `TRUNCATE TABLE offers, assets, wallets, currencies, users`

// Result holds the ids created by a seeding run, in data set order.
type Result struct {
	Users      []uuid.UUID
	Currencies []uuid.UUID
	Wallets    []uuid.UUID
	Assets     []uuid.UUID
}

// Seeder inserts the demo data set through the ledger repositories.
type Seeder struct {
	repos  service.Repositories
	logger *slog.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(repos service.Repositories, logger *slog.Logger) *Seeder {
	return &Seeder{repos: repos, logger: logger}
}

// Run inserts the data set using q. When reset is set every ledger table is
// truncated first.
func (s *Seeder) Run(ctx context.Context, q repository.DBExecutor, reset bool) (*Result, error) {
	if reset {
		if _, err := q.ExecContext(ctx, resetStatement); err != nil {
			return nil, fmt.Errorf("seed: failed to reset tables: %w", err)
		}
		s.logger.Warn("Ledger tables truncated")
	}

	res := &Result{}
	for _, name := range Currencies {
		currency := domain.NewCurrency(name)
		if err := s.repos.Currencies.CreateCurrency(ctx, q, currency); err != nil {
			return nil, fmt.Errorf("seed: currency %s: %w", name, err)
		}
		res.Currencies = append(res.Currencies, currency.ID)
	}
	for _, name := range Users {
		user := domain.NewUser(name)
		if err := s.repos.Users.CreateUser(ctx, q, user); err != nil {
			return nil, fmt.Errorf("seed: user %s: %w", name, err)
		}
		res.Users = append(res.Users, user.ID)
	}
	for i, owner := range Wallets {
		wallet := domain.NewWallet(res.Users[owner], fmt.Sprintf("Wallet %d", i+1))
		if err := s.repos.Wallets.CreateWallet(ctx, q, wallet); err != nil {
			return nil, fmt.Errorf("seed: wallet %d: %w", i+1, err)
		}
		res.Wallets = append(res.Wallets, wallet.ID)
	}
	for _, a := range Assets {
		amount, err := decimal.NewFromString(a.Amount)
		if err != nil {
			return nil, fmt.Errorf("seed: asset amount %q: %w", a.Amount, err)
		}
		asset := domain.NewAsset(res.Wallets[a.Wallet], res.Currencies[a.Currency], amount)
		if err := s.repos.Assets.CreateAsset(ctx, q, asset); err != nil {
			return nil, fmt.Errorf("seed: asset: %w", err)
		}
		res.Assets = append(res.Assets, asset.ID)
	}

	s.logger.Info("Ledger seeded",
		"users", len(res.Users), "currencies", len(res.Currencies),
		"wallets", len(res.Wallets), "assets", len(res.Assets))
	return res, nil
}
