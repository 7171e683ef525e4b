// internal/repository/currency_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"offer-ledger/internal/domain"
)

// CurrencyRepository defines the interface for currency reference data.
type CurrencyRepository interface {
	CreateCurrency(ctx context.Context, q DBExecutor, currency *domain.Currency) error
	// GetCurrencyByID returns util.ErrNotFound when absent.
	GetCurrencyByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Currency, error)
}
