// internal/repository/postgres/currency_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/repository"
	"offer-ledger/internal/util"
)

// CurrencyRepository implements repository.CurrencyRepository for PostgreSQL.
type CurrencyRepository struct{}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository() repository.CurrencyRepository {
	return &CurrencyRepository{}
}

func (r *CurrencyRepository) CreateCurrency(ctx context.Context, q repository.DBExecutor, currency *domain.Currency) error {
	query := `INSERT INTO currencies (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := q.ExecContext(ctx, query, currency.ID, currency.Name, currency.CreatedAt); err != nil {
		return fmt.Errorf("failed to create currency: %w", err)
	}
	return nil
}

func (r *CurrencyRepository) GetCurrencyByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Currency, error) {
	var currency domain.Currency
	query := `SELECT id, name, created_at FROM currencies WHERE id = $1`
	if err := q.GetContext(ctx, &currency, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get currency by ID %s: %w", id, err)
	}
	return &currency, nil
}
