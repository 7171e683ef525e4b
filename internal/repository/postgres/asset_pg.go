// internal/repository/postgres/asset_pg.go
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

// AssetRepository implements repository.AssetRepository for PostgreSQL.
type AssetRepository struct{}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository() repository.AssetRepository {
	return &AssetRepository{}
}

const selectAsset = `SELECT id, wallet_id, currency_id, amount, created_at
	FROM assets
	WHERE wallet_id = $1 AND currency_id = $2
	ORDER BY created_at
	LIMIT 1`

func (r *AssetRepository) CreateAsset(ctx context.Context, q repository.DBExecutor, asset *domain.Asset) error {
	query := `INSERT INTO assets (id, wallet_id, currency_id, amount, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := q.ExecContext(ctx, query, asset.ID, asset.WalletID, asset.CurrencyID, asset.Amount, asset.CreatedAt); err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) GetAsset(ctx context.Context, q repository.DBExecutor, walletID, currencyID uuid.UUID) (*domain.Asset, error) {
	return r.getAsset(ctx, q, selectAsset, walletID, currencyID)
}

func (r *AssetRepository) LockAsset(ctx context.Context, q repository.DBExecutor, walletID, currencyID uuid.UUID) (*domain.Asset, error) {
	return r.getAsset(ctx, q, selectAsset+` FOR UPDATE`, walletID, currencyID)
}

func (r *AssetRepository) getAsset(ctx context.Context, q repository.DBExecutor, query string, walletID, currencyID uuid.UUID) (*domain.Asset, error) {
	var asset domain.Asset
	if err := q.GetContext(ctx, &asset, query, walletID, currencyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset for wallet %s currency %s: %w", walletID, currencyID, err)
	}
	return &asset, nil
}
