// internal/repository/asset_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"offer-ledger/internal/domain"
)

// AssetRepository defines the interface for asset data operations.
type AssetRepository interface {
	CreateAsset(ctx context.Context, q DBExecutor, asset *domain.Asset) error
	// GetAsset retrieves the asset a wallet holds in a currency. Returns util.ErrNotFound when absent.
	GetAsset(ctx context.Context, q DBExecutor, walletID, currencyID uuid.UUID) (*domain.Asset, error)
	// LockAsset is GetAsset with a row lock held until q's transaction ends.
	// q must be a transaction.
	LockAsset(ctx context.Context, q DBExecutor, walletID, currencyID uuid.UUID) (*domain.Asset, error)
}
