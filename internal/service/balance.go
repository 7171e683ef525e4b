// internal/service/balance.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/repository"
	"offer-ledger/internal/util"
)

// BalanceCalculator derives an asset's available balance: the recorded amount
// minus every listed offer against the same (wallet, currency), whatever day
// the offer was created. Only unlisting releases an offer's deduction.
type BalanceCalculator struct {
	assetRepo repository.AssetRepository
	offerRepo repository.OfferRepository
}

// NewBalanceCalculator creates a new BalanceCalculator.
func NewBalanceCalculator(assetRepo repository.AssetRepository, offerRepo repository.OfferRepository) *BalanceCalculator {
	return &BalanceCalculator{assetRepo: assetRepo, offerRepo: offerRepo}
}

// Available computes the balance of (walletID, currencyID). It returns
// util.ErrAssetNotFound when the wallet holds no such asset. With lock set
// the asset row is locked for the rest of q's transaction.
func (b *BalanceCalculator) Available(ctx context.Context, q repository.DBExecutor, walletID, currencyID uuid.UUID, lock bool) (*domain.Balance, error) {
	getAsset := b.assetRepo.GetAsset
	if lock {
		getAsset = b.assetRepo.LockAsset
	}

	asset, err := getAsset(ctx, q, walletID, currencyID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrAssetNotFound
		}
		return nil, fmt.Errorf("balance: failed to get asset: %w", err)
	}

	offered, err := b.offerRepo.SumListedAmount(ctx, q, walletID, currencyID)
	if err != nil {
		return nil, fmt.Errorf("balance: failed to sum listed offers: %w", err)
	}

	return &domain.Balance{
		WalletID:   walletID,
		CurrencyID: currencyID,
		Amount:     asset.Amount,
		Offered:    offered,
		Available:  asset.Amount.Sub(offered),
	}, nil
}
