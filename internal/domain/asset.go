// internal/domain/asset.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset is a wallet's recorded holding of one currency.
// At most one asset exists per (wallet, currency).
type Asset struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	WalletID   uuid.UUID       `db:"wallet_id" json:"walletId"`
	CurrencyID uuid.UUID       `db:"currency_id" json:"currencyId"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt  time.Time       `db:"created_at" json:"-"`
}

// NewAsset creates a new Asset instance.
func NewAsset(walletID, currencyID uuid.UUID, amount decimal.Decimal) *Asset {
	return &Asset{
		ID:         uuid.New(),
		WalletID:   walletID,
		CurrencyID: currencyID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}
}

// Balance is the accounting view of an asset.
type Balance struct {
	WalletID   uuid.UUID       `json:"walletId"`
	CurrencyID uuid.UUID       `json:"currencyId"`
	Amount     decimal.Decimal `json:"amount"`
	Offered    decimal.Decimal `json:"offered"`
	Available  decimal.Decimal `json:"available"`
}
