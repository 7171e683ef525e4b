// internal/domain/offer.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Offer is a listing to sell Amount of a currency from a wallet at UnitPrice.
// Listed starts true and flips to false exactly once; nothing else changes after creation.
type Offer struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     uuid.UUID       `db:"user_id" json:"userId"`
	WalletID   uuid.UUID       `db:"wallet_id" json:"walletId"`
	CurrencyID uuid.UUID       `db:"currency_id" json:"currencyId"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Listed     bool            `db:"listed" json:"-"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
	UnlistedAt *time.Time      `db:"unlisted_at" json:"-"`
}

// NewOffer creates a listed offer stamped with now.
// IDs are UUIDv7 so that id order follows creation order.
func NewOffer(userID, walletID, currencyID uuid.UUID, amount, unitPrice decimal.Decimal, now time.Time) (*Offer, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &Offer{
		ID:         id,
		UserID:     userID,
		WalletID:   walletID,
		CurrencyID: currencyID,
		Amount:     amount,
		UnitPrice:  unitPrice,
		Listed:     true,
		CreatedAt:  now,
	}, nil
}

// OfferView is the read-side projection of a listed offer, joined with its
// user and currency.
type OfferView struct {
	ID        uuid.UUID       `json:"id"`
	User      UserInfo        `json:"user"`
	WalletID  uuid.UUID       `json:"wallet"`
	Currency  CurrencyInfo    `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
}

type UserInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CurrencyInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// OfferPage is the result of listing offers. CurrentPage and LastPage are
// only meaningful when Paginated is set.
type OfferPage struct {
	Offers      []OfferView
	Paginated   bool
	CurrentPage int
	LastPage    int
}
