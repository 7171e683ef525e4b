// internal/repository/offer_repo.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"offer-ledger/internal/domain"
)

// OfferRepository defines the interface for offer data operations.
// Time ranges are half-open: [from, to).
type OfferRepository interface {
	// CreateOffer inserts a new offer.
	CreateOffer(ctx context.Context, q DBExecutor, offer *domain.Offer) error
	// GetOfferByID retrieves an offer, listed or not. Returns util.ErrNotFound when absent.
	GetOfferByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Offer, error)
	// UnlistOffer clears the listed flag. unlisted_at is only set the first time.
	UnlistOffer(ctx context.Context, q DBExecutor, id uuid.UUID, at time.Time) error

	// SumListedAmount totals the amounts of all listed offers against (wallet, currency), any day.
	SumListedAmount(ctx context.Context, q DBExecutor, walletID, currencyID uuid.UUID) (decimal.Decimal, error)
	// CountListedByUser counts a user's listed offers created within [from, to).
	CountListedByUser(ctx context.Context, q DBExecutor, userID uuid.UUID, from, to time.Time) (int64, error)
	// CountListed counts all listed offers created within [from, to).
	CountListed(ctx context.Context, q DBExecutor, from, to time.Time) (int64, error)
	// ListListed returns listed offers created within [from, to), newest first.
	// A limit of zero returns every match.
	ListListed(ctx context.Context, q DBExecutor, from, to time.Time, limit, offset int) ([]domain.Offer, error)
}
