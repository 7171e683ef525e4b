// internal/repository/postgres/offer_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/repository"
	"offer-ledger/internal/util"
)

// OfferRepository implements repository.OfferRepository for PostgreSQL.
type OfferRepository struct{}

// NewOfferRepository creates a new OfferRepository.
func NewOfferRepository() repository.OfferRepository {
	return &OfferRepository{}
}

const offerColumns = `id, user_id, wallet_id, currency_id, amount, unit_price, listed, created_at, unlisted_at`

// CreateOffer inserts a new offer using the provided DBExecutor. A user,
// wallet or currency that disappeared after it was checked surfaces as
// util.ErrNotFound.
func (r *OfferRepository) CreateOffer(ctx context.Context, q repository.DBExecutor, offer *domain.Offer) error {
	query := `INSERT INTO offers (` + offerColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.ExecContext(ctx, query,
		offer.ID,
		offer.UserID,
		offer.WalletID,
		offer.CurrencyID,
		offer.Amount,
		offer.UnitPrice,
		offer.Listed,
		offer.CreatedAt,
		offer.UnlistedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: offer references a row that no longer exists (%s)", util.ErrNotFound, pqErr.Constraint)
		}
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// GetOfferByID retrieves an offer by its ID using the provided DBExecutor.
func (r *OfferRepository) GetOfferByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Offer, error) {
	var offer domain.Offer
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	if err := q.GetContext(ctx, &offer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer by ID %s: %w", id, err)
	}
	return &offer, nil
}

// UnlistOffer soft-deletes an offer. Repeating it is harmless.
func (r *OfferRepository) UnlistOffer(ctx context.Context, q repository.DBExecutor, id uuid.UUID, at time.Time) error {
	query := `UPDATE offers SET listed = FALSE, unlisted_at = COALESCE(unlisted_at, $1) WHERE id = $2`
	result, err := q.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to unlist offer %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after unlisting offer %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// SumListedAmount totals listed offers against a (wallet, currency) pair.
func (r *OfferRepository) SumListedAmount(ctx context.Context, q repository.DBExecutor, walletID, currencyID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM offers
		WHERE wallet_id = $1 AND currency_id = $2 AND listed`
	if err := q.GetContext(ctx, &total, query, walletID, currencyID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum listed offers for wallet %s currency %s: %w", walletID, currencyID, err)
	}
	return total, nil
}

// CountListedByUser counts a user's listed offers created in [from, to).
func (r *OfferRepository) CountListedByUser(ctx context.Context, q repository.DBExecutor, userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*)
		FROM offers
		WHERE user_id = $1 AND listed AND created_at >= $2 AND created_at < $3`
	if err := q.GetContext(ctx, &count, query, userID, from, to); err != nil {
		return 0, fmt.Errorf("failed to count listed offers for user %s: %w", userID, err)
	}
	return count, nil
}

// CountListed counts every listed offer created in [from, to).
func (r *OfferRepository) CountListed(ctx context.Context, q repository.DBExecutor, from, to time.Time) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*)
		FROM offers
		WHERE listed AND created_at >= $1 AND created_at < $2`
	if err := q.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("failed to count listed offers: %w", err)
	}
	return count, nil
}

// ListListed fetches listed offers created in [from, to), newest first.
// Offer ids are UUIDv7, so id breaks created_at ties in insertion order.
func (r *OfferRepository) ListListed(ctx context.Context, q repository.DBExecutor, from, to time.Time, limit, offset int) ([]domain.Offer, error) {
	offers := []domain.Offer{}
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE listed AND created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC, id DESC`
	args := []interface{}{from, to}
	if limit > 0 {
		query += ` LIMIT $3 OFFSET $4`
		args = append(args, limit, offset)
	}
	if err := q.SelectContext(ctx, &offers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}
