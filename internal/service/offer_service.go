// internal/service/offer_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/metrics"
	"offer-ledger/internal/repository"
	"offer-ledger/internal/util"
	"offer-ledger/pkg/db"
)

// OfferService defines the interface for offer-related business logic.
type OfferService interface {
	CreateOffer(ctx context.Context, in CreateOfferInput) (*domain.Offer, error)
	ListOffers(ctx context.Context, in ListOffersInput) (*domain.OfferPage, error)
	UnlistOffer(ctx context.Context, userID, offerID uuid.UUID) error
	GetAvailableBalance(ctx context.Context, userID, walletID, currencyID uuid.UUID) (*domain.Balance, error)
}

// CreateOfferInput carries an offer proposal from an authenticated caller.
type CreateOfferInput struct {
	UserID     uuid.UUID
	WalletID   uuid.UUID
	CurrencyID uuid.UUID
	Amount     decimal.Decimal
	UnitPrice  decimal.Decimal
}

func (in CreateOfferInput) validate() error {
	if in.UserID == uuid.Nil || in.WalletID == uuid.Nil || in.CurrencyID == uuid.Nil {
		return fmt.Errorf("%w: missing id", util.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", util.ErrInvalidInput)
	}
	if !in.UnitPrice.IsPositive() {
		return fmt.Errorf("%w: unit price must be positive", util.ErrInvalidInput)
	}
	return nil
}

// ListOffersInput selects scroll or paginated listing. Zero Page and Limit
// mean page 1 and the configured default page size.
type ListOffersInput struct {
	UserID    uuid.UUID // reserved; listings are not filtered by caller
	Paginated bool
	Page      int
	Limit     int
}

// Repositories groups the ledger store collaborators.
type Repositories struct {
	Users      repository.UserRepository
	Wallets    repository.WalletRepository
	Currencies repository.CurrencyRepository
	Assets     repository.AssetRepository
	Offers     repository.OfferRepository
}

// TxFuncs injects transaction handling, as used by the serialized admission path.
type TxFuncs struct {
	Beginner db.DBTxBeginner
	Begin    db.BeginTxFunc
	Commit   db.CommitTxFunc
	Rollback db.RollbackTxFunc
}

// Options tunes the offer engine.
type Options struct {
	MaxOffersPerDay int
	DefaultPageSize int
	// SerializeAdmission runs each admission in a transaction holding a row
	// lock on the asset, so concurrent offers on one (wallet, currency)
	// cannot over-commit it. Off by default.
	SerializeAdmission bool
	// LookupConcurrency bounds parallel user/currency lookups while
	// assembling a listing.
	LookupConcurrency int
}

// offerService implements the OfferService interface.
type offerService struct {
	dbExecutor   repository.DBExecutor
	userRepo     repository.UserRepository
	walletRepo   repository.WalletRepository
	currencyRepo repository.CurrencyRepository
	offerRepo    repository.OfferRepository
	balances     *BalanceCalculator
	tx           TxFuncs
	clock        util.Clock
	opts         Options
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// NewOfferService creates a new instance of OfferService.
func NewOfferService(
	dbExecutor repository.DBExecutor,
	repos Repositories,
	tx TxFuncs,
	clock util.Clock,
	opts Options,
	logger *slog.Logger,
	m *metrics.Metrics,
) OfferService {
	if opts.MaxOffersPerDay <= 0 {
		opts.MaxOffersPerDay = 5
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 10
	}
	if opts.LookupConcurrency <= 0 {
		opts.LookupConcurrency = 8
	}
	if logger == nil {
		logger = util.GetLogger()
	}
	return &offerService{
		dbExecutor:   dbExecutor,
		userRepo:     repos.Users,
		walletRepo:   repos.Wallets,
		currencyRepo: repos.Currencies,
		offerRepo:    repos.Offers,
		balances:     NewBalanceCalculator(repos.Assets, repos.Offers),
		tx:           tx,
		clock:        clock,
		opts:         opts,
		logger:       logger,
		metrics:      m,
	}
}

// CreateOffer admits a new offer. Checks run in a fixed order and stop at the
// first failure: references exist, caller owns the wallet, balance covers the
// amount, caller is under the daily limit. Nothing is written unless all pass.
func (s *offerService) CreateOffer(ctx context.Context, in CreateOfferInput) (*domain.Offer, error) {
	var (
		offer *domain.Offer
		err   error
	)
	if err = in.validate(); err == nil {
		if s.opts.SerializeAdmission {
			offer, err = s.createOfferSerialized(ctx, in)
		} else {
			offer, err = s.admit(ctx, s.dbExecutor, in, false)
		}
	}
	if err != nil {
		reason := rejectionReason(err)
		s.metrics.OfferRejected(reason)
		if reason == metrics.ReasonInternal {
			return nil, err
		}
		s.logger.Info("Offer rejected",
			"user_id", in.UserID, "wallet_id", in.WalletID, "currency_id", in.CurrencyID,
			"amount", in.Amount, "reason", err.Error())
		return nil, err
	}

	s.metrics.OfferCreated()
	s.logger.Info("Offer created",
		"offer_id", offer.ID, "user_id", offer.UserID, "wallet_id", offer.WalletID,
		"currency_id", offer.CurrencyID, "amount", offer.Amount)
	return offer, nil
}

func (s *offerService) createOfferSerialized(ctx context.Context, in CreateOfferInput) (*domain.Offer, error) {
	txController, err := s.tx.Begin(ctx, s.tx.Beginner)
	if err != nil {
		return nil, fmt.Errorf("create offer: failed to begin transaction: %w", err)
	}
	defer s.tx.Rollback(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create offer: transaction controller does not implement DBExecutor")
	}

	offer, err := s.admit(ctx, txExecutor, in, true)
	if err != nil {
		return nil, err
	}

	if err := s.tx.Commit(txController); err != nil {
		return nil, fmt.Errorf("create offer: failed to commit transaction: %w", err)
	}
	return offer, nil
}

func (s *offerService) admit(ctx context.Context, q repository.DBExecutor, in CreateOfferInput, lock bool) (*domain.Offer, error) {
	now := s.clock.Now()

	wallet, err := s.walletRepo.GetWalletByID(ctx, q, in.WalletID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("create offer: failed to get wallet %s: %w", in.WalletID, err)
	}
	if _, err := s.currencyRepo.GetCurrencyByID(ctx, q, in.CurrencyID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("create offer: failed to get currency %s: %w", in.CurrencyID, err)
	}

	if wallet.UserID != in.UserID {
		return nil, util.ErrWalletNotOwned
	}

	// A missing asset reads as zero balance so asset existence is not revealed.
	balance, err := s.balances.Available(ctx, q, in.WalletID, in.CurrencyID, lock)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInsufficientBalance
		}
		return nil, fmt.Errorf("create offer: %w", err)
	}
	if in.Amount.GreaterThan(balance.Available) {
		return nil, util.ErrInsufficientBalance
	}

	today := util.DayWindowAt(now)
	offersToday, err := s.offerRepo.CountListedByUser(ctx, q, in.UserID, today.Start, today.End)
	if err != nil {
		return nil, fmt.Errorf("create offer: failed to count today's offers: %w", err)
	}
	if offersToday >= int64(s.opts.MaxOffersPerDay) {
		return nil, util.ErrDailyOfferLimit
	}

	offer, err := domain.NewOffer(in.UserID, in.WalletID, in.CurrencyID, in.Amount, in.UnitPrice, now)
	if err != nil {
		return nil, fmt.Errorf("create offer: failed to generate id: %w", err)
	}
	if err := s.offerRepo.CreateOffer(ctx, q, offer); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return offer, nil
}

// ListOffers returns today's listed offers, newest first, either all of them
// or one page.
func (s *offerService) ListOffers(ctx context.Context, in ListOffersInput) (*domain.OfferPage, error) {
	started := time.Now()
	today := util.DayWindowAt(s.clock.Now())

	if !in.Paginated {
		defer func() { s.metrics.ObserveListing("scroll", time.Since(started).Seconds()) }()

		offers, err := s.offerRepo.ListListed(ctx, s.dbExecutor, today.Start, today.End, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("list offers: %w", err)
		}
		views, err := s.project(ctx, offers)
		if err != nil {
			return nil, err
		}
		return &domain.OfferPage{Offers: views}, nil
	}
	defer func() { s.metrics.ObserveListing("paginated", time.Since(started).Seconds()) }()

	page, limit := in.Page, in.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = s.opts.DefaultPageSize
	}
	if page < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: page and limit must be positive", util.ErrInvalidInput)
	}

	total, err := s.offerRepo.CountListed(ctx, s.dbExecutor, today.Start, today.End)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	pagination := domain.NewPagination(page, limit, total)

	offers := []domain.Offer{}
	if !pagination.Beyond() {
		offers, err = s.offerRepo.ListListed(ctx, s.dbExecutor, today.Start, today.End, limit, pagination.Skip)
		if err != nil {
			return nil, fmt.Errorf("list offers: %w", err)
		}
	}
	views, err := s.project(ctx, offers)
	if err != nil {
		return nil, err
	}

	return &domain.OfferPage{
		Offers:      views,
		Paginated:   true,
		CurrentPage: page,
		LastPage:    pagination.LastPage,
	}, nil
}

// UnlistOffer soft-deletes an offer owned by userID. Unlisting an offer that
// is already unlisted succeeds and changes nothing.
func (s *offerService) UnlistOffer(ctx context.Context, userID, offerID uuid.UUID) error {
	if userID == uuid.Nil || offerID == uuid.Nil {
		return fmt.Errorf("%w: missing id", util.ErrInvalidInput)
	}

	offer, err := s.offerRepo.GetOfferByID(ctx, s.dbExecutor, offerID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrOfferNotFound
		}
		return fmt.Errorf("unlist offer: failed to get offer %s: %w", offerID, err)
	}

	if offer.UserID != userID {
		return util.ErrOfferNotOwned
	}

	if err := s.offerRepo.UnlistOffer(ctx, s.dbExecutor, offerID, s.clock.Now()); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrOfferNotFound
		}
		return fmt.Errorf("unlist offer: %w", err)
	}

	s.metrics.OfferUnlisted()
	s.logger.Info("Offer unlisted", "offer_id", offerID, "user_id", userID, "was_listed", offer.Listed)
	return nil
}

// GetAvailableBalance reports the balance of one of the caller's assets.
func (s *offerService) GetAvailableBalance(ctx context.Context, userID, walletID, currencyID uuid.UUID) (*domain.Balance, error) {
	wallet, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, walletID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get balance: failed to get wallet %s: %w", walletID, err)
	}
	if _, err := s.currencyRepo.GetCurrencyByID(ctx, s.dbExecutor, currencyID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("get balance: failed to get currency %s: %w", currencyID, err)
	}
	if wallet.UserID != userID {
		return nil, util.ErrWalletNotOwned
	}

	balance, err := s.balances.Available(ctx, s.dbExecutor, walletID, currencyID, false)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

func rejectionReason(err error) string {
	switch {
	case util.IsError(err, util.ErrInvalidInput):
		return metrics.ReasonInvalidInput
	case util.IsError(err, util.ErrNotFound):
		return metrics.ReasonNotFound
	case util.IsError(err, util.ErrUnauthorized):
		return metrics.ReasonUnauthorized
	case util.IsError(err, util.ErrInsufficientBalance):
		return metrics.ReasonInsufficientBalance
	case util.IsError(err, util.ErrDailyOfferLimit):
		return metrics.ReasonDailyLimit
	default:
		return metrics.ReasonInternal
	}
}
