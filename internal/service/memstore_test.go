// internal/service/memstore_test.go
package service

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/repository"
	"offer-ledger/internal/util"
)

// memStore is an in-memory ledger store used to exercise the service end to
// end. It implements every repository interface and ignores the executor.
type memStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]domain.User
	wallets    map[uuid.UUID]domain.Wallet
	currencies map[uuid.UUID]domain.Currency
	assets     []domain.Asset
	offers     map[uuid.UUID]domain.Offer
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[uuid.UUID]domain.User),
		wallets:    make(map[uuid.UUID]domain.Wallet),
		currencies: make(map[uuid.UUID]domain.Currency),
		offers:     make(map[uuid.UUID]domain.Offer),
	}
}

func (s *memStore) repositories() Repositories {
	return Repositories{
		Users:      memUsers{s},
		Wallets:    memWallets{s},
		Currencies: memCurrencies{s},
		Assets:     memAssets{s},
		Offers:     memOffers{s},
	}
}

type memUsers struct{ *memStore }

func (s memUsers) CreateUser(_ context.Context, _ repository.DBExecutor, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s memUsers) GetUserByID(_ context.Context, _ repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &user, nil
}

type memWallets struct{ *memStore }

func (s memWallets) CreateWallet(_ context.Context, _ repository.DBExecutor, wallet *domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[wallet.ID] = *wallet
	return nil
}

func (s memWallets) GetWalletByID(_ context.Context, _ repository.DBExecutor, id uuid.UUID) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet, ok := s.wallets[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &wallet, nil
}

type memCurrencies struct{ *memStore }

func (s memCurrencies) CreateCurrency(_ context.Context, _ repository.DBExecutor, currency *domain.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currencies[currency.ID] = *currency
	return nil
}

func (s memCurrencies) GetCurrencyByID(_ context.Context, _ repository.DBExecutor, id uuid.UUID) (*domain.Currency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	currency, ok := s.currencies[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &currency, nil
}

type memAssets struct{ *memStore }

func (s memAssets) CreateAsset(_ context.Context, _ repository.DBExecutor, asset *domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append(s.assets, *asset)
	return nil
}

func (s memAssets) GetAsset(_ context.Context, _ repository.DBExecutor, walletID, currencyID uuid.UUID) (*domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, asset := range s.assets {
		if asset.WalletID == walletID && asset.CurrencyID == currencyID {
			a := asset
			return &a, nil
		}
	}
	return nil, util.ErrNotFound
}

func (s memAssets) LockAsset(ctx context.Context, q repository.DBExecutor, walletID, currencyID uuid.UUID) (*domain.Asset, error) {
	return s.GetAsset(ctx, q, walletID, currencyID)
}

type memOffers struct{ *memStore }

func (s memOffers) CreateOffer(_ context.Context, _ repository.DBExecutor, offer *domain.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[offer.ID] = *offer
	return nil
}

func (s memOffers) GetOfferByID(_ context.Context, _ repository.DBExecutor, id uuid.UUID) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offer, ok := s.offers[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &offer, nil
}

func (s memOffers) UnlistOffer(_ context.Context, _ repository.DBExecutor, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	offer, ok := s.offers[id]
	if !ok {
		return util.ErrNotFound
	}
	offer.Listed = false
	if offer.UnlistedAt == nil {
		offer.UnlistedAt = &at
	}
	s.offers[id] = offer
	return nil
}

func (s memOffers) SumListedAmount(_ context.Context, _ repository.DBExecutor, walletID, currencyID uuid.UUID) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, offer := range s.offers {
		if offer.Listed && offer.WalletID == walletID && offer.CurrencyID == currencyID {
			total = total.Add(offer.Amount)
		}
	}
	return total, nil
}

func (s memOffers) CountListedByUser(_ context.Context, _ repository.DBExecutor, userID uuid.UUID, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, offer := range s.offers {
		if offer.Listed && offer.UserID == userID && inRange(offer.CreatedAt, from, to) {
			count++
		}
	}
	return count, nil
}

func (s memOffers) CountListed(_ context.Context, _ repository.DBExecutor, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, offer := range s.offers {
		if offer.Listed && inRange(offer.CreatedAt, from, to) {
			count++
		}
	}
	return count, nil
}

func (s memOffers) ListListed(_ context.Context, _ repository.DBExecutor, from, to time.Time, limit, offset int) ([]domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offers := []domain.Offer{}
	for _, offer := range s.offers {
		if offer.Listed && inRange(offer.CreatedAt, from, to) {
			offers = append(offers, offer)
		}
	}
	sort.Slice(offers, func(i, j int) bool {
		if !offers[i].CreatedAt.Equal(offers[j].CreatedAt) {
			return offers[i].CreatedAt.After(offers[j].CreatedAt)
		}
		return bytes.Compare(offers[i].ID[:], offers[j].ID[:]) > 0
	})
	if limit == 0 {
		return offers, nil
	}
	if offset >= len(offers) {
		return []domain.Offer{}, nil
	}
	end := offset + limit
	if end > len(offers) {
		end = len(offers)
	}
	return offers[offset:end], nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
