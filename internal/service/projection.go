// internal/service/projection.go
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/util"
)

// project joins offers with their users and currencies. Each distinct id is
// looked up once; lookups run concurrently and must all finish before any
// view is built.
func (s *offerService) project(ctx context.Context, offers []domain.Offer) ([]domain.OfferView, error) {
	views := make([]domain.OfferView, 0, len(offers))
	if len(offers) == 0 {
		return views, nil
	}

	userIDs := distinct(offers, func(o domain.Offer) uuid.UUID { return o.UserID })
	currencyIDs := distinct(offers, func(o domain.Offer) uuid.UUID { return o.CurrencyID })

	var (
		mu         sync.Mutex
		users      = make(map[uuid.UUID]*domain.User, len(userIDs))
		currencies = make(map[uuid.UUID]*domain.Currency, len(currencyIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.LookupConcurrency)

	for _, id := range userIDs {
		id := id
		g.Go(func() error {
			user, err := s.userRepo.GetUserByID(gctx, s.dbExecutor, id)
			if err != nil {
				if util.IsError(err, util.ErrNotFound) {
					return fmt.Errorf("list offers: offer references unknown user %s", id)
				}
				return fmt.Errorf("list offers: failed to get user %s: %w", id, err)
			}
			mu.Lock()
			users[id] = user
			mu.Unlock()
			return nil
		})
	}
	for _, id := range currencyIDs {
		id := id
		g.Go(func() error {
			currency, err := s.currencyRepo.GetCurrencyByID(gctx, s.dbExecutor, id)
			if err != nil {
				if util.IsError(err, util.ErrNotFound) {
					return fmt.Errorf("list offers: offer references unknown currency %s", id)
				}
				return fmt.Errorf("list offers: failed to get currency %s: %w", id, err)
			}
			mu.Lock()
			currencies[id] = currency
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, offer := range offers {
		user := users[offer.UserID]
		currency := currencies[offer.CurrencyID]
		views = append(views, domain.OfferView{
			ID:        offer.ID,
			User:      domain.UserInfo{ID: user.ID, Name: user.Name},
			WalletID:  offer.WalletID,
			Currency:  domain.CurrencyInfo{ID: currency.ID, Name: currency.Name},
			Amount:    offer.Amount,
			UnitPrice: offer.UnitPrice,
			CreatedAt: offer.CreatedAt,
		})
	}
	return views, nil
}

func distinct(offers []domain.Offer, key func(domain.Offer) uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(offers))
	ids := make([]uuid.UUID, 0, len(offers))
	for _, offer := range offers {
		id := key(offer)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
