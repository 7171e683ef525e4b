// Package cache decorates reference-data repositories with an in-process LRU.
// Users and currencies never change once created, so entries are never invalidated;
// misses (including not-found) always fall through to the wrapped repository.
package cache

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/repository"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64
	Misses uint64
}

type counters struct {
	hits   atomic.Uint64
	misses atomic.Uint64
}

func (c *counters) stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// UserRepository caches GetUserByID results.
type UserRepository struct {
	repository.UserRepository
	users *lru.Cache[uuid.UUID, domain.User]
	counters
}

// NewUserRepository wraps next with an LRU of the given size.
func NewUserRepository(next repository.UserRepository, size int) (*UserRepository, error) {
	users, err := lru.New[uuid.UUID, domain.User](size)
	if err != nil {
		return nil, err
	}
	return &UserRepository{UserRepository: next, users: users}, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	if user, ok := r.users.Get(id); ok {
		r.hits.Add(1)
		return &user, nil
	}
	r.misses.Add(1)

	user, err := r.UserRepository.GetUserByID(ctx, q, id)
	if err != nil {
		return nil, err
	}
	r.users.Add(id, *user)
	return user, nil
}

// Stats returns hit and miss counts since creation.
func (r *UserRepository) Stats() Stats { return r.stats() }

// CurrencyRepository caches GetCurrencyByID results.
type CurrencyRepository struct {
	repository.CurrencyRepository
	currencies *lru.Cache[uuid.UUID, domain.Currency]
	counters
}

// NewCurrencyRepository wraps next with an LRU of the given size.
func NewCurrencyRepository(next repository.CurrencyRepository, size int) (*CurrencyRepository, error) {
	currencies, err := lru.New[uuid.UUID, domain.Currency](size)
	if err != nil {
		return nil, err
	}
	return &CurrencyRepository{CurrencyRepository: next, currencies: currencies}, nil
}

func (r *CurrencyRepository) GetCurrencyByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Currency, error) {
	if currency, ok := r.currencies.Get(id); ok {
		r.hits.Add(1)
		return &currency, nil
	}
	r.misses.Add(1)

	currency, err := r.CurrencyRepository.GetCurrencyByID(ctx, q, id)
	if err != nil {
		return nil, err
	}
	r.currencies.Add(id, *currency)
	return currency, nil
}

// Stats returns hit and miss counts since creation.
func (r *CurrencyRepository) Stats() Stats { return r.stats() }
