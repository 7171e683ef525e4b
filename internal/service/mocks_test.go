// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"offer-ledger/internal/domain"
	"offer-ledger/internal/repository"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return m.Called(ctx, dest, query, args).Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return m.Called(ctx, dest, query, args).Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController that also
// satisfies repository.DBExecutor through the embedded MockDBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	return m.Called().Error(0)
}

func (m *MockTxController) Rollback() error {
	return m.Called().Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	return m.Called(ctx, q, user).Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	return m.Called(ctx, q, wallet).Error(0)
}

func (m *MockWalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// MockCurrencyRepository is a mock implementation of repository.CurrencyRepository.
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) CreateCurrency(ctx context.Context, q repository.DBExecutor, currency *domain.Currency) error {
	return m.Called(ctx, q, currency).Error(0)
}

func (m *MockCurrencyRepository) GetCurrencyByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Currency, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// MockAssetRepository is a mock implementation of repository.AssetRepository.
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) CreateAsset(ctx context.Context, q repository.DBExecutor, asset *domain.Asset) error {
	return m.Called(ctx, q, asset).Error(0)
}

func (m *MockAssetRepository) GetAsset(ctx context.Context, q repository.DBExecutor, walletID, currencyID uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, q, walletID, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) LockAsset(ctx context.Context, q repository.DBExecutor, walletID, currencyID uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, q, walletID, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

// MockOfferRepository is a mock implementation of repository.OfferRepository.
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) CreateOffer(ctx context.Context, q repository.DBExecutor, offer *domain.Offer) error {
	return m.Called(ctx, q, offer).Error(0)
}

func (m *MockOfferRepository) GetOfferByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Offer, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) UnlistOffer(ctx context.Context, q repository.DBExecutor, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, q, id, at).Error(0)
}

func (m *MockOfferRepository) SumListedAmount(ctx context.Context, q repository.DBExecutor, walletID, currencyID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, q, walletID, currencyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOfferRepository) CountListedByUser(ctx context.Context, q repository.DBExecutor, userID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, q, userID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOfferRepository) CountListed(ctx context.Context, q repository.DBExecutor, from, to time.Time) (int64, error) {
	args := m.Called(ctx, q, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOfferRepository) ListListed(ctx context.Context, q repository.DBExecutor, from, to time.Time, limit, offset int) ([]domain.Offer, error) {
	args := m.Called(ctx, q, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}
