// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "offer-ledger/internal/api"
	"offer-ledger/internal/api/handler"
	"offer-ledger/internal/config"
	"offer-ledger/internal/metrics"
	"offer-ledger/internal/repository"
	"offer-ledger/internal/repository/cache"
	"offer-ledger/internal/repository/postgres"
	"offer-ledger/internal/seed"
	"offer-ledger/internal/service"
	"offer-ledger/internal/util"
	"offer-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	DB      *sqlx.DB
	Metrics *metrics.Metrics

	Repositories service.Repositories
	OfferService service.OfferService

	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Connect loads configuration, sets up logging and opens the database.
// It is all the migrate and seed commands need.
func (app *Application) Connect(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.Repositories = service.Repositories{
		Users:      postgres.NewUserRepository(),
		Wallets:    postgres.NewWalletRepository(),
		Currencies: postgres.NewCurrencyRepository(),
		Assets:     postgres.NewAssetRepository(),
		Offers:     postgres.NewOfferRepository(),
	}
	return nil
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	if err := app.Connect(ctx); err != nil {
		return err
	}
	cfg := app.Config

	app.Metrics = metrics.New()

	// Users and currencies are immutable, so their lookups are cached.
	users, err := cache.NewUserRepository(app.Repositories.Users, cfg.Offers.ReferenceCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create user cache: %w", err)
	}
	currencies, err := cache.NewCurrencyRepository(app.Repositories.Currencies, cfg.Offers.ReferenceCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create currency cache: %w", err)
	}
	app.Metrics.RegisterCache("users", func() (uint64, uint64) {
		stats := users.Stats()
		return stats.Hits, stats.Misses
	})
	app.Metrics.RegisterCache("currencies", func() (uint64, uint64) {
		stats := currencies.Stats()
		return stats.Hits, stats.Misses
	})
	repos := app.Repositories
	repos.Users = users
	repos.Currencies = currencies
	app.Logger.Info("Repositories initialized.", "reference_cache_size", cfg.Offers.ReferenceCacheSize)

	app.OfferService = service.NewOfferService(
		app.DB,
		repos,
		service.TxFuncs{
			Beginner: app.DB,
			Begin:    db.BeginTx,
			Commit:   db.CommitTx,
			Rollback: db.RollbackTx,
		},
		util.NewSystemClock(cfg.Offers.Location),
		service.Options{
			MaxOffersPerDay:    cfg.Offers.MaxOffersPerDay,
			DefaultPageSize:    cfg.Offers.DefaultPageSize,
			SerializeAdmission: cfg.Offers.SerializeAdmission,
		},
		app.Logger,
		app.Metrics,
	)
	app.Logger.Info("Services initialized.",
		"max_offers_per_day", cfg.Offers.MaxOffersPerDay,
		"timezone", cfg.Offers.Location.String(),
		"serialize_admission", cfg.Offers.SerializeAdmission)

	offerHandler := handler.NewOfferHandler(app.OfferService, app.Logger)
	app.HTTPHandler = router.NewRouter(offerHandler, app.Metrics.Handler())
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Migrate applies the database schema.
func (app *Application) Migrate(ctx context.Context) error {
	if err := db.Migrate(ctx, app.DB); err != nil {
		return err
	}
	app.Logger.Info("Database schema applied.")
	return nil
}

// Seed inserts the demo data set in a single transaction.
func (app *Application) Seed(ctx context.Context, reset bool) (*seed.Result, error) {
	tx, err := db.BeginTx(ctx, app.DB)
	if err != nil {
		return nil, fmt.Errorf("seed: failed to begin transaction: %w", err)
	}
	defer db.RollbackTx(tx)

	q, ok := tx.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("seed: transaction controller does not implement DBExecutor")
	}
	res, err := seed.NewSeeder(app.Repositories, app.Logger).Run(ctx, q, reset)
	if err != nil {
		return nil, err
	}
	if err := db.CommitTx(tx); err != nil {
		return nil, fmt.Errorf("seed: failed to commit transaction: %w", err)
	}
	return res, nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
