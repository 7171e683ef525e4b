// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"offer-ledger/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	LogLevel   string
	DB         db.Config
	Offers     OfferConfig
}

// OfferConfig holds the tunables of the offer engine.
type OfferConfig struct {
	MaxOffersPerDay    int
	DefaultPageSize    int
	Location           *time.Location
	SerializeAdmission bool
	ReferenceCacheSize int
}

// Defaults for the offer engine.
const (
	DefaultMaxOffersPerDay    = 5
	DefaultPageSize           = 10
	DefaultReferenceCacheSize = 1024
)

// LoadConfig loads configuration from environment variables, falling back to defaults.
// It returns an error if any variable is present but invalid.
func LoadConfig() (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	dbPort := v.GetInt("db_port")
	if dbPort <= 0 {
		return nil, fmt.Errorf("invalid DB_PORT: %q", v.GetString("db_port"))
	}

	maxPerDay := v.GetInt("max_offers_per_day")
	if maxPerDay <= 0 {
		return nil, fmt.Errorf("invalid MAX_OFFERS_PER_DAY: %q", v.GetString("max_offers_per_day"))
	}
	pageSize := v.GetInt("default_page_size")
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %q", v.GetString("default_page_size"))
	}
	cacheSize := v.GetInt("reference_cache_size")
	if cacheSize <= 0 {
		return nil, fmt.Errorf("invalid REFERENCE_CACHE_SIZE: %q", v.GetString("reference_cache_size"))
	}

	loc, err := time.LoadLocation(v.GetString("ledger_timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE: %w", err)
	}

	return &AppConfig{
		ServerPort: v.GetString("server_port"),
		LogLevel:   v.GetString("log_level"),
		DB: db.Config{
			Host:     v.GetString("db_host"),
			Port:     dbPort,
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Offers: OfferConfig{
			MaxOffersPerDay:    maxPerDay,
			DefaultPageSize:    pageSize,
			Location:           loc,
			SerializeAdmission: v.GetBool("serialize_admission"),
			ReferenceCacheSize: cacheSize,
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "info")

	// Local development defaults
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "user")
	v.SetDefault("db_password", "password")
	v.SetDefault("db_name", "offerdb")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("max_offers_per_day", DefaultMaxOffersPerDay)
	v.SetDefault("default_page_size", DefaultPageSize)
	v.SetDefault("ledger_timezone", "UTC")
	v.SetDefault("serialize_admission", false)
	v.SetDefault("reference_cache_size", DefaultReferenceCacheSize)
}
