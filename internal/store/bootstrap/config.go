package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/Lexv0lk/vending-machine/internal/pkg/database"
	"github.com/Lexv0lk/vending-machine/internal/pkg/env"
	"github.com/joho/godotenv"
)

const (
	defaultSessionTTL          = 12 * time.Hour
	defaultSyncInterval        = 2 * time.Second
	defaultLoginAttemptsLimit  = 5
	defaultLoginAttemptsWindow = 15 * time.Minute
)

type StoreConfig struct {
	HttpPort   string
	DbSettings database.PostgresSettings
	JwtSecret  string

	SessionTTL   time.Duration
	SyncInterval time.Duration

	// Optional. Empty disables ledger events.
	NatsURL string
	// Optional. Empty disables login throttling.
	RedisAddr string

	LoginAttemptsLimit  int
	LoginAttemptsWindow time.Duration
}

func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		HttpPort: ":8080",
		DbSettings: database.PostgresSettings{
			User:       "admin",
			Password:   "password",
			Host:       "localhost",
			Port:       "5432",
			DBName:     "vending_machine_db",
			SSlEnabled: false,
		},
		SessionTTL:          defaultSessionTTL,
		SyncInterval:        defaultSyncInterval,
		LoginAttemptsLimit:  defaultLoginAttemptsLimit,
		LoginAttemptsWindow: defaultLoginAttemptsWindow,
	}
}

// LoadStoreConfig reads an optional .env file and then overrides the defaults from the environment.
func LoadStoreConfig() (StoreConfig, error) {
	_ = godotenv.Load()

	cfg := DefaultStoreConfig()

	env.TrySetFromEnv(env.EnvHttpPort, &cfg.HttpPort)
	env.TrySetFromEnv(env.EnvDatabaseHost, &cfg.DbSettings.Host)
	env.TrySetFromEnv(env.EnvDatabasePort, &cfg.DbSettings.Port)
	env.TrySetFromEnv(env.EnvDatabaseUser, &cfg.DbSettings.User)
	env.TrySetFromEnv(env.EnvDatabasePassword, &cfg.DbSettings.Password)
	env.TrySetFromEnv(env.EnvDatabaseName, &cfg.DbSettings.DBName)
	env.TrySetFromEnv(env.EnvJwtSecret, &cfg.JwtSecret)
	env.TrySetFromEnv(env.EnvNatsURL, &cfg.NatsURL)
	env.TrySetFromEnv(env.EnvRedisAddr, &cfg.RedisAddr)

	if err := env.TrySetBoolFromEnv(env.EnvDatabaseSSLEnabled, &cfg.DbSettings.SSlEnabled); err != nil {
		return StoreConfig{}, fmt.Errorf("invalid %s: %w", env.EnvDatabaseSSLEnabled, err)
	}
	if err := env.TrySetDurationFromEnv(env.EnvSessionTTL, &cfg.SessionTTL); err != nil {
		return StoreConfig{}, fmt.Errorf("invalid %s: %w", env.EnvSessionTTL, err)
	}
	if err := env.TrySetDurationFromEnv(env.EnvSyncInterval, &cfg.SyncInterval); err != nil {
		return StoreConfig{}, fmt.Errorf("invalid %s: %w", env.EnvSyncInterval, err)
	}
	if err := env.TrySetIntFromEnv(env.EnvLoginAttemptsLimit, &cfg.LoginAttemptsLimit); err != nil {
		return StoreConfig{}, fmt.Errorf("invalid %s: %w", env.EnvLoginAttemptsLimit, err)
	}
	if err := env.TrySetDurationFromEnv(env.EnvLoginAttemptsWindow, &cfg.LoginAttemptsWindow); err != nil {
		return StoreConfig{}, fmt.Errorf("invalid %s: %w", env.EnvLoginAttemptsWindow, err)
	}

	if err := cfg.Validate(); err != nil {
		return StoreConfig{}, err
	}

	return cfg, nil
}

func (c StoreConfig) Validate() error {
	switch {
	case c.JwtSecret == "":
		return errors.New("jwt secret must be set")
	case c.SessionTTL <= 0:
		return errors.New("session ttl must be positive")
	case c.SyncInterval <= 0:
		return errors.New("sync interval must be positive")
	case c.RedisAddr != "" && (c.LoginAttemptsLimit <= 0 || c.LoginAttemptsWindow <= 0):
		return errors.New("login attempts limit and window must be positive")
	default:
		return nil
	}
}
