package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath                 string        `env:"DB_PATH"                  envDefault:"arena.db"`
	ServerPort             string        `env:"SERVER_PORT"              envDefault:"8080"`
	LogLevel               string        `env:"LOG_LEVEL"                envDefault:"info"`
	GameConfigPath         string        `env:"GAME_CONFIG_PATH"`
	StaminaRestoreInterval time.Duration `env:"STAMINA_RESTORE_INTERVAL" envDefault:"30m"`
	StaminaRestoreAmount   int           `env:"STAMINA_RESTORE_AMOUNT"   envDefault:"5"`
	StoreRetryAttempts     uint64        `env:"STORE_RETRY_ATTEMPTS"     envDefault:"3"`
	StoreRetryBase         time.Duration `env:"STORE_RETRY_BASE"         envDefault:"50ms"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("game_config_path", cfg.GameConfigPath).
		Dur("stamina_restore_interval", cfg.StaminaRestoreInterval).
		Int("stamina_restore_amount", cfg.StaminaRestoreAmount).
		Uint64("store_retry_attempts", cfg.StoreRetryAttempts).
		Dur("store_retry_base", cfg.StoreRetryBase).
		Msg("configuration loaded")

	return cfg, nil
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StaminaRestoreInterval <= 0 {
		return nil, fmt.Errorf("STAMINA_RESTORE_INTERVAL must be positive, got %s", cfg.StaminaRestoreInterval)
	}
	if cfg.StaminaRestoreAmount < 0 {
		return nil, fmt.Errorf("STAMINA_RESTORE_AMOUNT must not be negative, got %d", cfg.StaminaRestoreAmount)
	}
	if cfg.StoreRetryBase <= 0 {
		return nil, fmt.Errorf("STORE_RETRY_BASE must be positive, got %s", cfg.StoreRetryBase)
	}
	return cfg, nil
}

var Module = fx.Provide(Load)
