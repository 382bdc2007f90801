package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/panoquest.db"`
	RedisURL string     `env:"REDIS_URL"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR"`

	// RoundsPerGame is the number of rounds dealt into each game.
	RoundsPerGame int `env:"ROUNDS_PER_GAME" envDefault:"5"`

	// AllowEarlyFinish permits finishing a game before all rounds are
	// guessed; unguessed rounds then count as zero.
	AllowEarlyFinish bool `env:"ALLOW_EARLY_FINISH" envDefault:"true"`

	// Bootstrap admin account, created on first start when both are set.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// SeedDemo inserts demo locations into an empty pool.
	SeedDemo bool `env:"SEED_DEMO" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.RoundsPerGame < 1 {
		return nil, fmt.Errorf("ROUNDS_PER_GAME must be at least 1, got %d", cfg.RoundsPerGame)
	}
	return &cfg, nil
}
