package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr    string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath      string     `env:"DB_PATH" envDefault:"data/globetrotter.db"`
	DatasetPath string     `env:"DATASET_PATH" envDefault:"data/destinations.json"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// ResetOnStart reloads the destination catalog from DatasetPath and
	// clears the users and challenges collections at startup. Player
	// history does not survive a restart while this is on.
	ResetOnStart bool `env:"RESET_ON_START" envDefault:"true"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
