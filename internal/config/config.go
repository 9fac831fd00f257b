package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level knobs. User-facing settings (token, owner,
// display texts) live in the settings document, not here.
type Config struct {
	// Paths
	SettingsPath string `env:"SETTINGS_PATH" envDefault:"config.json"`
	HistoryPath  string `env:"HISTORY_PATH" envDefault:"generations.db"`

	// Generation API
	GenerationURL     string        `env:"GENERATION_API_URL" envDefault:"https://api-yshzap.vercel.app/api/aiapi/aivideo"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"30s"`

	// Behavior
	AdminConsole bool       `env:"ADMIN_CONSOLE" envDefault:"true"`
	EditOnStart  bool       `env:"EDIT_ON_START" envDefault:"false"`
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
