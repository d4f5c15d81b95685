// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the invoicegen client.
//
// LogFile supports the special value "off" to discard logs entirely.
// When LogFile or HomeDir are left empty they are derived from the user's
// home directory after env processing.
type Config struct {
	ServerBaseURL string        `env:"INVOICEGEN_SERVER,    default=http://localhost:5000"`
	HTTPTimeout   time.Duration `env:"INVOICEGEN_TIMEOUT,   default=15s"`
	LogLevel      string        `env:"INVOICEGEN_LOG_LEVEL, default=info"`
	LogFile       string        `env:"INVOICEGEN_LOG_FILE"`
	HomeDir       string        `env:"INVOICEGEN_HOME"`
}

// Load reads configuration from environment variables using go-envconfig,
// then fills the path defaults that depend on the user's home directory.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: home: %w", err)
		}
		cfg.HomeDir = filepath.Join(home, ".invoicegen")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.HomeDir, "app.log")
	}
	return &cfg, nil
}
