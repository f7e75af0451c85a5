package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		UpdateCron   string `yaml:"update_cron"`
		BackfillDays int    `yaml:"backfill_days"`
		RunOnStart   bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Market struct {
		DefaultTicker string `yaml:"default_ticker"`
	} `yaml:"market"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MOOD_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MOOD_UPDATE_CRON"); v != "" {
		cfg.Schedule.UpdateCron = v
	}
	if v := os.Getenv("MOOD_BACKFILL_DAYS"); v != "" {
		var days int
		if _, err := fmt.Sscanf(v, "%d", &days); err == nil {
			cfg.Schedule.BackfillDays = days
		}
	}
	if v := os.Getenv("MOOD_RUN_ON_START"); v == "1" || v == "true" {
		cfg.Schedule.RunOnStart = true
	}
	if v := os.Getenv("MOOD_DEFAULT_TICKER"); v != "" {
		cfg.Market.DefaultTicker = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/marketmood.db"
	}
	if cfg.Schedule.UpdateCron == "" {
		// Daily after market data settles.
		cfg.Schedule.UpdateCron = "0 30 22 * * *"
	}
	if cfg.Schedule.BackfillDays == 0 {
		cfg.Schedule.BackfillDays = 7
	}
	if cfg.Market.DefaultTicker == "" {
		cfg.Market.DefaultTicker = "BTCUSD"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Schedule.UpdateCron == "" {
		return fmt.Errorf("schedule.update_cron is required")
	}
	if c.Schedule.BackfillDays <= 0 {
		return fmt.Errorf("schedule.backfill_days must be positive")
	}
	return nil
}
