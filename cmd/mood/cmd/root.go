package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"MarketMood/internal/config"
	"MarketMood/internal/engine"
	"MarketMood/internal/store"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "mood",
	Short: "Technical-indicator market sentiment engine",
	Long: `MarketMood turns daily price bars into normalized sentiment scores.

It provides tools for:
  - Defining indicators (RSI, MACD, Bollinger, Ichimoku, ...) per asset
  - Scoring them on the [-1, +1] sentiment scale
  - Backfilling score history over date ranges
  - Aggregating all of an asset's indicators into one market mood`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		// .env is optional; real deployments set the environment directly.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] load .env: %v", err)
		}
	})
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default configs/config.yaml)")
}

// loadConfig resolves the config path (flag, then CONFIG_PATH, then default)
// and validates what it finds.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// openEngine opens the sqlite store and wraps it in an engine. The caller
// owns the returned store and must Close it.
func openEngine() (*engine.Engine, store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	return engine.New(st), st, cfg, nil
}
