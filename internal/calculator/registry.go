package calculator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"MarketMood/internal/store"
)

// Factory builds a Calculator from a price source and a configuration map.
type Factory func(prices store.PriceStore, cfg Config) (Calculator, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a calculator available under the given tag. Registering an
// existing tag replaces it.
func Register(tag string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[tag] = f
}

// Tags lists the registered calculator tags, sorted.
func Tags() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for tag := range factories {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// New builds the calculator registered under tag.
func New(tag string, prices store.PriceStore, cfg Config) (Calculator, error) {
	regMu.RLock()
	f, ok := factories[tag]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown calculator %q (available: %s)",
			ErrConfig, tag, strings.Join(Tags(), ", "))
	}
	return f(prices, cfg)
}

func init() {
	Register("rsi", NewRSICalculator)
	Register("ma_trend", NewMATrendCalculator)
	Register("volatility", NewVolatilityCalculator)
	Register("constant", NewConstantCalculator)
}

// requireTicker pulls the mandatory ticker out of a configuration map.
func requireTicker(cfg Config) (string, error) {
	ticker := cfg.String("ticker", "")
	if ticker == "" {
		return "", fmt.Errorf("%w: ticker is required", ErrConfig)
	}
	return ticker, nil
}
