package calculator

import (
	"fmt"
	"math"
	"time"

	"MarketMood/internal/model"
	"MarketMood/internal/store"
)

// VolatilityCalculator scores realized volatility: the standard deviation of
// daily percentage returns over a trailing window, mapped so that zero
// volatility reads -1 and the configured threshold (and above) reads +1.
//
// Configuration keys: ticker (required), window (default 30),
// threshold_pct (default 5.0).
type VolatilityCalculator struct {
	prices    store.PriceStore
	ticker    string
	window    int
	threshold float64
}

func NewVolatilityCalculator(prices store.PriceStore, cfg Config) (Calculator, error) {
	ticker, err := requireTicker(cfg)
	if err != nil {
		return nil, err
	}

	c := &VolatilityCalculator{
		prices:    prices,
		ticker:    ticker,
		window:    cfg.Int("window", 30),
		threshold: cfg.Float("threshold_pct", 5.0),
	}
	if c.window < 2 {
		return nil, fmt.Errorf("%w: window must be at least 2", ErrConfig)
	}
	if c.threshold <= 0 {
		return nil, fmt.Errorf("%w: threshold_pct must be positive", ErrConfig)
	}
	return c, nil
}

func (c *VolatilityCalculator) Calculate(date time.Time) (float64, error) {
	day := model.Day(date)
	lookback := (c.window*7)/5 + 10
	from := day.AddDate(0, 0, -lookback)

	bars, err := c.prices.GetBars(c.ticker, from, day)
	if err != nil {
		return 0, fmt.Errorf("fetch bars for %s: %w", c.ticker, err)
	}

	closes := model.Closes(bars)
	if len(closes) < c.window+1 {
		return 0, fmt.Errorf("volatility needs %d bars, have %d: %w",
			c.window+1, len(closes), ErrInsufficientHistory)
	}

	// Daily percentage returns over the last window changes.
	closes = closes[len(closes)-(c.window+1):]
	returns := make([]float64, c.window)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			returns[i-1] = 0
			continue
		}
		returns[i-1] = (closes[i] - closes[i-1]) / closes[i-1] * 100.0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	vol := math.Sqrt(variance / float64(len(returns)))

	return Clamp(vol/c.threshold*2.0 - 1.0), nil
}
