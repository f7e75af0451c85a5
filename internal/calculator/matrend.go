package calculator

import (
	"fmt"
	"time"

	"MarketMood/internal/model"
	"MarketMood/internal/store"
)

// MATrendCalculator scores the spread between a short and a long simple
// moving average, normalized so that a ±10% spread saturates the scale.
//
// Configuration keys: ticker (required), short_window (default 7),
// long_window (default 30), full_scale_pct (default 0.10).
type MATrendCalculator struct {
	prices    store.PriceStore
	ticker    string
	short     int
	long      int
	fullScale float64
}

func NewMATrendCalculator(prices store.PriceStore, cfg Config) (Calculator, error) {
	ticker, err := requireTicker(cfg)
	if err != nil {
		return nil, err
	}

	c := &MATrendCalculator{
		prices:    prices,
		ticker:    ticker,
		short:     cfg.Int("short_window", 7),
		long:      cfg.Int("long_window", 30),
		fullScale: cfg.Float("full_scale_pct", 0.10),
	}
	if c.short <= 0 || c.long <= 0 {
		return nil, fmt.Errorf("%w: windows must be positive", ErrConfig)
	}
	if c.short >= c.long {
		return nil, fmt.Errorf("%w: short window %d must be below long window %d",
			ErrConfig, c.short, c.long)
	}
	if c.fullScale <= 0 {
		return nil, fmt.Errorf("%w: full_scale_pct must be positive", ErrConfig)
	}
	return c, nil
}

func (c *MATrendCalculator) Calculate(date time.Time) (float64, error) {
	day := model.Day(date)
	lookback := (c.long*7)/5 + 10
	from := day.AddDate(0, 0, -lookback)

	bars, err := c.prices.GetBars(c.ticker, from, day)
	if err != nil {
		return 0, fmt.Errorf("fetch bars for %s: %w", c.ticker, err)
	}

	closes := model.Closes(bars)
	if len(closes) < c.long {
		return 0, fmt.Errorf("ma trend needs %d bars, have %d: %w",
			c.long, len(closes), ErrInsufficientHistory)
	}

	shortMA := tailMean(closes, c.short)
	longMA := tailMean(closes, c.long)
	if longMA == 0 {
		return 0.0, nil
	}
	spread := (shortMA - longMA) / longMA
	return Clamp(spread / c.fullScale), nil
}

// tailMean averages the last n values.
func tailMean(values []float64, n int) float64 {
	sum := 0.0
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	return sum / float64(n)
}
