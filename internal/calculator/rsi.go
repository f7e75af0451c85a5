package calculator

import (
	"fmt"
	"time"

	"MarketMood/internal/model"
	"MarketMood/internal/store"
	"MarketMood/internal/ta"
)

// RSICalculator is the reference dedicated calculator: Wilder RSI scored
// against configurable oversold/overbought levels.
//
// Configuration keys: ticker (required), window (default 14),
// oversold (default 30), overbought (default 70).
type RSICalculator struct {
	prices     store.PriceStore
	ticker     string
	window     int
	oversold   float64
	overbought float64
}

func NewRSICalculator(prices store.PriceStore, cfg Config) (Calculator, error) {
	ticker, err := requireTicker(cfg)
	if err != nil {
		return nil, err
	}

	c := &RSICalculator{
		prices:     prices,
		ticker:     ticker,
		window:     cfg.Int("window", 14),
		oversold:   cfg.Float("oversold", 30.0),
		overbought: cfg.Float("overbought", 70.0),
	}
	if c.window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive", ErrConfig)
	}
	if c.oversold >= c.overbought {
		return nil, fmt.Errorf("%w: oversold %.1f must be below overbought %.1f",
			ErrConfig, c.oversold, c.overbought)
	}
	return c, nil
}

func (c *RSICalculator) Calculate(date time.Time) (float64, error) {
	day := model.Day(date)
	// Calendar window padded for weekends and holidays; the RSI itself only
	// needs window+1 bars.
	lookback := (c.window*7)/5 + 10
	from := day.AddDate(0, 0, -lookback)

	// All bars up to and including the target date count; a weekend or
	// holiday date scores from the trailing window.
	bars, err := c.prices.GetBars(c.ticker, from, day)
	if err != nil {
		return 0, fmt.Errorf("fetch bars for %s: %w", c.ticker, err)
	}

	closes := model.Closes(bars)
	if len(closes) < c.window+1 {
		return 0, fmt.Errorf("rsi needs %d bars, have %d: %w",
			c.window+1, len(closes), ErrInsufficientHistory)
	}

	rsi, err := ta.WilderRSI(closes, c.window)
	if err != nil {
		return 0, fmt.Errorf("wilder rsi: %w", err)
	}
	return Clamp(thresholdScore(rsi, c.oversold, c.overbought)), nil
}
