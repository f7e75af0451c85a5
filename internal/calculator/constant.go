package calculator

import (
	"time"

	"MarketMood/internal/store"
)

// ConstantCalculator returns a fixed score for every date. Useful for manual
// sentiment overrides and for wiring tests.
//
// Configuration keys: value (default 0.0), clamped to the sentiment scale.
type ConstantCalculator struct {
	value float64
}

func NewConstantCalculator(_ store.PriceStore, cfg Config) (Calculator, error) {
	return &ConstantCalculator{value: Clamp(cfg.Float("value", 0.0))}, nil
}

func (c *ConstantCalculator) Calculate(_ time.Time) (float64, error) {
	return c.value, nil
}
