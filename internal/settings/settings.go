// Package settings holds the typed, validated configuration for each
// supported indicator type. Every type round-trips to a plain key-value map
// for persistence; the map is the only untyped surface.
package settings

import (
	"errors"
	"fmt"
)

// Settings is one indicator type's validated configuration.
type Settings interface {
	// IndicatorName returns the canonical TA routine name ("rsi", "macd", ...).
	IndicatorName() string
	// ToMap converts to a plain mapping for persistence. Optional fields left
	// unset are omitted so defaults apply on reconstruction.
	ToMap() map[string]any
	// Validate checks field ranges.
	Validate() error
}

// Thresholds is implemented by oscillator settings that carry
// oversold/overbought levels for threshold scoring.
type Thresholds interface {
	ThresholdLevels() (oversold, overbought float64)
}

// Decoder builds a typed Settings value from a plain mapping, applying
// defaults for missing keys and ignoring unknown keys.
type Decoder func(m map[string]any) (Settings, error)

// ErrUnknown is returned when an indicator name has no registered settings type.
var ErrUnknown = errors.New("unknown indicator")

// Map helpers. Config maps travel through JSON, so numbers may arrive as
// float64 even when the field is integral.

func intFrom(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

func floatFrom(m map[string]any, key string, def float64) float64 {
	v, ok := m[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

func optionalIntFrom(m map[string]any, key string) *int {
	if _, ok := m[key]; !ok {
		return nil
	}
	n := intFrom(m, key, 0)
	return &n
}

func positive(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, v)
	}
	return nil
}
