package calculator

import (
	"errors"
	"time"
)

// Sentinel errors for score calculation. Callers branch on these with
// errors.Is; everything else is treated as a storage or math failure.
var (
	// ErrConfig means the indicator configuration cannot produce a calculator.
	ErrConfig = errors.New("invalid indicator configuration")
	// ErrInsufficientHistory means too few price bars exist before the
	// requested date to warm up the indicator.
	ErrInsufficientHistory = errors.New("insufficient price history")
	// ErrMissingResult means the indicator produced no value for the
	// requested date (no bar, or the date falls outside the series).
	ErrMissingResult = errors.New("no indicator result for date")
	// ErrUnsupportedScoreMethod means the configured score_method is not one
	// of threshold, momentum, range, custom or auto.
	ErrUnsupportedScoreMethod = errors.New("unsupported score method")
)

// Calculator turns a calendar date into a sentiment score in [-1, +1].
type Calculator interface {
	Calculate(date time.Time) (float64, error)
}

// Clamp bounds a score to the [-1, +1] sentiment scale.
func Clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}

// Config is the free-form indicator configuration map. Values typically
// arrive via JSON, so numbers may be float64 even when conceptually integer.
type Config map[string]any

// String returns the value under key if it is a string, else the default.
func (c Config) String(key, def string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return def
}

// Float returns the value under key coerced to float64, else the default.
func (c Config) Float(key string, def float64) float64 {
	switch v := c[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// Int returns the value under key coerced to int, else the default.
func (c Config) Int(key string, def int) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Map returns the nested map under key, or nil.
func (c Config) Map(key string) map[string]any {
	if v, ok := c[key].(map[string]any); ok {
		return v
	}
	return nil
}
