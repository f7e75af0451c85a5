package model

import "time"

// CalculationType selects how an indicator's score is computed.
type CalculationType string

const (
	// CalculationCustom instantiates a calculator from the calculator registry.
	CalculationCustom CalculationType = "custom"
	// CalculationAdapter runs a TA routine and normalizes its output to a score.
	CalculationAdapter CalculationType = "adapter"
)

// Indicator is an operator-defined sentiment indicator.
//
// CalculatorRef names a calculator registry tag for custom indicators, or an
// indicator type name (e.g. "rsi", "stochastic") for adapter indicators.
// Config is the
// opaque per-instance configuration map persisted as a JSON blob; it is
// decoded into typed values the moment a calculator is constructed.
type Indicator struct {
	ID              int64
	Title           string
	Description     string
	CalculationType CalculationType
	CalculatorRef   string
	Config          map[string]any
	AutoUpdate      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Ticker returns the ticker this indicator is configured against.
func (ind *Indicator) Ticker() string {
	if ind.Config == nil {
		return ""
	}
	if v, ok := ind.Config["ticker"].(string); ok {
		return v
	}
	return ""
}
