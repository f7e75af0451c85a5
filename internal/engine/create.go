package engine

import (
	"fmt"

	"MarketMood/internal/model"
)

// CreateAdapterIndicator defines and persists an adapter-backed indicator.
// indicatorName is a settings registry entry ("rsi", "macd", "stochastic",
// ...); params may be nil for defaults. The configuration is validated by
// building the calculator before anything is written.
func (e *Engine) CreateAdapterIndicator(title, ticker, indicatorName string, params map[string]any, autoUpdate bool) (*model.Indicator, error) {
	cfg := map[string]any{"ticker": ticker}
	if params != nil {
		cfg["settings"] = params
	}

	ind := &model.Indicator{
		Title:           title,
		CalculationType: model.CalculationAdapter,
		CalculatorRef:   indicatorName,
		Config:          cfg,
		AutoUpdate:      autoUpdate,
	}
	if _, err := e.NewCalculator(ind); err != nil {
		return nil, err
	}
	if err := e.store.CreateIndicator(ind); err != nil {
		return nil, fmt.Errorf("create indicator: %w", err)
	}
	return ind, nil
}

// CreateCustomIndicator defines and persists an indicator backed by a
// registered calculator tag. cfg must carry whatever the calculator needs
// (typically at least the ticker).
func (e *Engine) CreateCustomIndicator(title, tag string, cfg map[string]any, autoUpdate bool) (*model.Indicator, error) {
	if cfg == nil {
		cfg = map[string]any{}
	}
	ind := &model.Indicator{
		Title:           title,
		CalculationType: model.CalculationCustom,
		CalculatorRef:   tag,
		Config:          cfg,
		AutoUpdate:      autoUpdate,
	}
	if _, err := e.NewCalculator(ind); err != nil {
		return nil, err
	}
	if err := e.store.CreateIndicator(ind); err != nil {
		return nil, fmt.Errorf("create indicator: %w", err)
	}
	return ind, nil
}

// CreateRSIIndicator defines the reference RSI indicator with explicit
// levels.
func (e *Engine) CreateRSIIndicator(title, ticker string, window int, oversold, overbought float64, autoUpdate bool) (*model.Indicator, error) {
	return e.CreateCustomIndicator(title, "rsi", map[string]any{
		"ticker":     ticker,
		"window":     window,
		"oversold":   oversold,
		"overbought": overbought,
	}, autoUpdate)
}
