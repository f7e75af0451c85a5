package calculator

import (
	"fmt"
	"time"

	"MarketMood/internal/model"
	"MarketMood/internal/settings"
	"MarketMood/internal/store"
	"MarketMood/internal/ta"
)

const defaultLookbackDays = 100

// TAAdapter scores any registered technical indicator without a dedicated
// calculator. It resolves the indicator settings, computes the series over a
// trailing window and applies the configured scoring strategy.
//
// Configuration keys:
//
//	ticker                (required) asset to score
//	indicator_name        (required) settings registry name, e.g. "rsi"
//	settings              indicator parameters; "indicator_settings" also accepted
//	settings_type         override the settings registry entry to decode with
//	score_method          auto | threshold | momentum | range | custom (default auto)
//	custom_score_function name registered via RegisterScoreFunc, for "custom"
//	lookback_days         calendar days of history to fetch (default 100)
type TAAdapter struct {
	prices   store.PriceStore
	ticker   string
	settings settings.Settings
	method   string
	scoreFn  ScoreFunc
	lookback int
}

// NewTAAdapter validates the configuration and builds the adapter. All
// configuration problems come back wrapped in ErrConfig except an unknown
// score_method, which is ErrUnsupportedScoreMethod.
func NewTAAdapter(prices store.PriceStore, cfg Config) (*TAAdapter, error) {
	ticker, err := requireTicker(cfg)
	if err != nil {
		return nil, err
	}

	name := cfg.String("indicator_name", "")
	if name == "" {
		return nil, fmt.Errorf("%w: indicator_name is required", ErrConfig)
	}

	params := cfg.Map("settings")
	if params == nil {
		params = cfg.Map("indicator_settings")
	}
	settingsType := cfg.String("settings_type", name)
	s, err := settings.Create(settingsType, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	a := &TAAdapter{
		prices:   prices,
		ticker:   ticker,
		settings: s,
		lookback: cfg.Int("lookback_days", defaultLookbackDays),
	}
	if a.lookback <= 0 {
		return nil, fmt.Errorf("%w: lookback_days must be positive", ErrConfig)
	}

	a.method = cfg.String("score_method", MethodAuto)
	if a.method == MethodAuto {
		a.method = autoMethod(s.IndicatorName())
	}
	switch a.method {
	case MethodThreshold, MethodMomentum, MethodRange:
	case MethodCustom:
		fnName := cfg.String("custom_score_function", "")
		if fnName == "" {
			return nil, fmt.Errorf("%w: custom score method needs custom_score_function", ErrConfig)
		}
		fn, ok := lookupScoreFunc(fnName)
		if !ok {
			return nil, fmt.Errorf("%w: custom score function %q not registered", ErrConfig, fnName)
		}
		a.scoreFn = fn
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScoreMethod, a.method)
	}
	return a, nil
}

func (a *TAAdapter) Calculate(date time.Time) (float64, error) {
	day := model.Day(date)
	from := day.AddDate(0, 0, -a.lookback)

	bars, err := a.prices.GetBars(a.ticker, from, day)
	if err != nil {
		return 0, fmt.Errorf("fetch bars for %s: %w", a.ticker, err)
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("%s has no bars in window: %w", a.ticker, ErrInsufficientHistory)
	}

	results, err := ta.Compute(a.settings.IndicatorName(), bars, a.settings)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	idx := -1
	for i := range results {
		if model.SameDay(results[i].Date, day) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("%s %s: %w", a.ticker, model.DateKey(day), ErrMissingResult)
	}

	score, err := a.score(results, idx)
	if err != nil {
		return 0, err
	}
	return Clamp(score), nil
}

func (a *TAAdapter) score(results []ta.Result, idx int) (float64, error) {
	switch a.method {
	case MethodThreshold:
		v := thresholdInput(results[idx])
		if v == nil {
			// A result row exists but the oscillator has not produced a
			// value for it yet.
			return 0, fmt.Errorf("no value at requested date: %w", ErrMissingResult)
		}
		oversold, overbought := thresholdLevels(a.settings)
		return thresholdScore(*v, oversold, overbought), nil
	case MethodMomentum:
		return momentumScore(results, idx), nil
	case MethodRange:
		// Range scoring has no directional signal to offer yet; it reads
		// neutral until a band-position strategy lands.
		return 0.0, nil
	case MethodCustom:
		return a.scoreFn(results, idx)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedScoreMethod, a.method)
}
