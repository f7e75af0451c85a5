package calculator

import (
	"math"
	"sync"

	"MarketMood/internal/settings"
	"MarketMood/internal/ta"
)

// Score methods accepted in an adapter configuration.
const (
	MethodAuto      = "auto"
	MethodThreshold = "threshold"
	MethodMomentum  = "momentum"
	MethodRange     = "range"
	MethodCustom    = "custom"
)

// autoMethod picks a scoring strategy from the indicator it is scoring.
// Bounded oscillators score against thresholds, trend/volume indicators
// score on momentum, everything else falls back to range scoring.
func autoMethod(indicator string) string {
	switch indicator {
	case "rsi", "stoch", "cci", "williams_r":
		return MethodThreshold
	case "macd", "obv":
		return MethodMomentum
	default:
		return MethodRange
	}
}

// thresholdScore maps an oscillator reading onto the sentiment scale.
// At or below oversold the score is +1, at or above overbought it is -1,
// and it falls linearly through 0 at the midpoint between the two.
func thresholdScore(value, oversold, overbought float64) float64 {
	if value <= oversold {
		return 1.0
	}
	if value >= overbought {
		return -1.0
	}
	neutral := (oversold + overbought) / 2.0
	if value < neutral {
		return (neutral - value) / (neutral - oversold)
	}
	return -(value - neutral) / (overbought - neutral)
}

// thresholdInput picks the oscillator reading out of a result. Results carry
// at most one of these, but the order fixes behavior if a custom routine sets
// several.
func thresholdInput(res ta.Result) *float64 {
	for _, v := range []*float64{res.RSI, res.Oscillator, res.CCI, res.WilliamsR} {
		if v != nil {
			return v
		}
	}
	return nil
}

// thresholdLevels reads oversold/overbought from the settings when they carry
// them, defaulting to the classic 30/70 oscillator levels otherwise.
func thresholdLevels(s settings.Settings) (oversold, overbought float64) {
	if t, ok := s.(settings.Thresholds); ok {
		return t.ThresholdLevels()
	}
	return 30.0, 70.0
}

// momentumScore scores trend indicators on the direction and size of their
// latest move. MACD uses the signal-line gap, OBV the day-over-day change
// relative to the prior level. The first observation and any observation
// whose fields are still warming up read neutral rather than failing, so a
// range run persists 0.0 through the warmup instead of skipping those days.
func momentumScore(results []ta.Result, idx int) float64 {
	if idx == 0 {
		return 0.0
	}
	res := results[idx]

	if res.MACD != nil {
		if res.Signal == nil {
			return 0.0
		}
		return Clamp((*res.MACD - *res.Signal) / 5.0)
	}

	if res.OBV != nil {
		prev := results[idx-1].OBV
		if prev == nil || *prev == 0 {
			return 0.0
		}
		change := (*res.OBV - *prev) / math.Abs(*prev)
		return Clamp(change * 10.0)
	}

	return 0.0
}

// ScoreFunc is a custom scoring strategy over a computed indicator series.
// idx is the position of the requested date within results.
type ScoreFunc func(results []ta.Result, idx int) (float64, error)

var (
	scoreMu    sync.RWMutex
	scoreFuncs = map[string]ScoreFunc{}
)

// RegisterScoreFunc makes a custom scoring strategy available under name for
// adapter configurations with score_method "custom".
func RegisterScoreFunc(name string, fn ScoreFunc) {
	scoreMu.Lock()
	defer scoreMu.Unlock()
	scoreFuncs[name] = fn
}

func lookupScoreFunc(name string) (ScoreFunc, bool) {
	scoreMu.RLock()
	defer scoreMu.RUnlock()
	fn, ok := scoreFuncs[name]
	return fn, ok
}
