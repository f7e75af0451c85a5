// Package ta computes technical indicator series over daily price bars.
//
// Every routine takes an ascending bar window plus its typed settings and
// returns one Result per input bar. Fields stay nil until the indicator's
// warmup window is satisfied, so a caller can distinguish "not computable yet"
// from a real zero.
package ta

import (
	"errors"
	"fmt"
	"time"

	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// Result is one dated indicator observation. Which fields are set depends on
// the routine that produced it.
type Result struct {
	Date time.Time

	RSI        *float64
	Oscillator *float64 // stochastic %K
	Signal     *float64 // MACD signal line, stochastic %D, smoothed OBV
	MACD       *float64
	Histogram  *float64

	SMA *float64
	EMA *float64

	UpperBand  *float64
	CenterLine *float64
	LowerBand  *float64

	ATR     *float64
	ADX     *float64
	PlusDI  *float64
	MinusDI *float64

	CCI       *float64
	WilliamsR *float64
	OBV       *float64
	SAR       *float64

	TenkanSen   *float64
	KijunSen    *float64
	SenkouSpanA *float64
	SenkouSpanB *float64
	ChikouSpan  *float64
}

// Routine computes an indicator series for one canonical indicator name.
type Routine func(bars []model.PriceBar, s settings.Settings) ([]Result, error)

// ErrNoRoutine is returned when a canonical indicator name has no routine.
var ErrNoRoutine = errors.New("no routine for indicator")

var routines = map[string]Routine{
	"rsi":             RSI,
	"macd":            MACD,
	"sma":             SMA,
	"ema":             EMA,
	"bollinger_bands": BollingerBands,
	"stoch":           Stochastic,
	"atr":             ATR,
	"adx":             ADX,
	"cci":             CCI,
	"williams_r":      WilliamsR,
	"obv":             OBV,
	"psar":            ParabolicSAR,
	"ichimoku":        Ichimoku,
}

// Compute runs the routine matching the canonical indicator name.
func Compute(name string, bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	routine, ok := routines[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrNoRoutine, name)
	}
	return routine(bars, s)
}

func fp(v float64) *float64 { return &v }

func newResults(bars []model.PriceBar) []Result {
	out := make([]Result, len(bars))
	for i, b := range bars {
		out[i].Date = b.Date
	}
	return out
}

func badSettings(name string, s settings.Settings) error {
	return fmt.Errorf("%s: unexpected settings type %T", name, s)
}

// smaSeries computes a simple moving average; entries before period-1 are nil.
func smaSeries(values []float64, period int) []*float64 {
	out := make([]*float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = fp(sum / float64(period))
		}
	}
	return out
}

// emaSeries computes an exponential moving average seeded with the SMA of the
// first period values; entries before period-1 are nil.
func emaSeries(values []float64, period int) []*float64 {
	out := make([]*float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	ema := seed / float64(period)
	out[period-1] = fp(ema)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = fp(ema)
	}
	return out
}

// smaOfSparse averages a sparse series over period consecutive non-nil values.
func smaOfSparse(values []*float64, period int) []*float64 {
	out := make([]*float64, len(values))
	if period <= 0 {
		return out
	}
	for i := range values {
		if i < period-1 {
			continue
		}
		sum := 0.0
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if values[j] == nil {
				ok = false
				break
			}
			sum += *values[j]
		}
		if ok {
			out[i] = fp(sum / float64(period))
		}
	}
	return out
}

// windowHighLow returns the highest high and lowest low over bars[i-period+1..i].
func windowHighLow(bars []model.PriceBar, i, period int) (high, low float64) {
	high = bars[i].High
	low = bars[i].Low
	for j := i - period + 1; j <= i; j++ {
		if bars[j].High > high {
			high = bars[j].High
		}
		if bars[j].Low < low {
			low = bars[j].Low
		}
	}
	return high, low
}
