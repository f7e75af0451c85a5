package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// SMA computes the simple moving average of closes.
func SMA(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.SMA)
	if !ok {
		return nil, badSettings("sma", s)
	}
	out := newResults(bars)
	series := smaSeries(model.Closes(bars), st.LookbackPeriods)
	for i := range out {
		out[i].SMA = series[i]
	}
	return out, nil
}

// EMA computes the exponential moving average of closes, seeded with the SMA
// of the first lookback values.
func EMA(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.EMA)
	if !ok {
		return nil, badSettings("ema", s)
	}
	out := newResults(bars)
	series := emaSeries(model.Closes(bars), st.LookbackPeriods)
	for i := range out {
		out[i].EMA = series[i]
	}
	return out, nil
}
