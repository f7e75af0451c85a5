package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// Stochastic computes the slow stochastic oscillator: raw %K over the
// lookback range, smoothed by smooth_periods, with a %D signal line.
func Stochastic(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.Stochastic)
	if !ok {
		return nil, badSettings("stoch", s)
	}
	out := newResults(bars)
	period := st.LookbackPeriods

	rawK := make([]*float64, len(bars))
	for i := range bars {
		if i < period-1 {
			continue
		}
		high, low := windowHighLow(bars, i, period)
		if high == low {
			rawK[i] = fp(50.0)
			continue
		}
		rawK[i] = fp((bars[i].Close - low) / (high - low) * 100.0)
	}

	k := smaOfSparse(rawK, st.SmoothPeriods)
	d := smaOfSparse(k, st.SignalPeriods)

	for i := range out {
		out[i].Oscillator = k[i]
		out[i].Signal = d[i]
	}
	return out, nil
}
