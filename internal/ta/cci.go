package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// CCI computes the commodity channel index over the typical price.
func CCI(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.CCI)
	if !ok {
		return nil, badSettings("cci", s)
	}
	period := st.LookbackPeriods
	out := newResults(bars)

	tp := make([]float64, len(bars))
	for i, b := range bars {
		tp[i] = (b.High + b.Low + b.Close) / 3.0
	}
	sma := smaSeries(tp, period)

	for i := range bars {
		if sma[i] == nil {
			continue
		}
		mean := *sma[i]
		meanDev := 0.0
		for j := i - period + 1; j <= i; j++ {
			meanDev += abs(tp[j] - mean)
		}
		meanDev /= float64(period)

		if meanDev == 0 {
			out[i].CCI = fp(0.0)
			continue
		}
		out[i].CCI = fp((tp[i] - mean) / (0.015 * meanDev))
	}
	return out, nil
}
