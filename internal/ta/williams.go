package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// WilliamsR computes Williams %R on its native -100..0 scale.
func WilliamsR(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.WilliamsR)
	if !ok {
		return nil, badSettings("williams_r", s)
	}
	period := st.LookbackPeriods
	out := newResults(bars)

	for i := range bars {
		if i < period-1 {
			continue
		}
		high, low := windowHighLow(bars, i, period)
		if high == low {
			out[i].WilliamsR = fp(-50.0)
			continue
		}
		out[i].WilliamsR = fp((high - bars[i].Close) / (high - low) * -100.0)
	}
	return out, nil
}
