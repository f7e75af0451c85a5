package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// OBV computes on-balance volume, starting the running total at zero. When
// sma_periods is configured, the smoothed line is exposed on Signal.
func OBV(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.OBV)
	if !ok {
		return nil, badSettings("obv", s)
	}
	out := newResults(bars)
	if len(bars) == 0 {
		return out, nil
	}

	obv := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv[i] = obv[i-1] + bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv[i] = obv[i-1] - bars[i].Volume
		default:
			obv[i] = obv[i-1]
		}
	}
	for i := range out {
		out[i].OBV = fp(obv[i])
	}

	if st.SMAPeriods != nil {
		smoothed := smaSeries(obv, *st.SMAPeriods)
		for i := range out {
			out[i].Signal = smoothed[i]
		}
	}
	return out, nil
}
