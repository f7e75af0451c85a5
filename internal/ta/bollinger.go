package ta

import (
	"math"

	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// BollingerBands computes the center SMA and the upper/lower bands at the
// configured number of standard deviations.
func BollingerBands(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.BollingerBands)
	if !ok {
		return nil, badSettings("bollinger_bands", s)
	}
	out := newResults(bars)
	closes := model.Closes(bars)
	period := st.LookbackPeriods
	center := smaSeries(closes, period)

	for i := range bars {
		if center[i] == nil {
			continue
		}
		mean := *center[i]
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(period))

		out[i].CenterLine = center[i]
		out[i].UpperBand = fp(mean + st.StandardDeviations*std)
		out[i].LowerBand = fp(mean - st.StandardDeviations*std)
	}
	return out, nil
}
