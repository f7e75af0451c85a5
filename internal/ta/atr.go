package ta

import (
	"math"

	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

func trueRange(current, previous model.PriceBar) float64 {
	tr := current.High - current.Low
	if v := math.Abs(current.High - previous.Close); v > tr {
		tr = v
	}
	if v := math.Abs(current.Low - previous.Close); v > tr {
		tr = v
	}
	return tr
}

// ATR computes the Wilder-smoothed average true range. The first value
// appears at index lookback (true range needs a previous bar).
func ATR(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.ATR)
	if !ok {
		return nil, badSettings("atr", s)
	}
	period := st.LookbackPeriods
	out := newResults(bars)
	if len(bars) < period+1 {
		return out, nil
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += trueRange(bars[i], bars[i-1])
	}
	atr := sum / float64(period)
	out[period].ATR = fp(atr)

	for i := period + 1; i < len(bars); i++ {
		tr := trueRange(bars[i], bars[i-1])
		atr = (atr*float64(period-1) + tr) / float64(period)
		out[i].ATR = fp(atr)
	}
	return out, nil
}
