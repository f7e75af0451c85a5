package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// MACD computes the moving average convergence/divergence line, its signal
// line, and the histogram. The MACD line appears once the slow EMA is warm;
// the signal line needs a further signal_periods MACD observations.
func MACD(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.MACD)
	if !ok {
		return nil, badSettings("macd", s)
	}
	out := newResults(bars)
	closes := model.Closes(bars)

	fast := emaSeries(closes, st.FastPeriods)
	slow := emaSeries(closes, st.SlowPeriods)

	macdLine := make([]*float64, len(bars))
	for i := range bars {
		if fast[i] != nil && slow[i] != nil {
			macdLine[i] = fp(*fast[i] - *slow[i])
		}
	}

	// Signal line: EMA of the MACD values, aligned back to bar indexes.
	first := st.SlowPeriods - 1
	signalLine := make([]*float64, len(bars))
	if len(bars) > first {
		vals := make([]float64, 0, len(bars)-first)
		for i := first; i < len(bars); i++ {
			vals = append(vals, *macdLine[i])
		}
		sig := emaSeries(vals, st.SignalPeriods)
		for j, v := range sig {
			signalLine[first+j] = v
		}
	}

	for i := range out {
		out[i].MACD = macdLine[i]
		out[i].Signal = signalLine[i]
		if macdLine[i] != nil && signalLine[i] != nil {
			out[i].Histogram = fp(*macdLine[i] - *signalLine[i])
		}
	}
	return out, nil
}
