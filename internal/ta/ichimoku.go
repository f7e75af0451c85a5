package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// Ichimoku computes the Ichimoku cloud lines. Senkou spans are plotted
// shifted forward by the kijun period; the chikou span is the close shifted
// backward by the same amount.
func Ichimoku(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.Ichimoku)
	if !ok {
		return nil, badSettings("ichimoku", s)
	}
	out := newResults(bars)
	n := len(bars)

	midpoint := func(i, period int) *float64 {
		if i < period-1 {
			return nil
		}
		high, low := windowHighLow(bars, i, period)
		return fp((high + low) / 2.0)
	}

	tenkan := make([]*float64, n)
	kijun := make([]*float64, n)
	for i := 0; i < n; i++ {
		tenkan[i] = midpoint(i, st.TenkanPeriods)
		kijun[i] = midpoint(i, st.KijunPeriods)
		out[i].TenkanSen = tenkan[i]
		out[i].KijunSen = kijun[i]
	}

	shift := st.KijunPeriods
	for i := 0; i < n; i++ {
		src := i - shift
		if src >= 0 {
			if tenkan[src] != nil && kijun[src] != nil {
				out[i].SenkouSpanA = fp((*tenkan[src] + *kijun[src]) / 2.0)
			}
			out[i].SenkouSpanB = midpoint(src, st.SenkouSpanBPeriods)
		}
		if i+shift < n {
			out[i].ChikouSpan = fp(bars[i+shift].Close)
		}
	}
	return out, nil
}
