package ta

import (
	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

// ADX computes Wilder's average directional index with +DI/-DI. DI values
// appear after one smoothing window; ADX itself needs a second window of DX
// values, so the first ADX appears at index 2*lookback-1.
func ADX(bars []model.PriceBar, s settings.Settings) ([]Result, error) {
	st, ok := s.(*settings.ADX)
	if !ok {
		return nil, badSettings("adx", s)
	}
	period := st.LookbackPeriods
	out := newResults(bars)
	if len(bars) < period+1 {
		return out, nil
	}

	n := len(bars)
	tr := make([]float64, n)
	pdm := make([]float64, n)
	mdm := make([]float64, n)
	for i := 1; i < n; i++ {
		tr[i] = trueRange(bars[i], bars[i-1])
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low
		if upMove > downMove && upMove > 0 {
			pdm[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			mdm[i] = downMove
		}
	}

	// Wilder running sums, seeded over the first period movements.
	var tr14, pdm14, mdm14 float64
	for i := 1; i <= period; i++ {
		tr14 += tr[i]
		pdm14 += pdm[i]
		mdm14 += mdm[i]
	}

	var adx float64
	var dxSum float64
	dxCount := 0

	for i := period; i < n; i++ {
		if i > period {
			tr14 = tr14 - tr14/float64(period) + tr[i]
			pdm14 = pdm14 - pdm14/float64(period) + pdm[i]
			mdm14 = mdm14 - mdm14/float64(period) + mdm[i]
		}

		var pdi, mdi float64
		if tr14 > 0 {
			pdi = 100.0 * pdm14 / tr14
			mdi = 100.0 * mdm14 / tr14
		}
		out[i].PlusDI = fp(pdi)
		out[i].MinusDI = fp(mdi)

		var dx float64
		if pdi+mdi > 0 {
			dx = 100.0 * abs(pdi-mdi) / (pdi + mdi)
		}

		dxCount++
		if dxCount < period {
			dxSum += dx
			continue
		}
		if dxCount == period {
			adx = (dxSum + dx) / float64(period)
		} else {
			adx = (adx*float64(period-1) + dx) / float64(period)
		}
		out[i].ADX = fp(adx)
	}
	return out, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
