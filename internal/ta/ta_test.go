package ta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketMood/internal/model"
	"MarketMood/internal/settings"
)

func barsFromCloses(closes ...float64) []model.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Ticker: "TEST",
			Date:   start.AddDate(0, 0, i),
			Open:   c * 0.999,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func mustSettings(t *testing.T, name string, params map[string]any) settings.Settings {
	t.Helper()
	s, err := settings.Create(name, params)
	require.NoError(t, err)
	return s
}

func TestWilderRSIBounds(t *testing.T) {
	closes := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4,
		45.4, 45.9, 46.1, 45.9, 46.3, 46.3, 46.0, 46.0}
	rsi, err := WilderRSI(closes, 14)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)
}

func TestWilderRSINoLosses(t *testing.T) {
	// Strictly rising closes: avg loss stays zero, RSI must be exactly 100
	// with no division error.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, err := WilderRSI(closes, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestWilderRSIAllLosses(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	rsi, err := WilderRSI(closes, 14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rsi)
}

func TestWilderRSIInsufficient(t *testing.T) {
	_, err := WilderRSI([]float64{1, 2, 3}, 14)
	assert.Error(t, err)
}

func TestRSISeriesWarmup(t *testing.T) {
	bars := barsFromCloses(10, 11, 10, 12, 11, 13, 12, 14)
	res, err := RSI(bars, mustSettings(t, "rsi", map[string]any{"lookback_periods": 5}))
	require.NoError(t, err)
	require.Len(t, res, len(bars))

	for i := 0; i < 5; i++ {
		assert.Nil(t, res[i].RSI, "index %d inside warmup", i)
	}
	for i := 5; i < len(bars); i++ {
		require.NotNil(t, res[i].RSI, "index %d past warmup", i)
		assert.GreaterOrEqual(t, *res[i].RSI, 0.0)
		assert.LessOrEqual(t, *res[i].RSI, 100.0)
	}
}

func TestSMASeries(t *testing.T) {
	bars := barsFromCloses(1, 2, 3, 4, 5)
	res, err := SMA(bars, mustSettings(t, "sma", map[string]any{"lookback_periods": 3}))
	require.NoError(t, err)

	assert.Nil(t, res[1].SMA)
	require.NotNil(t, res[2].SMA)
	assert.InDelta(t, 2.0, *res[2].SMA, 1e-9)
	assert.InDelta(t, 4.0, *res[4].SMA, 1e-9)
}

func TestEMASeries(t *testing.T) {
	bars := barsFromCloses(1, 2, 3, 4, 5, 6)
	res, err := EMA(bars, mustSettings(t, "ema", map[string]any{"lookback_periods": 3}))
	require.NoError(t, err)

	assert.Nil(t, res[1].EMA)
	require.NotNil(t, res[2].EMA)
	// Seed is SMA(1,2,3)=2; multiplier 0.5: 3, 4, 5.
	assert.InDelta(t, 2.0, *res[2].EMA, 1e-9)
	assert.InDelta(t, 3.0, *res[3].EMA, 1e-9)
	assert.InDelta(t, 5.0, *res[5].EMA, 1e-9)
}

func TestMACDAlignment(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	bars := barsFromCloses(closes...)
	res, err := MACD(bars, mustSettings(t, "macd", nil))
	require.NoError(t, err)

	assert.Nil(t, res[24].MACD, "MACD before slow warmup")
	require.NotNil(t, res[25].MACD, "MACD at slow warmup")
	assert.Nil(t, res[25].Signal, "signal needs its own warmup")
	require.NotNil(t, res[33].Signal, "signal after warmup")
	require.NotNil(t, res[33].Histogram)
	assert.InDelta(t, *res[33].MACD-*res[33].Signal, *res[33].Histogram, 1e-9)

	// Steady uptrend keeps the fast EMA above the slow EMA.
	assert.Greater(t, *res[len(res)-1].MACD, 0.0)
}

func TestBollingerBandsOrdering(t *testing.T) {
	bars := barsFromCloses(10, 12, 11, 13, 12, 14, 13, 15, 14, 16,
		15, 17, 16, 18, 17, 19, 18, 20, 19, 21, 20, 22)
	res, err := BollingerBands(bars, mustSettings(t, "bollinger_bands", nil))
	require.NoError(t, err)

	last := res[len(res)-1]
	require.NotNil(t, last.CenterLine)
	assert.Greater(t, *last.UpperBand, *last.CenterLine)
	assert.Less(t, *last.LowerBand, *last.CenterLine)
}

func TestStochasticRisingMarket(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := barsFromCloses(closes...)
	res, err := Stochastic(bars, mustSettings(t, "stochastic", nil))
	require.NoError(t, err)

	last := res[len(res)-1]
	require.NotNil(t, last.Oscillator)
	require.NotNil(t, last.Signal)
	assert.Greater(t, *last.Oscillator, 80.0, "rising market should be near the top of its range")
}

func TestATRPositive(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i%5)
	}
	bars := barsFromCloses(closes...)
	res, err := ATR(bars, mustSettings(t, "atr", nil))
	require.NoError(t, err)

	assert.Nil(t, res[13].ATR)
	require.NotNil(t, res[14].ATR)
	assert.Greater(t, *res[14].ATR, 0.0)
}

func TestADXWarmupAndRange(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.8
	}
	bars := barsFromCloses(closes...)
	res, err := ADX(bars, mustSettings(t, "adx", nil))
	require.NoError(t, err)

	assert.Nil(t, res[26].ADX, "ADX needs two smoothing windows")
	require.NotNil(t, res[27].ADX)
	for i := 27; i < len(res); i++ {
		assert.GreaterOrEqual(t, *res[i].ADX, 0.0)
		assert.LessOrEqual(t, *res[i].ADX, 100.0)
	}
	// Persistent uptrend: +DI dominates.
	last := res[len(res)-1]
	assert.Greater(t, *last.PlusDI, *last.MinusDI)
}

func TestCCISignsFollowPrice(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := barsFromCloses(closes...)
	res, err := CCI(bars, mustSettings(t, "cci", nil))
	require.NoError(t, err)

	last := res[len(res)-1]
	require.NotNil(t, last.CCI)
	assert.Greater(t, *last.CCI, 0.0, "price above its moving average gives positive CCI")
}

func TestWilliamsRRange(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := barsFromCloses(closes...)
	res, err := WilliamsR(bars, mustSettings(t, "williams_r", nil))
	require.NoError(t, err)

	last := res[len(res)-1]
	require.NotNil(t, last.WilliamsR)
	assert.GreaterOrEqual(t, *last.WilliamsR, -100.0)
	assert.LessOrEqual(t, *last.WilliamsR, 0.0)
	// Close at the top of the range sits near zero.
	assert.Greater(t, *last.WilliamsR, -20.0)
}

func TestOBVCumulative(t *testing.T) {
	bars := barsFromCloses(10, 11, 10, 10, 12)
	res, err := OBV(bars, mustSettings(t, "obv", nil))
	require.NoError(t, err)

	want := []float64{0, 1000, 0, 0, 1000}
	for i, w := range want {
		require.NotNil(t, res[i].OBV)
		assert.InDelta(t, w, *res[i].OBV, 1e-9, "index %d", i)
	}
}

func TestParabolicSARTracksBelowUptrend(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := barsFromCloses(closes...)
	res, err := ParabolicSAR(bars, mustSettings(t, "parabolic_sar", nil))
	require.NoError(t, err)

	assert.Nil(t, res[0].SAR)
	for i := 2; i < len(res); i++ {
		require.NotNil(t, res[i].SAR)
		assert.Less(t, *res[i].SAR, bars[i].Close, "SAR stays below price in an uptrend (index %d)", i)
	}
}

func TestIchimokuLines(t *testing.T) {
	closes := make([]float64, 90)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.3
	}
	bars := barsFromCloses(closes...)
	res, err := Ichimoku(bars, mustSettings(t, "ichimoku", nil))
	require.NoError(t, err)

	assert.Nil(t, res[7].TenkanSen)
	require.NotNil(t, res[8].TenkanSen)
	require.NotNil(t, res[25].KijunSen)
	require.NotNil(t, res[51].SenkouSpanA, "span A appears kijun periods after both lines are warm")
	require.NotNil(t, res[77].SenkouSpanB)
	require.NotNil(t, res[0].ChikouSpan)
	assert.Nil(t, res[len(res)-1].ChikouSpan, "chikou runs out at the end of the series")
}

func TestComputeDispatch(t *testing.T) {
	bars := barsFromCloses(1, 2, 3, 4, 5)
	s := mustSettings(t, "sma", map[string]any{"lookback_periods": 3})

	res, err := Compute("sma", bars, s)
	require.NoError(t, err)
	assert.Len(t, res, 5)

	_, err = Compute("vwap", bars, s)
	assert.ErrorIs(t, err, ErrNoRoutine)

	// Wrong settings type for the routine is an error, not a panic.
	_, err = Compute("rsi", bars, s)
	assert.Error(t, err)
}
