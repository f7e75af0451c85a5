package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketMood/internal/model"
	"MarketMood/internal/store"
	"MarketMood/internal/ta"
)

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

// seedBars writes n consecutive daily bars ending at end, with the given
// closes (len(closes) == n).
func seedBars(t *testing.T, s store.PriceStore, ticker string, end time.Time, closes []float64) {
	t.Helper()
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Ticker: ticker,
			Date:   end.AddDate(0, 0, i-(len(closes)-1)),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	require.NoError(t, s.PutBars(bars))
}

func rising(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3.2))
	assert.Equal(t, -1.0, Clamp(-1.0001))
	assert.Equal(t, 0.42, Clamp(0.42))
}

func TestThresholdScore(t *testing.T) {
	cases := []struct {
		value float64
		want  float64
	}{
		{value: 30, want: 1.0},
		{value: 25, want: 1.0},
		{value: 40, want: 0.5},
		{value: 50, want: 0.0},
		{value: 60, want: -0.5},
		{value: 70, want: -1.0},
		{value: 85, want: -1.0},
	}
	for _, tc := range cases {
		got := thresholdScore(tc.value, 30, 70)
		assert.InDelta(t, tc.want, got, 1e-9, "value %.0f", tc.value)
	}
}

func TestThresholdScoreAsymmetricLevels(t *testing.T) {
	// Williams %R style levels: neutral sits at the midpoint, -50.
	assert.InDelta(t, 0.0, thresholdScore(-50, -80, -20), 1e-9)
	assert.InDelta(t, 1.0, thresholdScore(-80, -80, -20), 1e-9)
	assert.InDelta(t, -0.5, thresholdScore(-35, -80, -20), 1e-9)
}

func TestMomentumScoreMACD(t *testing.T) {
	results := []ta.Result{
		{MACD: ptr(2.5), Signal: ptr(0.0), Histogram: ptr(2.5)},
		{MACD: ptr(2.5), Signal: ptr(0.0), Histogram: ptr(2.5)},
	}
	assert.Equal(t, 0.0, momentumScore(results, 0), "first observation reads neutral")
	assert.InDelta(t, 0.5, momentumScore(results, 1), 1e-9)

	// Gap beyond ±5 clamps.
	results[1].MACD = ptr(12.0)
	assert.Equal(t, 1.0, momentumScore(results, 1))

	// A signal line still warming up reads neutral, not an error, so range
	// runs persist 0.0 through the warmup.
	results[1].Signal = nil
	assert.Equal(t, 0.0, momentumScore(results, 1))

	// No momentum fields at all reads neutral too.
	assert.Equal(t, 0.0, momentumScore([]ta.Result{{}, {}}, 1))
}

func TestMomentumScoreOBV(t *testing.T) {
	results := []ta.Result{{OBV: ptr(100.0)}, {OBV: ptr(105.0)}}

	assert.Equal(t, 0.0, momentumScore(results, 0), "first point has no prior level")
	assert.InDelta(t, 0.5, momentumScore(results, 1), 1e-9, "5% rise scaled by 10")

	results[0].OBV = ptr(0.0)
	assert.Equal(t, 0.0, momentumScore(results, 1), "zero prior level reads neutral")
}

func TestRegistryUnknownTag(t *testing.T) {
	_, err := New("nope", store.NewMemoryStore(), Config{})
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "available:")
}

func TestRSICalculatorBoundary(t *testing.T) {
	mem := store.NewMemoryStore()
	end := day("2024-06-28")
	window := 5

	calc, err := New("rsi", mem, Config{"ticker": "BTCUSD", "window": window})
	require.NoError(t, err)

	// window bars: one short of the window+1 the RSI needs.
	seedBars(t, mem, "BTCUSD", end, rising(window))
	_, err = calc.Calculate(end)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	// window+1 bars: exactly enough. Monotonic rise pins RSI at 100, which
	// scores fully bearish against 30/70 levels.
	seedBars(t, mem, "BTCUSD", end, rising(window+1))
	got, err := calc.Calculate(end)
	require.NoError(t, err)
	assert.Equal(t, -1.0, got)
}

func TestRSICalculatorTrailingWindow(t *testing.T) {
	mem := store.NewMemoryStore()
	friday := day("2024-06-28")
	seedBars(t, mem, "BTCUSD", friday, rising(20))

	calc, err := New("rsi", mem, Config{"ticker": "BTCUSD"})
	require.NoError(t, err)

	// A Saturday with no bar of its own scores from the trailing window.
	got, err := calc.Calculate(day("2024-06-29"))
	require.NoError(t, err)
	assert.Equal(t, -1.0, got)

	// Far past the data the window runs dry.
	_, err = calc.Calculate(day("2024-07-15"))
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestRSICalculatorConfigErrors(t *testing.T) {
	mem := store.NewMemoryStore()

	_, err := New("rsi", mem, Config{})
	assert.ErrorIs(t, err, ErrConfig, "ticker is required")

	_, err = New("rsi", mem, Config{"ticker": "BTCUSD", "window": -1})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New("rsi", mem, Config{"ticker": "BTCUSD", "oversold": 70, "overbought": 30})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestMATrendCalculator(t *testing.T) {
	mem := store.NewMemoryStore()
	end := day("2024-06-28")

	calc, err := New("ma_trend", mem, Config{"ticker": "ETHUSD", "short_window": 3, "long_window": 6})
	require.NoError(t, err)

	// Flat series: no spread, neutral score.
	seedBars(t, mem, "ETHUSD", end, []float64{50, 50, 50, 50, 50, 50})
	got, err := calc.Calculate(end)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-9)

	// Strong rise: short MA well above long MA, clamps bullish.
	seedBars(t, mem, "ETHUSD", end, []float64{50, 60, 70, 80, 90, 100})
	got, err = calc.Calculate(end)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = calc.Calculate(end.AddDate(0, 0, 30))
	assert.ErrorIs(t, err, ErrInsufficientHistory, "no bars left in the trailing window")
}

func TestVolatilityCalculator(t *testing.T) {
	mem := store.NewMemoryStore()
	end := day("2024-06-28")

	calc, err := New("volatility", mem, Config{"ticker": "BTCUSD", "window": 5, "threshold_pct": 5.0})
	require.NoError(t, err)

	// Flat closes: zero volatility maps to the calm end of the scale.
	seedBars(t, mem, "BTCUSD", end, []float64{100, 100, 100, 100, 100, 100})
	got, err := calc.Calculate(end)
	require.NoError(t, err)
	assert.Equal(t, -1.0, got)

	// Violent swings blow past the threshold and clamp bullish-volatile.
	seedBars(t, mem, "BTCUSD", end, []float64{100, 130, 90, 140, 85, 150})
	got, err = calc.Calculate(end)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestConstantCalculator(t *testing.T) {
	calc, err := New("constant", store.NewMemoryStore(), Config{"value": 0.3})
	require.NoError(t, err)
	got, err := calc.Calculate(day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 0.3, got)

	calc, err = New("constant", store.NewMemoryStore(), Config{"value": 7.0})
	require.NoError(t, err)
	got, err = calc.Calculate(day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got, "configured value is clamped")
}

func TestAdapterConfigValidation(t *testing.T) {
	mem := store.NewMemoryStore()

	_, err := NewTAAdapter(mem, Config{"indicator_name": "rsi"})
	assert.ErrorIs(t, err, ErrConfig, "ticker required")

	_, err = NewTAAdapter(mem, Config{"ticker": "BTCUSD"})
	assert.ErrorIs(t, err, ErrConfig, "indicator_name required")

	_, err = NewTAAdapter(mem, Config{"ticker": "BTCUSD", "indicator_name": "vwap"})
	assert.ErrorIs(t, err, ErrConfig, "unknown indicator wraps into config error")

	_, err = NewTAAdapter(mem, Config{
		"ticker": "BTCUSD", "indicator_name": "rsi", "score_method": "vibes",
	})
	assert.ErrorIs(t, err, ErrUnsupportedScoreMethod)

	_, err = NewTAAdapter(mem, Config{
		"ticker": "BTCUSD", "indicator_name": "rsi", "score_method": "custom",
	})
	assert.ErrorIs(t, err, ErrConfig, "custom method needs a function name")

	_, err = NewTAAdapter(mem, Config{
		"ticker": "BTCUSD", "indicator_name": "rsi",
		"settings": map[string]any{"lookback_periods": -3},
	})
	assert.ErrorIs(t, err, ErrConfig, "settings validation failures surface as config errors")
}

func TestAdapterThresholdRSI(t *testing.T) {
	mem := store.NewMemoryStore()
	end := day("2024-06-28")
	seedBars(t, mem, "BTCUSD", end, rising(40))

	a, err := NewTAAdapter(mem, Config{
		"ticker":         "BTCUSD",
		"indicator_name": "rsi",
		"settings":       map[string]any{"lookback_periods": float64(14)},
	})
	require.NoError(t, err)

	// auto resolves rsi to threshold scoring; a pure uptrend is maximally
	// overbought.
	got, err := a.Calculate(end)
	require.NoError(t, err)
	assert.Equal(t, -1.0, got)
}

func TestAdapterMomentumMACD(t *testing.T) {
	mem := store.NewMemoryStore()
	end := day("2024-06-28")
	seedBars(t, mem, "BTCUSD", end, rising(60))

	a, err := NewTAAdapter(mem, Config{
		"ticker":         "BTCUSD",
		"indicator_name": "macd",
	})
	require.NoError(t, err)

	got, err := a.Calculate(end)
	require.NoError(t, err)
	assert.Greater(t, got, 0.0, "uptrend keeps MACD above its signal line")
	assert.LessOrEqual(t, got, 1.0)
}

func TestAdapterMACDSignalWarmup(t *testing.T) {
	mem := store.NewMemoryStore()
	end := day("2024-06-28")
	// Enough bars for the MACD line but not yet for its signal line.
	seedBars(t, mem, "BTCUSD", end, rising(28))

	a, err := NewTAAdapter(mem, Config{
		"ticker":         "BTCUSD",
		"indicator_name": "macd",
	})
	require.NoError(t, err)

	got, err := a.Calculate(end)
	require.NoError(t, err, "signal warmup must score, not fail")
	assert.Equal(t, 0.0, got)
}

func TestAdapterRangeDefaultsNeutral(t *testing.T) {
	mem := store.NewMemoryStore()
	end := day("2024-06-28")
	seedBars(t, mem, "BTCUSD", end, rising(40))

	a, err := NewTAAdapter(mem, Config{
		"ticker":         "BTCUSD",
		"indicator_name": "bollinger_bands",
	})
	require.NoError(t, err)

	got, err := a.Calculate(end)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestAdapterMissingAndWarmup(t *testing.T) {
	mem := store.NewMemoryStore()
	end := day("2024-06-28")
	seedBars(t, mem, "BTCUSD", end, rising(10))

	a, err := NewTAAdapter(mem, Config{
		"ticker":         "BTCUSD",
		"indicator_name": "rsi",
		"settings":       map[string]any{"lookback_periods": float64(14)},
	})
	require.NoError(t, err)

	// Date past the last bar: the series has no result row for it.
	_, err = a.Calculate(end.AddDate(0, 0, 10))
	assert.ErrorIs(t, err, ErrMissingResult)

	// Result row exists but the RSI field is still null for that date.
	_, err = a.Calculate(end)
	assert.ErrorIs(t, err, ErrMissingResult)
}

func TestAdapterCustomScoreFunc(t *testing.T) {
	RegisterScoreFunc("close_sign", func(results []ta.Result, idx int) (float64, error) {
		if idx%2 == 0 {
			return 0.25, nil
		}
		return -0.25, nil
	})

	mem := store.NewMemoryStore()
	end := day("2024-06-28")
	seedBars(t, mem, "BTCUSD", end, rising(10))

	a, err := NewTAAdapter(mem, Config{
		"ticker":                "BTCUSD",
		"indicator_name":        "sma",
		"score_method":          "custom",
		"custom_score_function": "close_sign",
	})
	require.NoError(t, err)

	got, err := a.Calculate(end)
	require.NoError(t, err)
	assert.Contains(t, []float64{0.25, -0.25}, got)
}
