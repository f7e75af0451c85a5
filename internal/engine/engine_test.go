package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketMood/internal/calculator"
	"MarketMood/internal/model"
	"MarketMood/internal/store"
)

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func seedRising(t *testing.T, s store.PriceStore, ticker string, end time.Time, n int) {
	t.Helper()
	bars := make([]model.PriceBar, n)
	for i := 0; i < n; i++ {
		c := 100 + float64(i)
		bars[i] = model.PriceBar{
			Ticker: ticker,
			Date:   end.AddDate(0, 0, i-(n-1)),
			Open:   c, High: c * 1.01, Low: c * 0.99, Close: c, Volume: 1000,
		}
	}
	require.NoError(t, s.PutBars(bars))
}

func TestNewCalculatorDispatch(t *testing.T) {
	e := New(store.NewMemoryStore())

	custom := &model.Indicator{
		CalculationType: model.CalculationCustom,
		CalculatorRef:   "constant",
		Config:          map[string]any{"value": 0.5},
	}
	_, err := e.NewCalculator(custom)
	require.NoError(t, err)

	adapter := &model.Indicator{
		CalculationType: model.CalculationAdapter,
		CalculatorRef:   "rsi",
		Config:          map[string]any{"ticker": "BTCUSD"},
	}
	_, err = e.NewCalculator(adapter)
	require.NoError(t, err)

	bogus := &model.Indicator{CalculationType: "psychic", CalculatorRef: "rsi"}
	_, err = e.NewCalculator(bogus)
	assert.ErrorIs(t, err, calculator.ErrConfig)
}

func TestCalculateValueDoesNotPersist(t *testing.T) {
	mem := store.NewMemoryStore()
	e := New(mem)

	ind, err := e.CreateCustomIndicator("fixed", "constant", map[string]any{"value": 0.4}, false)
	require.NoError(t, err)

	d := day("2024-06-03")
	got, err := e.CalculateValue(ind, d)
	require.NoError(t, err)
	assert.Equal(t, 0.4, got)

	// Single-date calculation is read-only; only range runs write scores.
	_, err = mem.GetScore(ind.ID, d)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCalculateRangeSkipsFailures(t *testing.T) {
	mem := store.NewMemoryStore()
	e := New(mem)

	end := day("2024-06-28")
	seedRising(t, mem, "BTCUSD", end, 30)

	ind, err := e.CreateAdapterIndicator("BTC RSI", "BTCUSD", "rsi",
		map[string]any{"lookback_periods": float64(14)}, true)
	require.NoError(t, err)

	// Two days past the seeded history have no bars and must fail without
	// aborting the run.
	report, err := e.CalculateRange(ind, end.AddDate(0, 0, -4), end.AddDate(0, 0, 2), true)
	require.NoError(t, err)

	assert.Len(t, report.Entries, 7)
	assert.Equal(t, 5, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	assert.NotEqual(t, report.RunID.String(), "00000000-0000-0000-0000-000000000000")

	for _, entry := range report.Entries {
		if entry.Date.After(end) {
			assert.ErrorIs(t, entry.Err, calculator.ErrMissingResult)
		} else {
			require.NoError(t, entry.Err)
			pt, err := mem.GetScore(ind.ID, entry.Date)
			require.NoError(t, err)
			assert.Equal(t, entry.Value, pt.Value)
		}
	}
}

func TestCalculateRangeIdempotent(t *testing.T) {
	mem := store.NewMemoryStore()
	e := New(mem)

	end := day("2024-06-28")
	seedRising(t, mem, "BTCUSD", end, 30)

	ind, err := e.CreateAdapterIndicator("BTC RSI", "BTCUSD", "rsi", nil, true)
	require.NoError(t, err)

	first, err := e.CalculateRange(ind, end.AddDate(0, 0, -3), end, true)
	require.NoError(t, err)
	second, err := e.CalculateRange(ind, end.AddDate(0, 0, -3), end, true)
	require.NoError(t, err)
	assert.Equal(t, first.Succeeded, second.Succeeded)

	// Re-running upserts in place: still one score per day.
	pts, err := mem.GetScores(ind.ID, end.AddDate(0, 0, -3), end)
	require.NoError(t, err)
	assert.Len(t, pts, first.Succeeded)
}

func TestCalculateRangeInverted(t *testing.T) {
	mem := store.NewMemoryStore()
	e := New(mem)
	ind, err := e.CreateCustomIndicator("fixed", "constant", nil, false)
	require.NoError(t, err)

	_, err = e.CalculateRange(ind, day("2024-06-10"), day("2024-06-01"), true)
	assert.ErrorIs(t, err, calculator.ErrConfig)
}

func TestCalculateRangeDryRun(t *testing.T) {
	mem := store.NewMemoryStore()
	e := New(mem)

	ind, err := e.CreateCustomIndicator("fixed", "constant",
		map[string]any{"value": 0.2}, false)
	require.NoError(t, err)

	from, to := day("2024-06-01"), day("2024-06-05")
	report, err := e.CalculateRange(ind, from, to, false)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Succeeded, "dry run still computes every day")

	pts, err := mem.GetScores(ind.ID, from, to)
	require.NoError(t, err)
	assert.Empty(t, pts, "dry run writes nothing")
}

func TestScoreSummaryAveragesAndBands(t *testing.T) {
	mem := store.NewMemoryStore()
	e := New(mem)
	d := day("2024-06-03")

	mk := func(title string, value float64) {
		_, err := e.CreateCustomIndicator(title, "constant",
			map[string]any{"ticker": "BTCUSD", "value": value}, false)
		require.NoError(t, err)
	}
	mk("bull", 0.8)
	mk("bear", -0.5)
	mk("flat", 0.1)

	// A different ticker must not leak into the summary.
	_, err := e.CreateCustomIndicator("other", "constant",
		map[string]any{"ticker": "ETHUSD", "value": 1.0}, false)
	require.NoError(t, err)

	sum, err := e.ScoreSummary("BTCUSD", d)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.IndicatorCount)
	assert.InDelta(t, 0.1333, sum.OverallScore, 0.0001)
	assert.Equal(t, model.SentimentNeutral, sum.OverallSentiment)
	assert.Equal(t, 1, sum.BullishCount)
	assert.Equal(t, 1, sum.BearishCount)
	assert.Equal(t, 1, sum.NeutralCount)

	// Summarizing is read-only: the on-the-fly computations are not written.
	for _, ind := range mustList(t, mem) {
		pts, err := mem.GetScores(ind.ID, d, d)
		require.NoError(t, err)
		assert.Empty(t, pts, "summary must not persist scores for %q", ind.Title)
	}
}

func mustList(t *testing.T, s store.Store) []model.Indicator {
	t.Helper()
	list, err := s.ListIndicators()
	require.NoError(t, err)
	return list
}

func TestScoreSummarySkipsFailing(t *testing.T) {
	mem := store.NewMemoryStore()
	e := New(mem)
	d := day("2024-06-03")

	_, err := e.CreateCustomIndicator("ok", "constant",
		map[string]any{"ticker": "BTCUSD", "value": 0.5}, false)
	require.NoError(t, err)

	// Adapter over an empty price history fails per-indicator, not the
	// whole summary.
	_, err = e.CreateAdapterIndicator("no data", "BTCUSD", "rsi", nil, false)
	require.NoError(t, err)

	sum, err := e.ScoreSummary("BTCUSD", d)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.IndicatorCount)
	assert.Equal(t, 0.5, sum.OverallScore)
}

func TestScoreSummaryPrefersStoredScores(t *testing.T) {
	mem := store.NewMemoryStore()
	e := New(mem)
	d := day("2024-06-03")

	ind, err := e.CreateCustomIndicator("fixed", "constant",
		map[string]any{"ticker": "BTCUSD", "value": 0.5}, false)
	require.NoError(t, err)

	// A stored score wins over recomputation.
	require.NoError(t, mem.UpsertScore(ind.ID, d, -0.9))

	sum, err := e.ScoreSummary("BTCUSD", d)
	require.NoError(t, err)
	assert.Equal(t, -0.9, sum.OverallScore)
}

func TestScoreSummaryEmpty(t *testing.T) {
	e := New(store.NewMemoryStore())
	sum, err := e.ScoreSummary("BTCUSD", day("2024-06-03"))
	require.NoError(t, err)
	assert.Equal(t, 0, sum.IndicatorCount)
	assert.Equal(t, 0.0, sum.OverallScore)
	assert.Equal(t, model.SentimentNeutral, sum.OverallSentiment)
}

func TestSentimentBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.9, model.SentimentVeryBullish},
		{0.6, model.SentimentVeryBullish},
		{0.3, model.SentimentBullish},
		{0.2, model.SentimentBullish},
		{0.0, model.SentimentNeutral},
		{-0.2, model.SentimentNeutral},
		{-0.21, model.SentimentBearish},
		{-0.6, model.SentimentBearish},
		{-0.7, model.SentimentVeryBearish},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, model.ScoreToSentiment(tc.score), "score %.2f", tc.score)
	}
}
