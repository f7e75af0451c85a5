package model

import "time"

// PriceBar represents a single daily OHLCV bar for a ticker.
type PriceBar struct {
	Ticker string
	Date   time.Time // day precision, UTC
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Day truncates t to UTC midnight. All engine dates are day-precision.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats a day as the canonical YYYY-MM-DD storage key.
func DateKey(t time.Time) string {
	return Day(t).Format("2006-01-02")
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// Closes extracts the close series from bars, oldest to newest.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
