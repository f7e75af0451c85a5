package model

import "time"

// Sentiment labels for the 5-bucket score banding.
const (
	SentimentVeryBullish = "Very Bullish"
	SentimentBullish     = "Bullish"
	SentimentNeutral     = "Neutral"
	SentimentBearish     = "Bearish"
	SentimentVeryBearish = "Very Bearish"
)

// ScoreToSentiment buckets a score into its sentiment label.
func ScoreToSentiment(score float64) string {
	switch {
	case score >= 0.6:
		return SentimentVeryBullish
	case score >= 0.2:
		return SentimentBullish
	case score >= -0.2:
		return SentimentNeutral
	case score >= -0.6:
		return SentimentBearish
	default:
		return SentimentVeryBearish
	}
}

// IndicatorScore is one indicator's contribution to a summary.
type IndicatorScore struct {
	Title     string
	Indicator string
	Score     float64
	Sentiment string
}

// Summary is the cross-indicator sentiment picture for a ticker at a date.
//
// The bullish/bearish/neutral counts deliberately use a ±0.3 cutoff while the
// sentiment label uses the ±0.2/±0.6 bands above. The two schemes come from
// the product definition and must not be unified.
type Summary struct {
	Ticker           string
	Date             time.Time
	OverallScore     float64
	OverallSentiment string
	IndicatorCount   int
	Indicators       []IndicatorScore
	BullishCount     int
	BearishCount     int
	NeutralCount     int
}
