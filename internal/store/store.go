package store

import (
	"errors"
	"time"

	"MarketMood/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// PriceStore serves daily price bars for a ticker. Bars come back sorted by
// date ascending, both range bounds inclusive at day precision.
type PriceStore interface {
	GetBars(ticker string, from, to time.Time) ([]model.PriceBar, error)
	PutBars(bars []model.PriceBar) error
}

// IndicatorStore manages indicator definitions.
type IndicatorStore interface {
	CreateIndicator(ind *model.Indicator) error
	GetIndicator(id int64) (*model.Indicator, error)
	ListIndicators() ([]model.Indicator, error)
	ListIndicatorsByTicker(ticker string) ([]model.Indicator, error)
	UpdateIndicator(ind *model.Indicator) error
	// DeleteIndicator removes the indicator and all of its scores.
	DeleteIndicator(id int64) error
}

// ScoreStore persists computed sentiment scores. One score per indicator per
// day; writing the same day twice overwrites the value.
type ScoreStore interface {
	UpsertScore(indicatorID int64, date time.Time, value float64) error
	GetScore(indicatorID int64, date time.Time) (*model.ScorePoint, error)
	GetScores(indicatorID int64, from, to time.Time) ([]model.ScorePoint, error)
}

// Store is the full persistence surface.
type Store interface {
	PriceStore
	IndicatorStore
	ScoreStore
	Close() error
}
