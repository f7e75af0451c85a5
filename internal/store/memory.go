package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"MarketMood/internal/model"
)

// MemoryStore is an in-memory Store used in tests and for dry runs.
type MemoryStore struct {
	mu         sync.Mutex
	bars       map[string]map[string]model.PriceBar // ticker -> date key -> bar
	indicators map[int64]model.Indicator
	scores     map[int64]map[string]model.ScorePoint // indicator id -> date key -> point
	nextID     int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bars:       make(map[string]map[string]model.PriceBar),
		indicators: make(map[int64]model.Indicator),
		scores:     make(map[int64]map[string]model.ScorePoint),
		nextID:     1,
	}
}

func (m *MemoryStore) GetBars(ticker string, from, to time.Time) ([]model.PriceBar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fromKey, toKey := model.DateKey(from), model.DateKey(to)
	var out []model.PriceBar
	for key, b := range m.bars[ticker] {
		if key >= fromKey && key <= toKey {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MemoryStore) PutBars(bars []model.PriceBar) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range bars {
		byDay, ok := m.bars[b.Ticker]
		if !ok {
			byDay = make(map[string]model.PriceBar)
			m.bars[b.Ticker] = byDay
		}
		byDay[model.DateKey(b.Date)] = b
	}
	return nil
}

func (m *MemoryStore) CreateIndicator(ind *model.Indicator) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	ind.ID = m.nextID
	m.nextID++
	ind.CreatedAt = now
	ind.UpdatedAt = now
	m.indicators[ind.ID] = *ind
	return nil
}

func (m *MemoryStore) GetIndicator(id int64) (*model.Indicator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ind, ok := m.indicators[id]
	if !ok {
		return nil, fmt.Errorf("indicator %d: %w", id, ErrNotFound)
	}
	return &ind, nil
}

func (m *MemoryStore) ListIndicators() ([]model.Indicator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Indicator, 0, len(m.indicators))
	for _, ind := range m.indicators {
		out = append(out, ind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListIndicatorsByTicker(ticker string) ([]model.Indicator, error) {
	all, err := m.ListIndicators()
	if err != nil {
		return nil, err
	}
	var out []model.Indicator
	for _, ind := range all {
		if ind.Ticker() == ticker {
			out = append(out, ind)
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateIndicator(ind *model.Indicator) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.indicators[ind.ID]; !ok {
		return fmt.Errorf("indicator %d: %w", ind.ID, ErrNotFound)
	}
	ind.UpdatedAt = time.Now().UTC()
	m.indicators[ind.ID] = *ind
	return nil
}

func (m *MemoryStore) DeleteIndicator(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.indicators[id]; !ok {
		return fmt.Errorf("indicator %d: %w", id, ErrNotFound)
	}
	delete(m.indicators, id)
	delete(m.scores, id)
	return nil
}

func (m *MemoryStore) UpsertScore(indicatorID int64, date time.Time, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byDay, ok := m.scores[indicatorID]
	if !ok {
		byDay = make(map[string]model.ScorePoint)
		m.scores[indicatorID] = byDay
	}
	key := model.DateKey(date)
	now := time.Now().UTC()
	p, exists := byDay[key]
	if !exists {
		p = model.ScorePoint{IndicatorID: indicatorID, Date: model.Day(date), CreatedAt: now}
	}
	p.Value = value
	p.UpdatedAt = now
	byDay[key] = p
	return nil
}

func (m *MemoryStore) GetScore(indicatorID int64, date time.Time) (*model.ScorePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.scores[indicatorID][model.DateKey(date)]
	if !ok {
		return nil, fmt.Errorf("score %d@%s: %w", indicatorID, model.DateKey(date), ErrNotFound)
	}
	return &p, nil
}

func (m *MemoryStore) GetScores(indicatorID int64, from, to time.Time) ([]model.ScorePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fromKey, toKey := model.DateKey(from), model.DateKey(to)
	var out []model.ScorePoint
	for key, p := range m.scores[indicatorID] {
		if key >= fromKey && key <= toKey {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
