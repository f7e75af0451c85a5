package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketMood/internal/model"
)

// SQLiteStore persists prices, indicator definitions and scores to a SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Pragmas are per-connection; a single pooled connection keeps them
	// applied (writes are serialized behind the mutex anyway).
	db.SetMaxOpenConns(1)

	// WAL mode for better concurrent read performance (dashboards read while
	// the scheduler writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prices (
			ticker TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL NOT NULL,
			high   REAL NOT NULL,
			low    REAL NOT NULL,
			close  REAL NOT NULL,
			volume REAL NOT NULL,
			PRIMARY KEY (ticker, date)
		)`,

		`CREATE TABLE IF NOT EXISTS indicators (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			title            TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			calculation_type TEXT NOT NULL,
			calculator_ref   TEXT NOT NULL,
			config           TEXT NOT NULL DEFAULT '{}',
			auto_update      INTEGER NOT NULL DEFAULT 1,
			created_at       INTEGER NOT NULL,
			updated_at       INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS indicator_data (
			indicator_id INTEGER NOT NULL REFERENCES indicators(id) ON DELETE CASCADE,
			date         TEXT NOT NULL,
			value        REAL NOT NULL,
			created_at   INTEGER NOT NULL,
			updated_at   INTEGER NOT NULL,
			PRIMARY KEY (indicator_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_indicator_data_date ON indicator_data(date)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("exec %q: %w", q[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetBars(ticker string, from, to time.Time) ([]model.PriceBar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ticker, date, open, high, low, close, volume
		FROM prices WHERE ticker = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		ticker, model.DateKey(from), model.DateKey(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var bars []model.PriceBar
	for rows.Next() {
		var b model.PriceBar
		var day string
		if err := rows.Scan(&b.Ticker, &day, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		b.Date, err = time.ParseInLocation("2006-01-02", day, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse price date %q: %w", day, err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *SQLiteStore) PutBars(bars []model.PriceBar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO prices (ticker, date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(b.Ticker, model.DateKey(b.Date), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("upsert bar %s %s: %w", b.Ticker, model.DateKey(b.Date), err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateIndicator(ind *model.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := json.Marshal(ind.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(`INSERT INTO indicators
		(title, description, calculation_type, calculator_ref, config, auto_update, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		ind.Title, ind.Description, string(ind.CalculationType), ind.CalculatorRef,
		string(cfg), boolToInt(ind.AutoUpdate), now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert indicator: %w", err)
	}
	ind.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	ind.CreatedAt = now
	ind.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) GetIndicator(id int64) (*model.Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT id, title, description, calculation_type, calculator_ref,
		config, auto_update, created_at, updated_at
		FROM indicators WHERE id = ?`, id)
	ind, err := scanIndicator(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("indicator %d: %w", id, ErrNotFound)
	}
	return ind, err
}

func (s *SQLiteStore) ListIndicators() ([]model.Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, title, description, calculation_type, calculator_ref,
		config, auto_update, created_at, updated_at
		FROM indicators ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query indicators: %w", err)
	}
	defer rows.Close()

	var out []model.Indicator
	for rows.Next() {
		ind, err := scanIndicator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ind)
	}
	return out, rows.Err()
}

// ListIndicatorsByTicker filters on the ticker inside the JSON config blob.
// The config is authoritative for ticker binding, so filtering happens after
// decode rather than with a brittle json_extract query.
func (s *SQLiteStore) ListIndicatorsByTicker(ticker string) ([]model.Indicator, error) {
	all, err := s.ListIndicators()
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

func (s *SQLiteStore) UpdateIndicator(ind *model.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := json.Marshal(ind.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(`UPDATE indicators SET
		title=?, description=?, calculation_type=?, calculator_ref=?, config=?, auto_update=?, updated_at=?
		WHERE id=?`,
		ind.Title, ind.Description, string(ind.CalculationType), ind.CalculatorRef,
		string(cfg), boolToInt(ind.AutoUpdate), now.Unix(), ind.ID,
	)
	if err != nil {
		return fmt.Errorf("update indicator: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("indicator %d: %w", ind.ID, ErrNotFound)
	}
	ind.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) DeleteIndicator(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ON DELETE CASCADE clears indicator_data.
	res, err := s.db.Exec(`DELETE FROM indicators WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete indicator: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("indicator %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) UpsertScore(indicatorID int64, date time.Time, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Unix()
	_, err := s.db.Exec(`INSERT INTO indicator_data (indicator_id, date, value, created_at, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(indicator_id, date) DO UPDATE SET
			value=excluded.value, updated_at=excluded.updated_at`,
		indicatorID, model.DateKey(date), value, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetScore(indicatorID int64, date time.Time) (*model.ScorePoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT indicator_id, date, value, created_at, updated_at
		FROM indicator_data WHERE indicator_id = ? AND date = ?`,
		indicatorID, model.DateKey(date))
	p, err := scanScore(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("score %d@%s: %w", indicatorID, model.DateKey(date), ErrNotFound)
	}
	return p, err
}

func (s *SQLiteStore) GetScores(indicatorID int64, from, to time.Time) ([]model.ScorePoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT indicator_id, date, value, created_at, updated_at
		FROM indicator_data WHERE indicator_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		indicatorID, model.DateKey(from), model.DateKey(to))
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []model.ScorePoint
	for rows.Next() {
		p, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIndicator(row rowScanner) (*model.Indicator, error) {
	var ind model.Indicator
	var calcType, cfg string
	var autoUpdate int
	var created, updated int64
	err := row.Scan(&ind.ID, &ind.Title, &ind.Description, &calcType, &ind.CalculatorRef,
		&cfg, &autoUpdate, &created, &updated)
	if err != nil {
		return nil, err
	}
	ind.CalculationType = model.CalculationType(calcType)
	ind.AutoUpdate = autoUpdate != 0
	ind.CreatedAt = time.Unix(created, 0).UTC()
	ind.UpdatedAt = time.Unix(updated, 0).UTC()
	if err := json.Unmarshal([]byte(cfg), &ind.Config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &ind, nil
}

func scanScore(row rowScanner) (*model.ScorePoint, error) {
	var p model.ScorePoint
	var day string
	var created, updated int64
	err := row.Scan(&p.IndicatorID, &day, &p.Value, &created, &updated)
	if err != nil {
		return nil, err
	}
	p.Date, err = time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse score date %q: %w", day, err)
	}
	p.CreatedAt = time.Unix(created, 0).UTC()
	p.UpdatedAt = time.Unix(updated, 0).UTC()
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
