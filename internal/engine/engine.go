package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"MarketMood/internal/calculator"
	"MarketMood/internal/model"
	"MarketMood/internal/store"
)

// Engine ties indicator definitions to calculators and persisted scores.
type Engine struct {
	store store.Store
}

func New(st store.Store) *Engine {
	return &Engine{store: st}
}

// NewCalculator builds the calculator an indicator definition describes.
// Custom indicators name a registered calculator tag; adapter indicators name
// an entry in the settings registry.
func (e *Engine) NewCalculator(ind *model.Indicator) (calculator.Calculator, error) {
	cfg := calculator.Config(ind.Config)
	switch ind.CalculationType {
	case model.CalculationCustom:
		return calculator.New(ind.CalculatorRef, e.store, cfg)
	case model.CalculationAdapter:
		if cfg.String("indicator_name", "") == "" {
			merged := calculator.Config{}
			for k, v := range cfg {
				merged[k] = v
			}
			merged["indicator_name"] = ind.CalculatorRef
			cfg = merged
		}
		return calculator.NewTAAdapter(e.store, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown calculation type %q",
			calculator.ErrConfig, ind.CalculationType)
	}
}

// CalculateValue computes the indicator's score for one date. It does not
// write anything; score persistence belongs to CalculateRange.
func (e *Engine) CalculateValue(ind *model.Indicator, date time.Time) (float64, error) {
	calc, err := e.NewCalculator(ind)
	if err != nil {
		return 0, err
	}
	return calc.Calculate(date)
}

// RangeEntry is the outcome for one date of a range run.
type RangeEntry struct {
	Date  time.Time
	Value float64
	Err   error
}

// RangeReport describes a whole range run. Failed dates stay in Entries with
// their error; the run never aborts on a single bad day.
type RangeReport struct {
	RunID       uuid.UUID
	IndicatorID int64
	From, To    time.Time
	Entries     []RangeEntry
	Succeeded   int
	Failed      int
}

// CalculateRange computes scores for every day in [from, to], upserting each
// one when save is true (a dry run with save false only reports). A failing
// day is recorded and skipped. The only hard errors are a broken
// configuration (no calculator can be built) or an inverted range.
func (e *Engine) CalculateRange(ind *model.Indicator, from, to time.Time, save bool) (*RangeReport, error) {
	fromDay, toDay := model.Day(from), model.Day(to)
	if toDay.Before(fromDay) {
		return nil, fmt.Errorf("%w: range end %s before start %s",
			calculator.ErrConfig, model.DateKey(toDay), model.DateKey(fromDay))
	}

	calc, err := e.NewCalculator(ind)
	if err != nil {
		return nil, err
	}

	report := &RangeReport{
		RunID:       uuid.New(),
		IndicatorID: ind.ID,
		From:        fromDay,
		To:          toDay,
	}

	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		value, err := calc.Calculate(day)
		if err == nil && save {
			err = e.store.UpsertScore(ind.ID, day, value)
		}
		if err != nil {
			report.Failed++
			report.Entries = append(report.Entries, RangeEntry{Date: day, Err: err})
			continue
		}
		report.Succeeded++
		report.Entries = append(report.Entries, RangeEntry{Date: day, Value: value})
	}

	log.Printf("[INFO] range run %s: indicator %d %s..%s, %d ok / %d failed",
		report.RunID, ind.ID, model.DateKey(fromDay), model.DateKey(toDay),
		report.Succeeded, report.Failed)
	return report, nil
}

// ScoreSummary aggregates all of a ticker's indicators into a market
// sentiment snapshot for one date. Stored scores are reused; missing ones are
// computed for the snapshot but not written back — range runs own the score
// table. Indicators that fail are skipped.
func (e *Engine) ScoreSummary(ticker string, date time.Time) (*model.Summary, error) {
	day := model.Day(date)

	indicators, err := e.store.ListIndicatorsByTicker(ticker)
	if err != nil {
		return nil, fmt.Errorf("list indicators: %w", err)
	}

	summary := &model.Summary{
		Ticker: ticker,
		Date:   day,
	}

	total := 0.0
	for i := range indicators {
		ind := &indicators[i]
		value, err := e.scoreFor(ind, day)
		if err != nil {
			log.Printf("[WARN] summary: indicator %d (%s) skipped: %v", ind.ID, ind.Title, err)
			continue
		}

		summary.Indicators = append(summary.Indicators, model.IndicatorScore{
			Title:     ind.Title,
			Indicator: ind.CalculatorRef,
			Score:     value,
			Sentiment: model.ScoreToSentiment(value),
		})
		total += value

		// Per-indicator bull/bear counting uses a single ±0.3 band, unlike
		// the five-band overall label. Keep them separate.
		switch {
		case value > 0.3:
			summary.BullishCount++
		case value < -0.3:
			summary.BearishCount++
		default:
			summary.NeutralCount++
		}
	}

	summary.IndicatorCount = len(summary.Indicators)
	if summary.IndicatorCount > 0 {
		summary.OverallScore = total / float64(summary.IndicatorCount)
	}
	summary.OverallSentiment = model.ScoreToSentiment(summary.OverallScore)
	return summary, nil
}

// scoreFor returns the stored score for the date, computing it (without
// saving) when absent.
func (e *Engine) scoreFor(ind *model.Indicator, day time.Time) (float64, error) {
	p, err := e.store.GetScore(ind.ID, day)
	if err == nil {
		return p.Value, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}
	return e.CalculateValue(ind, day)
}
