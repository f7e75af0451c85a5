package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"MarketMood/internal/engine"
	"MarketMood/internal/model"
	"MarketMood/internal/store"
)

// Scheduler refreshes auto-update indicators on a cron schedule.
type Scheduler struct {
	Cron         *cron.Cron
	Engine       *engine.Engine
	Store        store.Store
	BackfillDays int
	Ctx          context.Context
}

// NewScheduler creates a new Scheduler. backfillDays is the trailing window
// each update run recomputes, so late-arriving price bars still get scored.
func NewScheduler(ctx context.Context, eng *engine.Engine, st store.Store, backfillDays int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Engine:       eng,
		Store:        st,
		BackfillDays: backfillDays,
		Ctx:          ctx,
	}
}

// Register registers the periodic update task.
func (s *Scheduler) Register(updateCron string) error {
	if _, err := s.Cron.AddFunc(updateCron, s.updateTask); err != nil {
		return fmt.Errorf("register update task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunUpdateNow executes the update task immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunUpdateNow() {
	s.updateTask()
}

func (s *Scheduler) updateTask() {
	log.Println("[INFO] running indicator update")
	if err := s.Ctx.Err(); err != nil {
		log.Printf("[WARN] update skipped: %v", err)
		return
	}

	indicators, err := s.Store.ListIndicators()
	if err != nil {
		log.Printf("[ERROR] list indicators: %v", err)
		return
	}

	to := model.Day(time.Now().UTC())
	from := to.AddDate(0, 0, -s.BackfillDays)

	updated := 0
	for i := range indicators {
		ind := &indicators[i]
		if !ind.AutoUpdate {
			continue
		}
		report, err := s.Engine.CalculateRange(ind, from, to, true)
		if err != nil {
			log.Printf("[ERROR] update indicator %d (%s): %v", ind.ID, ind.Title, err)
			continue
		}
		updated++
		if report.Failed > 0 {
			log.Printf("[WARN] indicator %d (%s): %d of %d days failed",
				ind.ID, ind.Title, report.Failed, len(report.Entries))
		}
	}
	log.Printf("[INFO] indicator update done: %d indicators refreshed", updated)
}
