package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"MarketMood/internal/scheduler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scoring daemon",
	Long: `Start the scheduler and keep auto-update indicators scored.

Each cron tick recomputes every auto-update indicator over a trailing
backfill window, so late price corrections are re-scored. Stops cleanly on
SIGINT/SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketMood starting...")

	eng, st, cfg, err := openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, eng, st, cfg.Schedule.BackfillDays)
	if err := sched.Register(cfg.Schedule.UpdateCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Schedule.RunOnStart {
		log.Println("[INFO] run_on_start enabled, executing update now")
		go sched.RunUpdateNow()
	}

	log.Println("[INFO] MarketMood is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketMood stopped")
	return nil
}
