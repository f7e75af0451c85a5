package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var summaryDate string

var summaryCmd = &cobra.Command{
	Use:   "summary [ticker]",
	Short: "Aggregate a ticker's indicators into one sentiment",
	Long: `Print the market sentiment summary for a ticker on a date.

Without a ticker the configured default is used; without --date, today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "date to summarize (YYYY-MM-DD, default today)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	eng, st, cfg, err := openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	ticker := cfg.Market.DefaultTicker
	if len(args) == 1 {
		ticker = args[0]
	}

	date := time.Now().UTC()
	if summaryDate != "" {
		date, err = time.ParseInLocation("2006-01-02", summaryDate, time.UTC)
		if err != nil {
			return fmt.Errorf("date %q: %w", summaryDate, err)
		}
	}

	sum, err := eng.ScoreSummary(ticker, date)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n", sum.Ticker, sum.Date.Format("2006-01-02"))
	if sum.IndicatorCount == 0 {
		fmt.Println("no indicators produced a score")
		return nil
	}

	for _, is := range sum.Indicators {
		fmt.Printf("  %-30s %-16s %+.4f  %s\n", is.Title, is.Indicator, is.Score, is.Sentiment)
	}
	fmt.Printf("\nOverall: %+.4f  %s  (%d bullish / %d bearish / %d neutral)\n",
		sum.OverallScore, sum.OverallSentiment,
		sum.BullishCount, sum.BearishCount, sum.NeutralCount)
	return nil
}
