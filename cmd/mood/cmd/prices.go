package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"MarketMood/internal/model"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Manage price history",
}

var pricesImportCmd = &cobra.Command{
	Use:   "import <ticker> <csv-file>",
	Short: "Import daily bars from a CSV file",
	Long: `Import daily price bars for a ticker from a CSV file.

Expected columns: date (YYYY-MM-DD), open, high, low, close, volume.
A header row is detected and skipped. Existing days are overwritten.`,
	Args: cobra.ExactArgs(2),
	RunE: runPricesImport,
}

func init() {
	rootCmd.AddCommand(pricesCmd)
	pricesCmd.AddCommand(pricesImportCmd)
}

func runPricesImport(cmd *cobra.Command, args []string) error {
	ticker, path := args[0], args[1]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 6

	var bars []model.PriceBar
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read csv: %w", err)
		}
		line++

		date, err := time.ParseInLocation("2006-01-02", rec[0], time.UTC)
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return fmt.Errorf("line %d: bad date %q: %w", line, rec[0], err)
		}

		vals := make([]float64, 5)
		for i := 0; i < 5; i++ {
			vals[i], err = strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return fmt.Errorf("line %d: bad number %q: %w", line, rec[i+1], err)
			}
		}

		bars = append(bars, model.PriceBar{
			Ticker: ticker,
			Date:   date,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}

	if len(bars) == 0 {
		return fmt.Errorf("%s: no bars found", path)
	}

	_, st, _, err := openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.PutBars(bars); err != nil {
		return fmt.Errorf("store bars: %w", err)
	}
	fmt.Printf("imported %d bars for %s (%s .. %s)\n",
		len(bars), ticker,
		bars[0].Date.Format("2006-01-02"),
		bars[len(bars)-1].Date.Format("2006-01-02"))
	return nil
}
