package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"MarketMood/internal/calculator"
	"MarketMood/internal/settings"
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Manage indicator definitions",
	Long: `List, create and delete indicator definitions.

Subcommands:
  list    - Show all indicators
  create  - Define a new indicator
  delete  - Remove an indicator and its scores

Examples:
  mood indicators create rsi --title "BTC RSI" --ticker BTCUSD
  mood indicators create macd --title "BTC MACD" --ticker BTCUSD --settings '{"fast_periods":10}'
  mood indicators create volatility --title "BTC vol" --ticker BTCUSD --custom
  mood indicators delete 3`,
}

var indicatorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all indicators",
	Args:  cobra.NoArgs,
	RunE:  runIndicatorsList,
}

var indicatorsCreateCmd = &cobra.Command{
	Use:   "create <indicator-name>",
	Short: "Define a new indicator",
	Long: fmt.Sprintf(`Define a new indicator for a ticker.

By default <indicator-name> refers to a technical indicator (%s).
With --custom it refers to a dedicated calculator (%s).`,
		strings.Join(settings.Names(), ", "),
		strings.Join(calculator.Tags(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runIndicatorsCreate,
}

var indicatorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an indicator and its scores",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndicatorsDelete,
}

var (
	createTitle    string
	createTicker   string
	createSettings string
	createCustom   bool
	createAuto     bool
)

func init() {
	rootCmd.AddCommand(indicatorsCmd)
	indicatorsCmd.AddCommand(indicatorsListCmd)
	indicatorsCmd.AddCommand(indicatorsCreateCmd)
	indicatorsCmd.AddCommand(indicatorsDeleteCmd)

	indicatorsCreateCmd.Flags().StringVar(&createTitle, "title", "", "display title (required)")
	indicatorsCreateCmd.Flags().StringVar(&createTicker, "ticker", "", "asset ticker (default from config)")
	indicatorsCreateCmd.Flags().StringVar(&createSettings, "settings", "", "indicator parameters as JSON")
	indicatorsCreateCmd.Flags().BoolVar(&createCustom, "custom", false, "treat the name as a dedicated calculator tag")
	indicatorsCreateCmd.Flags().BoolVar(&createAuto, "auto", true, "include in scheduled auto-updates")
	indicatorsCreateCmd.MarkFlagRequired("title")
}

func runIndicatorsList(cmd *cobra.Command, args []string) error {
	_, st, _, err := openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.ListIndicators()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no indicators defined")
		return nil
	}

	fmt.Printf("%-4s %-30s %-8s %-16s %-10s %s\n", "ID", "TITLE", "TYPE", "CALCULATOR", "TICKER", "AUTO")
	for _, ind := range list {
		fmt.Printf("%-4d %-30s %-8s %-16s %-10s %v\n",
			ind.ID, ind.Title, ind.CalculationType, ind.CalculatorRef, ind.Ticker(), ind.AutoUpdate)
	}
	return nil
}

func runIndicatorsCreate(cmd *cobra.Command, args []string) error {
	eng, st, cfg, err := openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	ticker := createTicker
	if ticker == "" {
		ticker = cfg.Market.DefaultTicker
	}

	var params map[string]any
	if createSettings != "" {
		if err := json.Unmarshal([]byte(createSettings), &params); err != nil {
			return fmt.Errorf("parse --settings: %w", err)
		}
	}

	name := args[0]
	if createCustom {
		ccfg := map[string]any{"ticker": ticker}
		for k, v := range params {
			ccfg[k] = v
		}
		ind, err := eng.CreateCustomIndicator(createTitle, name, ccfg, createAuto)
		if err != nil {
			return err
		}
		fmt.Printf("created indicator %d: %s (%s)\n", ind.ID, ind.Title, name)
		return nil
	}

	ind, err := eng.CreateAdapterIndicator(createTitle, ticker, name, params, createAuto)
	if err != nil {
		return err
	}
	fmt.Printf("created indicator %d: %s (%s on %s)\n", ind.ID, ind.Title, name, ticker)
	return nil
}

func runIndicatorsDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("indicator id %q: %w", args[0], err)
	}

	_, st, _, err := openEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteIndicator(id); err != nil {
		return err
	}
	fmt.Printf("deleted indicator %d and its scores\n", id)
	return nil
}
