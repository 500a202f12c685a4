package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"termometro-trader/internal/journal"
	"termometro-trader/internal/models"
)

// newAddCmd is the diary entry form: it derives the point delta,
// monetary result and discipline score and appends the trade to the
// ledger.
func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trade to the journal",
		Long: `Record a new trade in the journal.

The point delta and monetary result are derived from the entry and exit
points; use --result to record a hand-entered result instead. The
discipline score is computed under the configured policy.`,
		Example: `  termometro add --asset WINZ25 --direction COMPRA --entry 128500 --exit 128620
  termometro add --direction VENDA --entry 128700 --exit 128640 --contracts 2 --setup "PF 9.1"
  termometro add --entry 128500 --exit 128450 --direction COMPRA --broke-rules --emotional Ansioso`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			session, _, err := app.loadSession()
			if err != nil {
				output.Error("Failed to load trade ledger: %v", err)
				return err
			}

			in, err := tradeInputFromFlags(cmd, app, session.Trades())
			if err != nil {
				output.Error("%v", err)
				return err
			}

			trade, err := session.AddTrade(in)
			if err != nil {
				output.Error("Failed to add trade: %v", err)
				return err
			}

			if err := app.Ledger.Save(session.Trades()); err != nil {
				output.Error("Failed to save trade ledger: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Bold("Trade added - %s", FormatDate(trade.Date))
			output.Printf("  Asset:       %s\n", trade.Asset)
			output.Printf("  Direction:   %s\n", trade.Direction)
			output.Printf("  Entry/Exit:  %.1f -> %.1f\n", trade.EntryPrice, trade.ExitPrice)
			output.Printf("  Points:      %s\n", FormatPoints(trade.ResultPoints))
			output.Printf("  Result:      %s\n", output.FormatPnL(trade.ResultCurrency))
			output.Printf("  Discipline:  %d/100\n", trade.Discipline)
			output.Println()
			output.Success("✓ Journal saved to %s", app.Ledger.Path())
			return nil
		},
	}

	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD, default today)")
	cmd.Flags().String("asset", "", "asset symbol (default: last asset in the ledger)")
	cmd.Flags().String("direction", "COMPRA", "trade direction (COMPRA or VENDA)")
	cmd.Flags().String("setup", "", "setup label")
	cmd.Flags().Float64("entry", 0, "entry point")
	cmd.Flags().Float64("exit", 0, "exit point")
	cmd.Flags().Int("contracts", 1, "number of contracts")
	cmd.Flags().Int("operations", 1, "operations grouped in this entry (informational)")
	cmd.Flags().Float64("point-cost", 0, "monetary value per point (default from config)")
	cmd.Flags().Float64("result", 0, "hand-entered result in BRL, overriding the derived one")
	cmd.Flags().Bool("broke-rules", false, "the trade broke your rules")
	cmd.Flags().String("reason", "", "entry reason")
	cmd.Flags().String("emotional", "Neutro", "emotional state (Calmo, Confiante, Neutro, Ansioso, Com medo, Eufórico)")
	cmd.Flags().String("comments", "", "additional comments")

	return cmd
}

func tradeInputFromFlags(cmd *cobra.Command, app *App, existing []models.Trade) (journal.TradeInput, error) {
	var in journal.TradeInput

	date := time.Now()
	if v, _ := cmd.Flags().GetString("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return in, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", v)
		}
		date = t
	}
	in.Date = models.Day(date)

	asset, _ := cmd.Flags().GetString("asset")
	if asset == "" {
		asset = suggestAsset(existing, app.Config.Journal.DefaultAsset)
	}
	in.Asset = asset

	dirFlag, _ := cmd.Flags().GetString("direction")
	dir, ok := models.ParseDirection(dirFlag)
	if !ok {
		return in, fmt.Errorf("invalid --direction %q: want COMPRA or VENDA", dirFlag)
	}
	in.Direction = dir

	in.Setup, _ = cmd.Flags().GetString("setup")
	in.EntryPrice, _ = cmd.Flags().GetFloat64("entry")
	in.ExitPrice, _ = cmd.Flags().GetFloat64("exit")
	in.Contracts, _ = cmd.Flags().GetInt("contracts")
	in.Operations, _ = cmd.Flags().GetInt("operations")
	in.EntryReason, _ = cmd.Flags().GetString("reason")
	in.Emotional, _ = cmd.Flags().GetString("emotional")
	in.Comments, _ = cmd.Flags().GetString("comments")

	brokeRules, _ := cmd.Flags().GetBool("broke-rules")
	in.FollowedRules = !brokeRules

	in.PointCost, _ = cmd.Flags().GetFloat64("point-cost")
	if !cmd.Flags().Changed("point-cost") {
		in.PointCost = app.Config.Journal.DefaultPointCost
	}

	if cmd.Flags().Changed("result") {
		v, _ := cmd.Flags().GetFloat64("result")
		in.ResultOverride = &v
	}

	return in, nil
}

// suggestAsset mirrors the entry form's suggestion: the most recent
// asset in the ledger, or the configured default.
func suggestAsset(trades []models.Trade, fallback string) string {
	for i := len(trades) - 1; i >= 0; i-- {
		if trades[i].Asset != "" {
			return trades[i].Asset
		}
	}
	return fallback
}
