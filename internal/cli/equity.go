package cli

import (
	"github.com/spf13/cobra"

	"termometro-trader/internal/journal"
)

// newEquityCmd renders the equity curve as a table, one row per
// trading day.
func newEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the equity curve",
		Long:  "Per-day balance progression with compounding percentage returns.",
		Example: `  termometro equity
  termometro equity --from 2025-11-01 --asset WIN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			filter, err := parseFilter(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			session, _, err := app.loadSession()
			if err != nil {
				output.Error("Failed to load trade ledger: %v", err)
				return err
			}

			trades, err := journal.ApplyFilter(session.Trades(), filter)
			if err != nil {
				if renderEmptyResult(output, err) {
					return nil
				}
				return err
			}

			days := journal.SummarizeDays(trades)
			equity := journal.BuildEquity(days, app.Config.Journal.InitialBalance)

			if output.IsJSON() {
				return output.JSON(equity)
			}

			output.Bold("Equity Curve")
			table := NewTable(output, "Data", "Banca início", "Lucro do dia", "Banca fim", "% do dia", "Trades")
			for _, row := range equity {
				table.AddRow(
					FormatDate(row.Date),
					FormatBRL(row.BalanceStart),
					output.FormatPnL(row.Profit),
					FormatBRL(row.BalanceEnd),
					FormatMetricPercent(row.ReturnPct),
					itoa(row.TradeCount),
				)
			}
			table.Render()

			last := equity[len(equity)-1]
			output.Println()
			output.Printf("  Banca final: %s (%s desde o início)\n",
				FormatBRL(last.BalanceEnd),
				output.FormatPnL(last.BalanceEnd-app.Config.Journal.InitialBalance))
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}
