package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"termometro-trader/internal/journal"
)

// newReportCmd renders the overview: account cards, performance
// metrics, per-day summary and per-asset breakdown.
func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Performance report over the filtered trades",
		Long:  "Account overview, performance statistics and the per-day summary.",
		Example: `  termometro report
  termometro report --from 2025-11-01 --to 2025-11-30
  termometro report --asset WIN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			filter, err := parseFilter(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			session, report, err := app.loadSession()
			if err != nil {
				output.Error("Failed to load trade ledger: %v", err)
				return err
			}
			if report.Repaired > 0 {
				output.Warning("%d result value(s) could not be parsed and were counted as R$ 0,00.", report.Repaired)
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
			stats := journal.ComputeStats(trades, days, equity, app.Config.Journal.InitialBalance)

			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Visão Geral")
			output.Printf("  Banca inicial:     %s\n", FormatBRL(stats.InitialBalance))
			output.Printf("  Banca atual:       %s (%s)\n", FormatBRL(stats.FinalBalance), output.FormatPnL(stats.TotalProfit))
			output.Printf("  %% acumulado:       %s\n", FormatMetricPercent(stats.TotalReturnPct))
			output.Printf("  Total de trades:   %d\n", stats.TotalTrades)
			output.Println()

			output.Printf("  Ganho último dia:  %s (%s)\n", output.FormatPnL(stats.LastDay.Profit), FormatMetricPercent(stats.LastDay.ReturnPct))
			output.Printf("  Ganho no mês:      %s\n", output.FormatPnL(stats.MonthProfit))
			output.Printf("  Ganho no ano:      %s\n", output.FormatPnL(stats.YearProfit))
			output.Println()

			output.Bold("Performance")
			output.Printf("  Fator de lucro:    %s\n", FormatRatio(stats.ProfitFactor))
			output.Printf("  Expectativa:       %s por trade\n", FormatBRL(stats.Expectancy))
			output.Printf("  %% acerto (trades): %.2f%% (%d W / %d L)\n", stats.WinRate, stats.Wins, stats.Losses)
			output.Printf("  %% acerto diário:   %.2f%% (%d dias positivos)\n", stats.DailyWinRate, stats.PositiveDays)
			output.Printf("  Média win/loss:    %s / %s\n", FormatBRL(stats.AvgWin), FormatBRL(stats.AvgLoss))
			output.Printf("  Maior win/loss:    %s / %s\n", FormatBRL(stats.LargestWin), FormatBRL(stats.LargestLoss))
			output.Printf("  Disciplina média:  %s\n", FormatMetric(stats.MeanDiscipline))
			output.Printf("  Ativo mais tradado: %s\n", stats.MostTradedAsset)
			if stats.BestAsset != journal.AssetSentinel {
				output.Printf("  Ativo mais lucrativo: %s (%s)\n", stats.BestAsset, output.FormatPnL(stats.BestAssetProfit))
			} else {
				output.Printf("  Ativo mais lucrativo: %s\n", journal.AssetSentinel)
			}
			output.Println()

			output.Bold("Resumo por dia")
			table := NewTable(output, "Data", "Lucro do dia", "% do dia", "Trades", "Disciplina")
			for _, row := range equity {
				table.AddRow(
					FormatDate(row.Date),
					output.FormatPnL(row.Profit),
					FormatMetricPercent(row.ReturnPct),
					itoa(row.TradeCount),
					FormatMetric(row.MeanDiscipline),
				)
			}
			table.Render()
			output.Println()

			breakdown := journal.BreakdownByAsset(trades)
			if len(breakdown) > 1 {
				output.Bold("Por ativo")
				assetTable := NewTable(output, "Ativo", "Trades", "Resultado", "% acerto")
				for _, b := range breakdown {
					assetTable.AddRow(
						b.Asset,
						itoa(b.Trades),
						output.FormatPnL(b.Profit),
						fmt.Sprintf("%.0f%%", b.WinRate),
					)
				}
				assetTable.Render()
			}

			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}
