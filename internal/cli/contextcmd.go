package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"termometro-trader/internal/ledger"
	"termometro-trader/internal/models"
)

// newContextCmd manages the daily market-context ledger.
func newContextCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Daily market-context ledger",
		Long:  "Record and review the per-day market backdrop used by the thermometer.",
	}

	cmd.AddCommand(newContextAddCmd(app))
	cmd.AddCommand(newContextListCmd(app))
	return cmd
}

func newContextAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a day's market context",
		Example: `  termometro context add --candle9 ALTA --candle1015 ALTA --news-risk 2
  termometro context add --date 2025-11-21 --candle9 BAIXA --candle1015 ALTA --news-risk 8 --payroll`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			path := app.Config.Journal.ContextFile
			if path == "" {
				err := fmt.Errorf("no context_file configured")
				output.Error("%v", err)
				return err
			}

			date := time.Now()
			if v, _ := cmd.Flags().GetString("date"); v != "" {
				t, err := time.Parse("2006-01-02", v)
				if err != nil {
					output.Error("Invalid --date %q: want YYYY-MM-DD", v)
					return err
				}
				date = t
			}

			newsRisk, _ := cmd.Flags().GetInt("news-risk")
			if newsRisk < 0 || newsRisk > 10 {
				err := fmt.Errorf("--news-risk must be between 0 and 10")
				output.Error("%v", err)
				return err
			}

			day := models.ContextDay{Date: models.Day(date), NewsRisk: newsRisk}
			day.Candle9, _ = cmd.Flags().GetString("candle9")
			day.Candle1015, _ = cmd.Flags().GetString("candle1015")
			day.PayrollDay, _ = cmd.Flags().GetBool("payroll")
			day.Comment, _ = cmd.Flags().GetString("comment")

			days, err := ledger.LoadContext(path, app.Logger)
			if err != nil {
				// A missing context ledger is created on first add.
				var loadErr *ledger.DataLoadError
				if !errors.As(err, &loadErr) || !os.IsNotExist(loadErr.Err) {
					output.Error("Failed to load context ledger: %v", err)
					return err
				}
			}

			// One row per date: replace an existing entry for the day.
			replaced := false
			for i := range days {
				if models.SameDay(days[i].Date, day.Date) {
					days[i] = day
					replaced = true
					break
				}
			}
			if !replaced {
				days = append(days, day)
			}

			if err := ledger.SaveContext(path, days); err != nil {
				output.Error("Failed to save context ledger: %v", err)
				return err
			}

			if replaced {
				output.Success("✓ Context for %s updated", FormatDate(day.Date))
			} else {
				output.Success("✓ Context for %s recorded", FormatDate(day.Date))
			}
			return nil
		},
	}

	cmd.Flags().String("date", "", "context date (YYYY-MM-DD, default today)")
	cmd.Flags().String("candle9", "", "direction of the 9:00 candle (e.g. ALTA, BAIXA, LATERAL)")
	cmd.Flags().String("candle1015", "", "direction of the 10:15 candle")
	cmd.Flags().Int("news-risk", 0, "news risk for the day (0-10, 0 = no risk)")
	cmd.Flags().Bool("payroll", false, "payroll day")
	cmd.Flags().String("comment", "", "day comment")

	return cmd
}

func newContextListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded context days",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			days, err := ledger.LoadContext(app.Config.Journal.ContextFile, app.Logger)
			if err != nil {
				output.Info("No context ledger available.")
				return nil
			}

			if output.IsJSON() {
				return output.JSON(days)
			}

			output.Bold("Contexto de mercado")
			table := NewTable(output, "Data", "Candle 9", "Candle 10:15", "Risco", "Payroll", "Comentário")
			for _, d := range days {
				payroll := "NAO"
				if d.PayrollDay {
					payroll = "SIM"
				}
				table.AddRow(
					FormatDate(d.Date),
					d.Candle9,
					d.Candle1015,
					fmt.Sprintf("%d/10", d.NewsRisk),
					payroll,
					TruncateString(d.Comment, 40),
				)
			}
			table.Render()
			return nil
		},
	}
}
