package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"termometro-trader/internal/journal"
)

// newThermometerCmd scores one trading day on the 0-100 composite
// scale blending discipline, result, direction alignment and news risk.
func newThermometerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thermometer [date]",
		Short: "Daily temperature score",
		Long: `Compute the composite daily temperature for a trading day.

The score blends four weighted sub-scores: discipline (40), day result
(30), market-direction alignment (20) and news risk (10). Direction and
risk come from the context ledger and degrade to zero without it.
Defaults to the most recent trading day in the filtered set.`,
		Example: `  termometro thermometer
  termometro thermometer 2025-11-21
  termometro thermometer --asset WIN 2025-11-21`,
		Args: cobra.MaximumNArgs(1),
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

			date := equity[len(equity)-1].Date
			if len(args) > 0 {
				date, err = time.Parse("2006-01-02", args[0])
				if err != nil {
					output.Error("Invalid date %q: want YYYY-MM-DD", args[0])
					return err
				}
			}

			context := app.loadContextDays()

			th, err := journal.ComputeThermometer(equity, context, date, journal.DefaultWeights())
			if err != nil {
				var noEquity *journal.NoEquityForDateError
				if errors.As(err, &noEquity) {
					output.Warning("No equity data for %s in the filtered set.", FormatDate(noEquity.Date))
					return nil
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(th)
			}

			output.Bold("Termômetro do Trader - %s", FormatDate(th.Date))
			output.Println()
			output.Printf("  Temperatura do dia: %s\n", temperatureLabel(output, th))
			output.Printf("  %s\n", thermometerBar(th.Score))
			output.Println()

			output.Bold("Contribuições")
			output.Printf("  Disciplina (peso 40): %5.1f\n", th.DisciplineScore)
			output.Printf("  Resultado  (peso 30): %5.1f\n", th.ResultScore)
			output.Printf("  Direção    (peso 20): %5.1f\n", th.DirectionScore)
			output.Printf("  Risco      (peso 10): %5.1f\n", th.RiskScore)
			output.Println()
			output.Dim("%s", th.ContextCaption)
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func temperatureLabel(output *Output, th *journal.Thermometer) string {
	label := fmt.Sprintf("%.1f/100 - %s", th.Score, th.Status)
	switch {
	case th.Score < 30:
		return output.Red(label)
	case th.Score < 60:
		return output.Yellow(label)
	default:
		return output.Green(label)
	}
}

// thermometerBar renders the score as a 25-cell progress bar.
func thermometerBar(score float64) string {
	const width = 25
	filled := int(score / 100 * width)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
