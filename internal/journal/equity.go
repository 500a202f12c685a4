package journal

import "termometro-trader/internal/models"

// BuildEquity folds daily summaries into the equity curve. The fold is
// strictly sequential in ascending date order: each day's starting
// balance is the previous day's ending balance, so a change to any
// earlier day invalidates every later row. Do not parallelize or
// memoize per row.
func BuildEquity(days []models.DailySummary, initialBalance float64) []models.EquityRow {
	rows := make([]models.EquityRow, 0, len(days))
	balance := initialBalance
	for _, d := range days {
		row := models.EquityRow{
			Date:           d.Date,
			Profit:         d.Profit,
			TradeCount:     d.TradeCount,
			MeanDiscipline: d.MeanDiscipline,
			BalanceStart:   balance,
		}
		balance += d.Profit
		row.BalanceEnd = balance
		if row.BalanceStart != 0 {
			row.ReturnPct = models.Defined(d.Profit / row.BalanceStart * 100)
		}
		rows = append(rows, row)
	}
	return rows
}
