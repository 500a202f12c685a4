package journal

import (
	"sort"
	"strings"
	"time"

	"termometro-trader/internal/models"
)

// Filter narrows the trade set before aggregation. Zero time bounds
// leave that side open; Asset matches as a case-insensitive substring.
type Filter struct {
	From  time.Time
	To    time.Time
	Asset string
}

// ApplyFilter returns the trades within the filter, preserving order.
// An empty result is an EmptyResultError so callers can render the
// "no trades" state instead of empty tables.
func ApplyFilter(trades []models.Trade, f Filter) ([]models.Trade, error) {
	needle := strings.ToLower(strings.TrimSpace(f.Asset))
	var out []models.Trade
	for _, t := range trades {
		if !f.From.IsZero() && t.Day().Before(models.Day(f.From)) {
			continue
		}
		if !f.To.IsZero() && t.Day().After(models.Day(f.To)) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Asset), needle) {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, &EmptyResultError{Filter: f}
	}
	return out, nil
}

// SummarizeDays groups trades into one row per calendar day: profit
// sum, trade count and mean discipline. The mean only considers trades
// that carry a discipline value; when a day has none, its mean stays
// undefined rather than falling back to the trade count.
func SummarizeDays(trades []models.Trade) []models.DailySummary {
	byDay := make(map[time.Time]*models.DailySummary)
	var order []time.Time
	discSum := make(map[time.Time]float64)
	discCount := make(map[time.Time]int)

	for _, t := range trades {
		day := t.Day()
		s, ok := byDay[day]
		if !ok {
			s = &models.DailySummary{Date: day}
			byDay[day] = s
			order = append(order, day)
		}
		s.Profit += t.ResultCurrency
		s.TradeCount++
		if t.HasDiscipline {
			discSum[day] += float64(t.Discipline)
			discCount[day]++
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	out := make([]models.DailySummary, 0, len(order))
	for _, day := range order {
		s := byDay[day]
		if n := discCount[day]; n > 0 {
			s.MeanDiscipline = models.Defined(discSum[day] / float64(n))
		}
		out = append(out, *s)
	}
	return out
}
