package journal

import (
	"sort"

	"termometro-trader/internal/models"
)

// Stats are the portfolio-level aggregates over a filtered trade set.
// Metrics whose denominator is empty stay undefined and render as a
// dash; they are never silently reported as zero.
type Stats struct {
	TotalTrades int
	Wins        int
	Losses      int

	WinRate      float64
	DailyWinRate float64
	PositiveDays int
	TotalDays    int

	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor models.Metric
	Expectancy   float64
	AvgWin       float64
	AvgLoss      float64
	LargestWin   float64
	LargestLoss  float64

	InitialBalance float64
	FinalBalance   float64
	TotalProfit    float64
	TotalReturnPct models.Metric

	LastDay          models.EquityRow
	MonthProfit      float64
	YearProfit       float64
	MeanDiscipline   models.Metric
	MostTradedAsset  string
	BestAsset        string
	BestAssetProfit  float64
}

// AssetSentinel is rendered when the asset column is absent or empty.
const AssetSentinel = "–"

// ComputeStats aggregates the filtered trades and their derived equity
// rows. equity must be non-empty and built from the same trade set.
func ComputeStats(trades []models.Trade, days []models.DailySummary, equity []models.EquityRow, initialBalance float64) Stats {
	s := Stats{
		TotalTrades:     len(trades),
		InitialBalance:  initialBalance,
		MostTradedAsset: AssetSentinel,
		BestAsset:       AssetSentinel,
	}

	var discSum float64
	var discCount int
	assetTrades := make(map[string]int)
	assetProfit := make(map[string]float64)

	for _, t := range trades {
		r := t.ResultCurrency
		if r > 0 {
			s.Wins++
			s.GrossProfit += r
			if r > s.LargestWin {
				s.LargestWin = r
			}
		} else if r < 0 {
			s.Losses++
			s.GrossLoss += r
			if r < s.LargestLoss {
				s.LargestLoss = r
			}
		}
		if t.HasDiscipline {
			discSum += float64(t.Discipline)
			discCount++
		}
		if t.Asset != "" {
			assetTrades[t.Asset]++
			assetProfit[t.Asset] += r
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	}
	if discCount > 0 {
		s.MeanDiscipline = models.Defined(discSum / float64(discCount))
	}

	// Profit factor is undefined when there is no loss to divide by.
	if s.GrossLoss < 0 {
		s.ProfitFactor = models.Defined(s.GrossProfit / -s.GrossLoss)
	}

	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	if s.TotalTrades > 0 {
		probWin := float64(s.Wins) / float64(s.TotalTrades)
		s.Expectancy = probWin*s.AvgWin + (1-probWin)*s.AvgLoss
	}

	s.TotalDays = len(days)
	for _, d := range days {
		if d.Profit > 0 {
			s.PositiveDays++
		}
	}
	if s.TotalDays > 0 {
		s.DailyWinRate = float64(s.PositiveDays) / float64(s.TotalDays) * 100
	}

	if len(equity) > 0 {
		last := equity[len(equity)-1]
		s.LastDay = last
		s.FinalBalance = last.BalanceEnd
		s.TotalProfit = s.FinalBalance - initialBalance
		if initialBalance != 0 {
			s.TotalReturnPct = models.Defined(s.TotalProfit / initialBalance * 100)
		}

		// Month and year rollups are keyed to the last equity row.
		refYear, refMonth, _ := last.Date.Date()
		for _, row := range equity {
			y, m, _ := row.Date.Date()
			if y == refYear {
				s.YearProfit += row.Profit
				if m == refMonth {
					s.MonthProfit += row.Profit
				}
			}
		}
	}

	maxCount := 0
	for asset, n := range assetTrades {
		if n > maxCount || (n == maxCount && asset < s.MostTradedAsset) {
			maxCount = n
			s.MostTradedAsset = asset
		}
	}
	best := false
	for asset, p := range assetProfit {
		if !best || p > s.BestAssetProfit || (p == s.BestAssetProfit && asset < s.BestAsset) {
			best = true
			s.BestAssetProfit = p
			s.BestAsset = asset
		}
	}

	return s
}

// AssetBreakdown is the per-asset report row.
type AssetBreakdown struct {
	Asset   string
	Trades  int
	Profit  float64
	Wins    int
	WinRate float64
}

// BreakdownByAsset summarizes trades per asset, ordered by profit
// descending for the report view.
func BreakdownByAsset(trades []models.Trade) []AssetBreakdown {
	byAsset := make(map[string]*AssetBreakdown)
	var order []string
	for _, t := range trades {
		asset := t.Asset
		if asset == "" {
			asset = AssetSentinel
		}
		b, ok := byAsset[asset]
		if !ok {
			b = &AssetBreakdown{Asset: asset}
			byAsset[asset] = b
			order = append(order, asset)
		}
		b.Trades++
		b.Profit += t.ResultCurrency
		if t.ResultCurrency > 0 {
			b.Wins++
		}
	}

	out := make([]AssetBreakdown, 0, len(order))
	for _, asset := range order {
		b := byAsset[asset]
		if b.Trades > 0 {
			b.WinRate = float64(b.Wins) / float64(b.Trades) * 100
		}
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit > out[j].Profit })
	return out
}
