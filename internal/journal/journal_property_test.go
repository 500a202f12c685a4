package journal

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"termometro-trader/internal/models"
)

// summariesGen generates a consecutive run of daily summaries with
// bounded profits, one row per calendar day.
func summariesGen(maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, gen.Float64Range(-500, 500)).Map(func(profits []float64) []models.DailySummary {
		start := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
		days := make([]models.DailySummary, len(profits))
		for i, p := range profits {
			days[i] = models.DailySummary{
				Date:       start.AddDate(0, 0, i),
				Profit:     p,
				TradeCount: 1,
			}
		}
		return days
	})
}

// TestProperty_EquityFinalBalance tests that the equity fold conserves
// money: the final balance is the initial balance plus the sum of every
// day's profit.
func TestProperty_EquityFinalBalance(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Final balance equals initial plus total profit", prop.ForAll(
		func(days []models.DailySummary, initial float64) bool {
			equity := BuildEquity(days, initial)
			if len(days) == 0 {
				return len(equity) == 0
			}

			var total float64
			for _, d := range days {
				total += d.Profit
			}
			final := equity[len(equity)-1].BalanceEnd
			return math.Abs(final-(initial+total)) < 1e-6
		},
		summariesGen(40),
		gen.Float64Range(0, 10000),
	))

	properties.TestingRun(t)
}

// TestProperty_EquityChaining tests that each day opens exactly where
// the previous day closed and that dates never run backwards.
func TestProperty_EquityChaining(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Balances chain across rows and dates are ordered", prop.ForAll(
		func(days []models.DailySummary, initial float64) bool {
			equity := BuildEquity(days, initial)
			for i, row := range equity {
				if math.Abs(row.BalanceEnd-(row.BalanceStart+row.Profit)) > 1e-9 {
					return false
				}
				if i == 0 {
					if row.BalanceStart != initial {
						return false
					}
					continue
				}
				if row.BalanceStart != equity[i-1].BalanceEnd {
					return false
				}
				if row.Date.Before(equity[i-1].Date) {
					return false
				}
			}
			return true
		},
		summariesGen(40),
		gen.Float64Range(0, 10000),
	))

	properties.TestingRun(t)
}

// TestProperty_ReturnPctDefinedness tests that a day's return
// percentage is defined exactly when its opening balance is non-zero.
func TestProperty_ReturnPctDefinedness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Return percent defined iff opening balance non-zero", prop.ForAll(
		func(days []models.DailySummary, initial float64) bool {
			equity := BuildEquity(days, initial)
			for _, row := range equity {
				if (row.BalanceStart != 0) != row.ReturnPct.Valid {
					return false
				}
				if row.ReturnPct.Valid {
					want := row.Profit / row.BalanceStart * 100
					if math.Abs(row.ReturnPct.Value-want) > 1e-9 {
						return false
					}
				}
			}
			return true
		},
		summariesGen(40),
		gen.Float64Range(0, 10000),
	))

	properties.TestingRun(t)
}

// TestProperty_ThermometerWithinBounds tests that the composite score
// stays in [0, 100] for any discipline mean, day return and context.
func TestProperty_ThermometerWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	date := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	properties.Property("Thermometer score is within [0, 100]", prop.ForAll(
		func(disc, pct float64, candle9Buy, candle1015Buy, hasContext bool, risk int) bool {
			equity := []models.EquityRow{{
				Date:           date,
				MeanDiscipline: models.Defined(disc),
				ReturnPct:      models.Defined(pct),
			}}
			var context []models.ContextDay
			if hasContext {
				c9, c1015 := "VENDA", "VENDA"
				if candle9Buy {
					c9 = "COMPRA"
				}
				if candle1015Buy {
					c1015 = "COMPRA"
				}
				context = []models.ContextDay{{Date: date, Candle9: c9, Candle1015: c1015, NewsRisk: risk}}
			}

			th, err := ComputeThermometer(equity, context, date, DefaultWeights())
			if err != nil {
				return false
			}
			return th.Score >= 0 && th.Score <= 100
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(-50, 50),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

// TestProperty_NewsRiskSpansRiskWeight tests that moving the news risk
// from 0 to 10 costs exactly the full risk weight.
func TestProperty_NewsRiskSpansRiskWeight(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	date := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	properties.Property("Risk 0 scores the full weight more than risk 10", prop.ForAll(
		func(disc, pct float64) bool {
			equity := []models.EquityRow{{
				Date:           date,
				MeanDiscipline: models.Defined(disc),
				ReturnPct:      models.Defined(pct),
			}}
			calm := []models.ContextDay{{Date: date, Candle9: "COMPRA", Candle1015: "COMPRA", NewsRisk: 0}}
			loud := []models.ContextDay{{Date: date, Candle9: "COMPRA", Candle1015: "COMPRA", NewsRisk: 10}}

			w := DefaultWeights()
			a, err := ComputeThermometer(equity, calm, date, w)
			if err != nil {
				return false
			}
			b, err := ComputeThermometer(equity, loud, date, w)
			if err != nil {
				return false
			}
			return a.RiskScore == w.Risk && b.RiskScore == 0 &&
				math.Abs(a.RiskScore-b.RiskScore-w.Risk) < 1e-9
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(-50, 50),
	))

	properties.TestingRun(t)
}

// TestProperty_OperationsNeverAffectResult tests that the
// operations-per-trade count is inert in the result computation.
func TestProperty_OperationsNeverAffectResult(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Result depends on entry, exit, direction, contracts and point cost only", prop.ForAll(
		func(entry, exit, pointCost float64, contracts, operations int, sell bool) bool {
			dir := models.DirectionBuy
			if sell {
				dir = models.DirectionSell
			}

			points, currency := ComputeResult(entry, exit, dir, contracts, pointCost)

			wantPoints := exit - entry
			if sell {
				wantPoints = entry - exit
			}
			n := contracts
			if n < 1 {
				n = 1
			}
			wantCurrency := wantPoints * float64(n) * pointCost
			return points == wantPoints && currency == wantCurrency
		},
		gen.Float64Range(1, 200000),
		gen.Float64Range(1, 200000),
		gen.Float64Range(0, 25),
		gen.IntRange(-2, 50),
		gen.IntRange(1, 30),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestProperty_PolicyScoresWithinBounds tests that every discipline
// policy stays on the 0-100 scale for any day state.
func TestProperty_PolicyScoresWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	policies := []Policy{RuleBudgetPolicy{}, SimplePolicy{}, BinaryPolicy{}}
	cfg := PolicyConfig{MaxTradesPerDay: 5, DailyProfitTarget: 200, MaxDailyLoss: -70}

	properties.Property("Discipline scores are within [0, 100]", prop.ForAll(
		func(followed bool, result, profitToday float64, tradesToday int) bool {
			day := DayState{TradesToday: tradesToday, ProfitToday: profitToday}
			for _, p := range policies {
				score := p.Score(followed, result, day, cfg)
				if score < 0 || score > 100 {
					return false
				}
			}
			return true
		},
		gen.Bool(),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}
