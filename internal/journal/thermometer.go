package journal

import (
	"fmt"
	"math"
	"time"

	"termometro-trader/internal/ledger"
	"termometro-trader/internal/models"
)

// Weights distribute the 100 thermometer points across the four
// sub-scores.
type Weights struct {
	Discipline float64
	Result     float64
	Direction  float64
	Risk       float64
}

// DefaultWeights returns the canonical 40/30/20/10 split.
func DefaultWeights() Weights {
	return Weights{Discipline: 40, Result: 30, Direction: 20, Risk: 10}
}

// Status buckets for the composite score.
const (
	StatusCold      = "Frio / Perigoso"
	StatusNeutral   = "Neutro"
	StatusHot       = "Quente (Bom dia)"
	StatusExcellent = "Excelente (Dia redondinho)"
)

// Thermometer is the composite daily score and its breakdown.
type Thermometer struct {
	Date             time.Time
	Score            float64
	Status           string
	DisciplineScore  float64
	ResultScore      float64
	DirectionScore   float64
	RiskScore        float64
	HasContext       bool
	ContextCaption   string
}

// ComputeThermometer scores one calendar day from its equity row and,
// when available, its context row. A pure function of its inputs: no
// state survives between calls.
func ComputeThermometer(equity []models.EquityRow, context []models.ContextDay, date time.Time, w Weights) (*Thermometer, error) {
	var row *models.EquityRow
	for i := range equity {
		if models.SameDay(equity[i].Date, date) {
			row = &equity[i]
			break
		}
	}
	if row == nil {
		return nil, &NoEquityForDateError{Date: date}
	}

	th := &Thermometer{Date: models.Day(date)}

	// Discipline: mean 0-100 scaled to its weight; undefined means 0.
	th.DisciplineScore = row.MeanDiscipline.Or(0) / 100 * w.Discipline

	// Result: day return clamped to [-10, 10] then mapped piecewise
	// linearly onto [0, weight]: >= +2% is a full score, <= -5% is 0.
	pct := clamp(row.ReturnPct.Or(0), -10, 10)
	switch {
	case pct >= 2:
		th.ResultScore = w.Result
	case pct <= -5:
		th.ResultScore = 0
	default:
		th.ResultScore = (pct + 5) / 7 * w.Result
	}

	th.ContextCaption = "Sem contexto de Candle 9 / 10:15 / risco para este dia."
	if ctx, ok := ledger.FindContext(context, date); ok {
		th.HasContext = true

		if ctx.Candle9 == ctx.Candle1015 {
			th.DirectionScore = w.Direction
		} else {
			th.DirectionScore = w.Direction / 2
		}

		risk := clamp(float64(ctx.NewsRisk), 0, 10)
		th.RiskScore = (10 - risk) / 10 * w.Risk

		payroll := "NAO"
		if ctx.PayrollDay {
			payroll = "SIM"
		}
		th.ContextCaption = fmt.Sprintf(
			"Candle 9: %s | Candle 10:15: %s | Risco notícias: %d/10 | Payroll: %s | Comentário: %s",
			ctx.Candle9, ctx.Candle1015, ctx.NewsRisk, payroll, ctx.Comment)
	}

	total := th.DisciplineScore + th.ResultScore + th.DirectionScore + th.RiskScore
	th.Score = math.Round(total*10) / 10
	th.Status = statusFor(th.Score)
	return th, nil
}

func statusFor(score float64) string {
	switch {
	case score < 30:
		return StatusCold
	case score < 60:
		return StatusNeutral
	case score < 80:
		return StatusHot
	default:
		return StatusExcellent
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
