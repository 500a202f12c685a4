// Package models defines the core data types of the trading journal.
package models

import "time"

// Direction is the side of a trade.
type Direction string

const (
	DirectionBuy  Direction = "COMPRA"
	DirectionSell Direction = "VENDA"
)

// ParseDirection normalizes a direction string from the ledger.
// Both Portuguese and English spellings are accepted.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "COMPRA", "BUY", "compra", "buy":
		return DirectionBuy, true
	case "VENDA", "SELL", "venda", "sell":
		return DirectionSell, true
	}
	return "", false
}

// EmotionalStates are the moods offered by the entry form.
var EmotionalStates = []string{"Calmo", "Confiante", "Neutro", "Ansioso", "Com medo", "Eufórico"}

// Trade is one executed trade in the journal.
type Trade struct {
	Date           time.Time
	Asset          string
	Direction      Direction
	Setup          string
	EntryPrice     float64
	ExitPrice      float64
	ResultCurrency float64
	ResultPoints   float64
	Discipline     int
	HasDiscipline  bool
	BrokeRules     bool
	Comments       string
	Contracts      int
	Operations     int // informational only, never part of the result
	PointCost      float64
	EntryReason    string
	Emotional      string
}

// Day returns the trade's calendar day, truncated to midnight UTC.
func (t Trade) Day() time.Time {
	return Day(t.Date)
}

// Day truncates a timestamp to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// ContextDay is one calendar day's market backdrop.
type ContextDay struct {
	Date       time.Time
	Candle9    string
	Candle1015 string
	NewsRisk   int // 0-10, 0 = no risk
	PayrollDay bool
	Comment    string
}

// Metric is an optionally-defined float metric. Divisions with an empty
// or zero denominator produce an invalid Metric instead of NaN; the
// presentation layer renders invalid metrics as a dash.
type Metric struct {
	Value float64
	Valid bool
}

// Defined returns a valid metric.
func Defined(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Undefined returns the undefined-metric sentinel.
func Undefined() Metric {
	return Metric{}
}

// Or returns the metric's value, or fallback when undefined.
func (m Metric) Or(fallback float64) float64 {
	if m.Valid {
		return m.Value
	}
	return fallback
}

// DailySummary aggregates the trades of a single calendar day.
type DailySummary struct {
	Date           time.Time
	Profit         float64
	TradeCount     int
	MeanDiscipline Metric
}

// EquityRow is one step of the equity curve.
type EquityRow struct {
	Date           time.Time
	Profit         float64
	TradeCount     int
	MeanDiscipline Metric
	BalanceStart   float64
	BalanceEnd     float64
	ReturnPct      Metric
}
