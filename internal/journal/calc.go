// Package journal implements the equity and discipline scoring
// pipeline: trade result derivation, daily aggregation, the equity
// curve, performance statistics and the daily thermometer score.
package journal

import (
	"fmt"

	"termometro-trader/internal/models"
)

// ComputeResult derives the point delta and monetary result of a
// single trade. A SELL profits when the exit is below the entry.
// Operations-per-trade is informational metadata and never enters
// this computation.
func ComputeResult(entry, exit float64, dir models.Direction, contracts int, pointCost float64) (points, currency float64) {
	if contracts < 1 {
		contracts = 1
	}
	if dir == models.DirectionSell {
		points = entry - exit
	} else {
		points = exit - entry
	}
	currency = points * float64(contracts) * pointCost
	return points, currency
}

// DayState is the session-wide state of one trading day, as it stands
// before a candidate trade is added.
type DayState struct {
	TradesToday int
	ProfitToday float64
}

// PolicyConfig carries the limits consulted by the rule-budget policy.
type PolicyConfig struct {
	MaxTradesPerDay   int
	DailyProfitTarget float64
	MaxDailyLoss      float64
}

// Policy scores the discipline of a trade on a 0-100 scale. result is
// the trade's monetary outcome; day is the state of its calendar day
// before the trade is counted.
type Policy interface {
	Name() string
	Score(followedRules bool, result float64, day DayState, cfg PolicyConfig) int
}

// SimplePolicy is the classic four-bucket rating: rule adherence
// dominates, outcome shifts within the band.
type SimplePolicy struct{}

func (SimplePolicy) Name() string { return "simple" }

func (SimplePolicy) Score(followedRules bool, result float64, _ DayState, _ PolicyConfig) int {
	if followedRules {
		if result >= 0 {
			return 90
		}
		return 80
	}
	if result >= 0 {
		return 60
	}
	return 30
}

// BinaryPolicy collapses the rating to rule adherence, with the
// outcome only splitting the undisciplined band.
type BinaryPolicy struct{}

func (BinaryPolicy) Name() string { return "binary" }

func (BinaryPolicy) Score(followedRules bool, result float64, _ DayState, _ PolicyConfig) int {
	if followedRules {
		return 90
	}
	if result > 0 {
		return 60
	}
	return 30
}

// RuleBudgetPolicy starts every trade at 100 and charges it for
// rule breaks and for session limits breached by the day the trade
// lands in: overtrading past the daily max, blowing through the max
// daily loss, or continuing to trade past the profit target.
type RuleBudgetPolicy struct{}

func (RuleBudgetPolicy) Name() string { return "rule_budget" }

func (RuleBudgetPolicy) Score(followedRules bool, result float64, day DayState, cfg PolicyConfig) int {
	score := 100
	if !followedRules {
		score -= 30
	}

	tradesAfter := day.TradesToday + 1
	if cfg.MaxTradesPerDay > 0 && tradesAfter > cfg.MaxTradesPerDay {
		score -= 30
	}

	profitAfter := day.ProfitToday + result
	if profitAfter <= cfg.MaxDailyLoss && score > 30 {
		score = 30
	}
	if cfg.DailyProfitTarget > 0 && profitAfter >= cfg.DailyProfitTarget && score > 90 {
		score = 90
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// PolicyByName resolves a configured policy name. The rule-budget
// policy is the canonical default.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "rule_budget":
		return RuleBudgetPolicy{}, nil
	case "simple":
		return SimplePolicy{}, nil
	case "binary":
		return BinaryPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown discipline policy %q (want rule_budget, simple or binary)", name)
}
