package journal

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"termometro-trader/internal/models"
)

// Session wraps the live in-memory ledger for one CLI invocation. It
// owns the per-day state the rule-budget policy scores against, and it
// is the single writer: read ledger, compute, write ledger, in that
// order, with no interleaving.
type Session struct {
	trades    []models.Trade
	policy    Policy
	policyCfg PolicyConfig
	logger    zerolog.Logger
	dirty     bool
}

// NewSession starts a session over a loaded trade ledger.
func NewSession(trades []models.Trade, policy Policy, cfg PolicyConfig, logger zerolog.Logger) *Session {
	return &Session{
		trades:    trades,
		policy:    policy,
		policyCfg: cfg,
		logger:    logger,
	}
}

// Trades returns the session's current ledger.
func (s *Session) Trades() []models.Trade {
	return s.trades
}

// Dirty reports whether the session holds unsaved changes.
func (s *Session) Dirty() bool {
	return s.dirty
}

// TradeInput is the entry form of a new trade.
type TradeInput struct {
	Date          time.Time
	Asset         string
	Direction     models.Direction
	Setup         string
	EntryPrice    float64
	ExitPrice     float64
	Contracts     int
	Operations    int
	PointCost     float64
	FollowedRules bool
	Comments      string
	EntryReason   string
	Emotional     string

	// ResultOverride records a hand-entered monetary result instead of
	// the derived one. Slippage and fees make the two disagree.
	ResultOverride *float64
}

// AddTrade derives the new trade's result and discipline score and
// appends it to the session ledger.
func (s *Session) AddTrade(in TradeInput) (models.Trade, error) {
	if in.Date.IsZero() {
		return models.Trade{}, fmt.Errorf("trade date is required")
	}
	if in.Direction != models.DirectionBuy && in.Direction != models.DirectionSell {
		return models.Trade{}, fmt.Errorf("invalid direction %q", in.Direction)
	}
	if in.Contracts < 1 {
		in.Contracts = 1
	}
	if in.Operations < 1 {
		in.Operations = 1
	}
	if in.PointCost < 0 {
		return models.Trade{}, fmt.Errorf("point cost must be non-negative")
	}

	points, currency := ComputeResult(in.EntryPrice, in.ExitPrice, in.Direction, in.Contracts, in.PointCost)
	if in.ResultOverride != nil {
		if currency != 0 && (*in.ResultOverride > 0) != (currency > 0) {
			s.logger.Warn().
				Float64("derived", currency).
				Float64("override", *in.ResultOverride).
				Msg("Result override disagrees with the direction-adjusted point delta")
		}
		currency = *in.ResultOverride
	}

	day := s.dayState(in.Date)
	score := s.policy.Score(in.FollowedRules, currency, day, s.policyCfg)

	t := models.Trade{
		Date:           in.Date,
		Asset:          in.Asset,
		Direction:      in.Direction,
		Setup:          in.Setup,
		EntryPrice:     in.EntryPrice,
		ExitPrice:      in.ExitPrice,
		ResultCurrency: currency,
		ResultPoints:   points,
		Discipline:     score,
		HasDiscipline:  true,
		BrokeRules:     !in.FollowedRules,
		Comments:       in.Comments,
		Contracts:      in.Contracts,
		Operations:     in.Operations,
		PointCost:      in.PointCost,
		EntryReason:    in.EntryReason,
		Emotional:      in.Emotional,
	}

	s.trades = append(s.trades, t)
	s.dirty = true
	s.logger.Info().
		Str("asset", t.Asset).
		Str("direction", string(t.Direction)).
		Float64("result", t.ResultCurrency).
		Int("discipline", t.Discipline).
		Msg("Trade added to journal")
	return t, nil
}

// dayState folds the already-recorded trades of a calendar day.
func (s *Session) dayState(date time.Time) DayState {
	var day DayState
	for _, t := range s.trades {
		if models.SameDay(t.Date, date) {
			day.TradesToday++
			day.ProfitToday += t.ResultCurrency
		}
	}
	return day
}

// RecalcDiscipline recomputes every discipline score under the
// session's policy, replaying the ledger in date order so the
// rule-budget day state matches what each trade saw when it was
// entered. Returns the number of trades whose score changed.
func (s *Session) RecalcDiscipline() int {
	sort.SliceStable(s.trades, func(i, j int) bool {
		return s.trades[i].Date.Before(s.trades[j].Date)
	})

	changed := 0
	states := make(map[time.Time]*DayState)
	for i := range s.trades {
		t := &s.trades[i]
		day := t.Day()
		st, ok := states[day]
		if !ok {
			st = &DayState{}
			states[day] = st
		}

		score := s.policy.Score(!t.BrokeRules, t.ResultCurrency, *st, s.policyCfg)
		if !t.HasDiscipline || t.Discipline != score {
			t.Discipline = score
			t.HasDiscipline = true
			changed++
		}

		st.TradesToday++
		st.ProfitToday += t.ResultCurrency
	}

	if changed > 0 {
		s.dirty = true
	}
	s.logger.Info().
		Str("policy", s.policy.Name()).
		Int("changed", changed).
		Msg("Discipline scores recalculated")
	return changed
}
