// Package store provides the optional SQLite mirror of the ledgers.
package store

import (
	"context"
	"time"

	"termometro-trader/internal/models"
)

// Store archives trade and context records so the journal survives a
// corrupted CSV and supports filtered queries. The CSV ledger remains
// the canonical interchange format; the mirror is rebuilt from it.
type Store interface {
	ReplaceTrades(ctx context.Context, trades []models.Trade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	ReplaceContextDays(ctx context.Context, days []models.ContextDay) error
	GetContextDays(ctx context.Context) ([]models.ContextDay, error)
	Close() error
}

// TradeFilter represents filters for querying archived trades.
type TradeFilter struct {
	Asset     string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
