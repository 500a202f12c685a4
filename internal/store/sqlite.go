package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"termometro-trader/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based ledger mirror.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Mirror of the trade ledger
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date DATE NOT NULL,
		asset TEXT,
		direction TEXT,
		setup TEXT,
		entry_price REAL,
		exit_price REAL,
		result_points REAL,
		result_currency REAL NOT NULL,
		discipline INTEGER,
		broke_rules INTEGER DEFAULT 0,
		comments TEXT,
		contracts INTEGER DEFAULT 1,
		operations INTEGER DEFAULT 1,
		point_cost REAL,
		entry_reason TEXT,
		emotional TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Mirror of the context ledger, one row per day
	CREATE TABLE IF NOT EXISTS context_days (
		date DATE PRIMARY KEY,
		candle9_dir TEXT,
		candle1015_dir TEXT,
		news_risk INTEGER DEFAULT 0,
		payroll_day INTEGER DEFAULT 0,
		comment TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_asset ON trades(asset);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ReplaceTrades mirrors the full CSV ledger into the database inside a
// single transaction.
func (s *SQLiteStore) ReplaceTrades(ctx context.Context, trades []models.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM trades"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades (date, asset, direction, setup, entry_price, exit_price,
			result_points, result_currency, discipline, broke_rules, comments,
			contracts, operations, point_cost, entry_reason, emotional)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range trades {
		var discipline sql.NullInt64
		if t.HasDiscipline {
			discipline = sql.NullInt64{Int64: int64(t.Discipline), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			t.Date.Format("2006-01-02"), t.Asset, string(t.Direction), t.Setup,
			t.EntryPrice, t.ExitPrice, t.ResultPoints, t.ResultCurrency,
			discipline, boolToInt(t.BrokeRules), t.Comments,
			t.Contracts, t.Operations, t.PointCost, t.EntryReason, t.Emotional)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetTrades returns archived trades matching the filter, ascending by date.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := `SELECT date, asset, direction, setup, entry_price, exit_price,
		result_points, result_currency, discipline, broke_rules, comments,
		contracts, operations, point_cost, entry_reason, emotional FROM trades`

	var conditions []string
	var args []interface{}
	if filter.Asset != "" {
		conditions = append(conditions, "asset LIKE ?")
		args = append(args, "%"+filter.Asset+"%")
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var date string
		var direction string
		var discipline sql.NullInt64
		var brokeRules int
		if err := rows.Scan(&date, &t.Asset, &direction, &t.Setup,
			&t.EntryPrice, &t.ExitPrice, &t.ResultPoints, &t.ResultCurrency,
			&discipline, &brokeRules, &t.Comments,
			&t.Contracts, &t.Operations, &t.PointCost, &t.EntryReason, &t.Emotional); err != nil {
			return nil, err
		}
		if t.Date, err = time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("invalid date in store: %w", err)
		}
		t.Direction = models.Direction(direction)
		if discipline.Valid {
			t.Discipline = int(discipline.Int64)
			t.HasDiscipline = true
		}
		t.BrokeRules = brokeRules != 0
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// ReplaceContextDays mirrors the context ledger. Duplicate dates keep
// the first row, matching the lookup rule used by the scorer.
func (s *SQLiteStore) ReplaceContextDays(ctx context.Context, days []models.ContextDay) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM context_days"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO context_days (date, candle9_dir, candle1015_dir, news_risk, payroll_day, comment)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range days {
		_, err := stmt.ExecContext(ctx,
			d.Date.Format("2006-01-02"), d.Candle9, d.Candle1015,
			d.NewsRisk, boolToInt(d.PayrollDay), d.Comment)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetContextDays returns all archived context days, ascending by date.
func (s *SQLiteStore) GetContextDays(ctx context.Context) ([]models.ContextDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, candle9_dir, candle1015_dir, news_risk, payroll_day, comment
		FROM context_days ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.ContextDay
	for rows.Next() {
		var d models.ContextDay
		var date string
		var payroll int
		if err := rows.Scan(&date, &d.Candle9, &d.Candle1015, &d.NewsRisk, &payroll, &d.Comment); err != nil {
			return nil, err
		}
		if d.Date, err = time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("invalid date in store: %w", err)
		}
		d.PayrollDay = payroll != 0
		days = append(days, d)
	}
	return days, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
