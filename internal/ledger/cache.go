package ledger

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"termometro-trader/internal/models"
)

// Cache avoids re-parsing an unchanged trade ledger between renders.
// Entries are keyed by the file's modification time and size and are
// invalidated whenever the ledger is rewritten through the cache.
type Cache struct {
	mu      sync.Mutex
	path    string
	logger  zerolog.Logger
	modTime time.Time
	size    int64
	trades  []models.Trade
	report  *LoadReport
}

// NewCache creates a cache for the trade ledger at path.
func NewCache(path string, logger zerolog.Logger) *Cache {
	return &Cache{path: path, logger: logger}
}

// Path returns the ledger path backing the cache.
func (c *Cache) Path() string {
	return c.path
}

// Load returns the ledger contents, re-parsing only when the file
// changed since the last load.
func (c *Cache) Load() ([]models.Trade, *LoadReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(c.path)
	if err != nil {
		return nil, nil, &DataLoadError{Path: c.path, Err: err}
	}
	if c.trades != nil && info.ModTime().Equal(c.modTime) && info.Size() == c.size {
		c.logger.Debug().Str("path", c.path).Msg("Ledger served from cache")
		return c.trades, c.report, nil
	}

	trades, report, err := LoadTrades(c.path, c.logger)
	if err != nil {
		return nil, nil, err
	}
	c.trades = trades
	c.report = report
	c.modTime = info.ModTime()
	c.size = info.Size()
	return trades, report, nil
}

// Save rewrites the ledger and invalidates the cached copy.
func (c *Cache) Save(trades []models.Trade) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := SaveTrades(c.path, trades); err != nil {
		return err
	}
	c.trades = nil
	c.report = nil
	return nil
}
