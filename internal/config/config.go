// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Journal    JournalConfig    `mapstructure:"journal"`
	Discipline DisciplineConfig `mapstructure:"discipline"`
	Store      StoreConfig      `mapstructure:"store"`
	UI         UIConfig         `mapstructure:"ui"`
}

// JournalConfig holds the ledger paths and account constants.
type JournalConfig struct {
	TradesFile       string  `mapstructure:"trades_file"`
	ContextFile      string  `mapstructure:"context_file"`
	InitialBalance   float64 `mapstructure:"initial_balance"`
	DefaultAsset     string  `mapstructure:"default_asset"`
	DefaultPointCost float64 `mapstructure:"default_point_cost"`
}

// DisciplineConfig selects the scoring policy and its session limits.
type DisciplineConfig struct {
	Policy            string  `mapstructure:"policy"` // rule_budget, simple, binary
	MaxTradesPerDay   int     `mapstructure:"max_trades_per_day"`
	DailyProfitTarget float64 `mapstructure:"daily_profit_target"`
	MaxDailyLoss      float64 `mapstructure:"max_daily_loss"`
}

// StoreConfig controls the optional SQLite mirror of the ledgers.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/termometro"
	}
	return filepath.Join(home, ".config", "termometro")
}

// Load loads configuration from the specified directory. If configDir
// is empty, the default config directory is used; a template config is
// created on first run.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("journal.trades_file", "trades.csv")
	v.SetDefault("journal.context_file", "contexto_dia.csv")
	v.SetDefault("journal.initial_balance", 200.0)
	v.SetDefault("journal.default_asset", "WINZ25")
	v.SetDefault("journal.default_point_cost", 0.20)

	v.SetDefault("discipline.policy", "rule_budget")
	v.SetDefault("discipline.max_trades_per_day", 5)
	v.SetDefault("discipline.daily_profit_target", 200.0)
	v.SetDefault("discipline.max_daily_loss", -70.0)

	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", filepath.Join(configDir, "termometro.db"))

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TERMOMETRO_TRADES_FILE"); v != "" {
		cfg.Journal.TradesFile = v
	}
	if v := os.Getenv("TERMOMETRO_CONTEXT_FILE"); v != "" {
		cfg.Journal.ContextFile = v
	}
	if v := os.Getenv("TERMOMETRO_INITIAL_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Journal.InitialBalance = f
		}
	}
	if v := os.Getenv("TERMOMETRO_POLICY"); v != "" {
		cfg.Discipline.Policy = v
	}
	if v := os.Getenv("TERMOMETRO_DB"); v != "" {
		cfg.Store.Enabled = true
		cfg.Store.Path = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Discipline.Policy {
	case "rule_budget", "simple", "binary":
	default:
		return fmt.Errorf("invalid discipline policy: %s (must be rule_budget, simple or binary)", c.Discipline.Policy)
	}

	if c.Journal.InitialBalance < 0 {
		return fmt.Errorf("initial_balance must be non-negative")
	}
	if c.Journal.DefaultPointCost < 0 {
		return fmt.Errorf("default_point_cost must be non-negative")
	}
	if c.Discipline.MaxTradesPerDay < 1 {
		return fmt.Errorf("max_trades_per_day must be at least 1")
	}
	if c.Discipline.MaxDailyLoss > 0 {
		return fmt.Errorf("max_daily_loss must be zero or negative")
	}
	if c.Discipline.DailyProfitTarget < 0 {
		return fmt.Errorf("daily_profit_target must be non-negative")
	}
	if c.Journal.TradesFile == "" {
		return fmt.Errorf("trades_file must not be empty")
	}
	return nil
}
