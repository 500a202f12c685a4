package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesTemplateWithDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	// First run writes a template config for the user to edit.
	_, statErr := os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, statErr)

	assert.Equal(t, "trades.csv", cfg.Journal.TradesFile)
	assert.Equal(t, "contexto_dia.csv", cfg.Journal.ContextFile)
	assert.Equal(t, 200.0, cfg.Journal.InitialBalance)
	assert.Equal(t, "WINZ25", cfg.Journal.DefaultAsset)
	assert.Equal(t, 0.20, cfg.Journal.DefaultPointCost)

	assert.Equal(t, "rule_budget", cfg.Discipline.Policy)
	assert.Equal(t, 5, cfg.Discipline.MaxTradesPerDay)
	assert.Equal(t, 200.0, cfg.Discipline.DailyProfitTarget)
	assert.Equal(t, -70.0, cfg.Discipline.MaxDailyLoss)

	assert.False(t, cfg.Store.Enabled)
	assert.True(t, cfg.UI.ColorEnabled)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `[journal]
trades_file = "meu_diario.csv"
initial_balance = 500.0

[discipline]
policy = "simple"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "meu_diario.csv", cfg.Journal.TradesFile)
	assert.Equal(t, 500.0, cfg.Journal.InitialBalance)
	assert.Equal(t, "simple", cfg.Discipline.Policy)
	// Unset keys keep their defaults.
	assert.Equal(t, "contexto_dia.csv", cfg.Journal.ContextFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TERMOMETRO_TRADES_FILE", "/tmp/outro.csv")
	t.Setenv("TERMOMETRO_INITIAL_BALANCE", "1500")
	t.Setenv("TERMOMETRO_POLICY", "binary")
	t.Setenv("TERMOMETRO_DB", "/tmp/ledger.db")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/outro.csv", cfg.Journal.TradesFile)
	assert.Equal(t, 1500.0, cfg.Journal.InitialBalance)
	assert.Equal(t, "binary", cfg.Discipline.Policy)
	assert.True(t, cfg.Store.Enabled)
	assert.Equal(t, "/tmp/ledger.db", cfg.Store.Path)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Journal: JournalConfig{
				TradesFile:     "trades.csv",
				InitialBalance: 200,
			},
			Discipline: DisciplineConfig{
				Policy:          "rule_budget",
				MaxTradesPerDay: 5,
				MaxDailyLoss:    -70,
			},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown policy", func(c *Config) { c.Discipline.Policy = "strict" }},
		{"negative balance", func(c *Config) { c.Journal.InitialBalance = -1 }},
		{"zero max trades", func(c *Config) { c.Discipline.MaxTradesPerDay = 0 }},
		{"positive loss limit", func(c *Config) { c.Discipline.MaxDailyLoss = 50 }},
		{"negative profit target", func(c *Config) { c.Discipline.DailyProfitTarget = -1 }},
		{"empty trades file", func(c *Config) { c.Journal.TradesFile = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
