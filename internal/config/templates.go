package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Termômetro do Trader Configuration

[journal]
# Trade ledger CSV (columns: data, ativo, direcao, setup, entrada, saida,
# resultado_r, resultado_pts, disciplina, quebrou_regras, comentarios,
# num_contratos, qtd_operacoes, custo_ponto, motivo_entrada, emocional)
trades_file = "trades.csv"
# Optional daily market context ledger
context_file = "contexto_dia.csv"
# Starting account balance in BRL
initial_balance = 200.0
# Asset suggested by the entry form when the ledger is empty
default_asset = "WINZ25"
# Monetary value of one point, per contract
default_point_cost = 0.20

[discipline]
# Scoring policy: rule_budget, simple or binary
policy = "rule_budget"
# Trades past this count in a day are penalized (rule_budget only)
max_trades_per_day = 5
# Day profit at or above this caps the score at 90 (rule_budget only)
daily_profit_target = 200.0
# Day loss at or below this caps the score at 30 (rule_budget only)
max_daily_loss = -70.0

[store]
# Mirror the ledgers into a SQLite database via 'termometro sync'
enabled = false
# path = "/home/user/.config/termometro/termometro.db"

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
`

// createTemplateConfig writes the config template on first run.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
