// Package ledger reads and writes the CSV trade and context ledgers.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"termometro-trader/internal/models"
)

// TradeColumns is the column contract of the trade ledger, in file order.
var TradeColumns = []string{
	"data", "ativo", "direcao", "setup", "entrada", "saida",
	"resultado_r", "resultado_pts", "disciplina", "quebrou_regras",
	"comentarios", "num_contratos", "qtd_operacoes", "custo_ponto",
	"motivo_entrada", "emocional",
}

// ContextColumns is the column contract of the context ledger.
var ContextColumns = []string{
	"data", "candle9_dir", "candle1015_dir", "risco_noticias",
	"dia_de_payroll", "comentario_dia",
}

// LoadReport counts how rows were parsed. Repaired counts resultado_r
// values that could not be parsed and were substituted with 0.0.
type LoadReport struct {
	Parsed   int
	Repaired int
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// headerIndex maps column names to field positions. Missing optional
// columns simply stay absent from the map and are back-filled as empty.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return idx
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// LoadTrades parses the trade ledger at path. Rows are sorted ascending
// by date. A missing or malformed file yields a DataLoadError; the
// caller treats that as fatal since nothing downstream can run without
// the trade ledger.
func LoadTrades(path string, logger zerolog.Logger) ([]models.Trade, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()

	trades, report, err := ReadTrades(f, logger)
	if err != nil {
		return nil, nil, &DataLoadError{Path: path, Err: err}
	}
	if report.Repaired > 0 {
		logger.Warn().
			Str("path", path).
			Int("repaired", report.Repaired).
			Msg("Unparseable resultado_r values substituted with 0.0")
	}
	return trades, report, nil
}

// ReadTrades parses trade rows from r. Exported separately so the
// export round-trip can be tested without touching the filesystem.
func ReadTrades(r io.Reader, logger zerolog.Logger) ([]models.Trade, *LoadReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	idx := headerIndex(header)
	if _, ok := idx["data"]; !ok {
		return nil, nil, fmt.Errorf("header has no 'data' column")
	}

	report := &LoadReport{}
	var trades []models.Trade
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := parseDate(field(record, idx, "data"))
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}

		t := models.Trade{
			Date:        date,
			Asset:       field(record, idx, "ativo"),
			Setup:       field(record, idx, "setup"),
			Comments:    field(record, idx, "comentarios"),
			EntryReason: field(record, idx, "motivo_entrada"),
			Emotional:   field(record, idx, "emocional"),
		}

		if dir, ok := models.ParseDirection(field(record, idx, "direcao")); ok {
			t.Direction = dir
		}

		t.EntryPrice = parseFloat(field(record, idx, "entrada"), 0)
		t.ExitPrice = parseFloat(field(record, idx, "saida"), 0)
		t.ResultPoints = parseFloat(field(record, idx, "resultado_pts"), 0)
		t.PointCost = parseFloat(field(record, idx, "custo_ponto"), 0)
		t.Contracts = parseInt(field(record, idx, "num_contratos"), 1)
		t.Operations = parseInt(field(record, idx, "qtd_operacoes"), 1)

		// The journal is user-entered and may contain typos; a bad
		// resultado_r is repaired to 0.0 and counted, not rejected.
		if raw := field(record, idx, "resultado_r"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				report.Repaired++
				logger.Debug().Int("line", line).Str("value", raw).Msg("Repaired resultado_r")
			} else {
				t.ResultCurrency = v
			}
		}

		if raw := field(record, idx, "disciplina"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				t.Discipline = v
				t.HasDiscipline = true
			}
		}

		t.BrokeRules = parseYesNo(field(record, idx, "quebrou_regras"))

		trades = append(trades, t)
		report.Parsed++
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Date.Before(trades[j].Date)
	})
	return trades, report, nil
}

// LoadContext parses the context ledger at path. At most one row per
// date is meaningful; duplicates are kept and lookups take the first
// match. The file is optional: the caller degrades context-dependent
// scoring to neutral when it gets a DataLoadError.
func LoadContext(path string, logger zerolog.Logger) ([]models.ContextDay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()

	days, err := ReadContext(f)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	logger.Debug().Str("path", path).Int("days", len(days)).Msg("Context ledger loaded")
	return days, nil
}

// ReadContext parses context rows from r.
func ReadContext(r io.Reader) ([]models.ContextDay, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := headerIndex(header)
	if _, ok := idx["data"]; !ok {
		return nil, fmt.Errorf("header has no 'data' column")
	}

	var days []models.ContextDay
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := parseDate(field(record, idx, "data"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		days = append(days, models.ContextDay{
			Date:       date,
			Candle9:    field(record, idx, "candle9_dir"),
			Candle1015: field(record, idx, "candle1015_dir"),
			NewsRisk:   parseInt(field(record, idx, "risco_noticias"), 0),
			PayrollDay: parseYesNo(field(record, idx, "dia_de_payroll")),
			Comment:    field(record, idx, "comentario_dia"),
		})
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days, nil
}

// FindContext returns the first context row for the given calendar day.
func FindContext(days []models.ContextDay, date time.Time) (models.ContextDay, bool) {
	for _, d := range days {
		if models.SameDay(d.Date, date) {
			return d, true
		}
	}
	return models.ContextDay{}, false
}

func parseFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	if v < 1 && fallback >= 1 {
		return fallback
	}
	return v
}

func parseYesNo(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SIM", "YES", "TRUE", "1":
		return true
	}
	return false
}
