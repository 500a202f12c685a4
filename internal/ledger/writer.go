package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"termometro-trader/internal/models"
)

// WriteTrades serializes trades back to the trade ledger column
// contract. Reloading the output reproduces the same records.
func WriteTrades(w io.Writer, trades []models.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TradeColumns); err != nil {
		return err
	}
	for _, t := range trades {
		discipline := ""
		if t.HasDiscipline {
			discipline = strconv.Itoa(t.Discipline)
		}
		record := []string{
			t.Date.Format("2006-01-02"),
			t.Asset,
			string(t.Direction),
			t.Setup,
			formatFloat(t.EntryPrice),
			formatFloat(t.ExitPrice),
			formatFloat(t.ResultCurrency),
			formatFloat(t.ResultPoints),
			discipline,
			yesNo(t.BrokeRules),
			t.Comments,
			strconv.Itoa(t.Contracts),
			strconv.Itoa(t.Operations),
			formatFloat(t.PointCost),
			t.EntryReason,
			t.Emotional,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveTrades atomically rewrites the trade ledger at path. The rename
// keeps a half-written file from ever replacing the ledger.
func SaveTrades(path string, trades []models.Trade) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".trades-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteTrades(tmp, trades); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteContext serializes context days to the context ledger contract.
func WriteContext(w io.Writer, days []models.ContextDay) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ContextColumns); err != nil {
		return err
	}
	for _, d := range days {
		record := []string{
			d.Date.Format("2006-01-02"),
			d.Candle9,
			d.Candle1015,
			strconv.Itoa(d.NewsRisk),
			yesNo(d.PayrollDay),
			d.Comment,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveContext atomically rewrites the context ledger at path.
func SaveContext(path string, days []models.ContextDay) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".context-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteContext(tmp, days); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "SIM"
	}
	return "NAO"
}
