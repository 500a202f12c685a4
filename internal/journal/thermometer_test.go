package journal

import (
	"errors"
	"math"
	"strings"
	"testing"

	"termometro-trader/internal/models"
)

func TestComputeThermometerWithContext(t *testing.T) {
	date := day(2025, 11, 3)
	equity := []models.EquityRow{{
		Date:           date,
		MeanDiscipline: models.Defined(80),
		ReturnPct:      models.Defined(3),
	}}
	context := []models.ContextDay{{
		Date:       date,
		Candle9:    "COMPRA",
		Candle1015: "COMPRA",
		NewsRisk:   2,
		Comment:    "dia calmo",
	}}

	th, err := ComputeThermometer(equity, context, date, DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}

	// 80/100*40 + 30 (>=2%) + 20 (aligned) + (10-2)/10*10 = 32+30+20+8
	if th.Score != 90.0 {
		t.Errorf("score = %v, want 90.0", th.Score)
	}
	if th.Status != StatusExcellent {
		t.Errorf("status = %q, want %q", th.Status, StatusExcellent)
	}
	if th.DisciplineScore != 32 || th.ResultScore != 30 || th.DirectionScore != 20 || th.RiskScore != 8 {
		t.Errorf("breakdown = %v/%v/%v/%v", th.DisciplineScore, th.ResultScore, th.DirectionScore, th.RiskScore)
	}
	if !th.HasContext || !strings.Contains(th.ContextCaption, "Risco notícias: 2/10") {
		t.Errorf("caption = %q", th.ContextCaption)
	}
}

func TestComputeThermometerWithoutContext(t *testing.T) {
	date := day(2025, 11, 3)
	equity := []models.EquityRow{{
		Date:           date,
		MeanDiscipline: models.Defined(90),
		ReturnPct:      models.Defined(1),
	}}

	th, err := ComputeThermometer(equity, nil, date, DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}

	// Direction and risk contribute nothing without a context row.
	if th.DirectionScore != 0 || th.RiskScore != 0 {
		t.Errorf("context scores = %v/%v, want 0/0", th.DirectionScore, th.RiskScore)
	}
	// 90/100*40 + (1+5)/7*30 = 36 + 25.714... -> 61.7
	if th.Score != 61.7 {
		t.Errorf("score = %v, want 61.7", th.Score)
	}
	if th.Status != StatusHot {
		t.Errorf("status = %q, want %q", th.Status, StatusHot)
	}
	if th.HasContext || !strings.Contains(th.ContextCaption, "Sem contexto") {
		t.Errorf("caption = %q", th.ContextCaption)
	}
}

func TestComputeThermometerResultMapping(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want float64
	}{
		{"at or above two percent is full", 2, 30},
		{"large gain clamps to full", 9, 30},
		{"clamp above ten", 50, 30},
		{"at minus five is zero", -5, 0},
		{"below minus five is zero", -8, 0},
		{"clamp below minus ten", -40, 0},
		{"breakeven day", 0, 5.0 / 7 * 30},
		{"one percent", 1, 6.0 / 7 * 30},
	}

	date := day(2025, 11, 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equity := []models.EquityRow{{Date: date, ReturnPct: models.Defined(tt.pct)}}
			th, err := ComputeThermometer(equity, nil, date, DefaultWeights())
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(th.ResultScore-tt.want) > 1e-9 {
				t.Errorf("result score = %v, want %v", th.ResultScore, tt.want)
			}
		})
	}
}

func TestComputeThermometerMisalignedCandles(t *testing.T) {
	date := day(2025, 11, 3)
	equity := []models.EquityRow{{Date: date}}
	context := []models.ContextDay{{Date: date, Candle9: "COMPRA", Candle1015: "VENDA", NewsRisk: 10}}

	th, err := ComputeThermometer(equity, context, date, DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}
	if th.DirectionScore != 10 {
		t.Errorf("direction score = %v, want half weight 10", th.DirectionScore)
	}
	if th.RiskScore != 0 {
		t.Errorf("risk score = %v, want 0 at maximum risk", th.RiskScore)
	}
}

func TestComputeThermometerNoEquityRow(t *testing.T) {
	equity := []models.EquityRow{{Date: day(2025, 11, 3)}}

	_, err := ComputeThermometer(equity, nil, day(2025, 11, 4), DefaultWeights())
	var noEquity *NoEquityForDateError
	if !errors.As(err, &noEquity) {
		t.Fatalf("want NoEquityForDateError, got %v", err)
	}
	if !noEquity.Date.Equal(day(2025, 11, 4)) {
		t.Errorf("error date = %v", noEquity.Date)
	}
}

func TestStatusBuckets(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, StatusCold},
		{29.9, StatusCold},
		{30, StatusNeutral},
		{59.9, StatusNeutral},
		{60, StatusHot},
		{79.9, StatusHot},
		{80, StatusExcellent},
		{100, StatusExcellent},
	}
	for _, tt := range tests {
		if got := statusFor(tt.score); got != tt.want {
			t.Errorf("statusFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
