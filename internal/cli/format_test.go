package cli

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"termometro-trader/internal/models"
)

// TestBrazilianCurrencyFormatExamples tests specific examples of
// Brazilian currency formatting.
func TestBrazilianCurrencyFormatExamples(t *testing.T) {
	testCases := []struct {
		amount   float64
		expected string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 1,00"},
		{10, "R$ 10,00"},
		{100, "R$ 100,00"},
		{1000, "R$ 1.000,00"},
		{10000, "R$ 10.000,00"},
		{100000, "R$ 100.000,00"},
		{1000000, "R$ 1.000.000,00"},
		{1234.56, "R$ 1.234,56"},
		{-1234.56, "-R$ 1.234,56"},
		{200.5, "R$ 200,50"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := FormatBRL(tc.amount)
			if result != tc.expected {
				t.Errorf("FormatBRL(%f) = %s, want %s", tc.amount, result, tc.expected)
			}
		})
	}
}

// TestProperty_BrazilianCurrencyFormatting checks the shape of the
// formatted amount for any input.
func TestProperty_BrazilianCurrencyFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatBRL produces valid Brazilian format", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			formatted := FormatBRL(amount)

			// Prefix: R$ for non-negative, -R$ for negative.
			if amount >= 0 {
				if !strings.HasPrefix(formatted, "R$ ") {
					t.Logf("Expected R$ prefix for %f, got %s", amount, formatted)
					return false
				}
			} else if !strings.HasPrefix(formatted, "-R$ ") {
				t.Logf("Expected -R$ prefix for %f, got %s", amount, formatted)
				return false
			}

			// Exactly two digits after the comma.
			parts := strings.Split(formatted, ",")
			if len(parts) != 2 || len(parts[1]) != 2 {
				t.Logf("Expected 2 decimals for %f, got %s", amount, formatted)
				return false
			}

			// Dot-grouped thousands: 1-3 digits, then groups of 3.
			numPart := strings.TrimPrefix(parts[0], "-")
			numPart = strings.TrimPrefix(numPart, "R$ ")
			brPattern := regexp.MustCompile(`^\d{1,3}(\.\d{3})*$`)
			if !brPattern.MatchString(numPart) {
				t.Logf("Invalid grouping for %f: %s", amount, formatted)
				return false
			}

			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("FormatBRL preserves value", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			parsed := parseBRL(FormatBRL(amount))
			rounded := math.Round(amount*100) / 100
			return math.Abs(parsed-rounded) <= 0.01
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}

// parseBRL parses a Brazilian-formatted currency string back to float64.
func parseBRL(s string) float64 {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "R$ ")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	var parsed float64
	for i, c := range s {
		if c == '.' {
			decPart := s[i+1:]
			for j, d := range decPart {
				if d >= '0' && d <= '9' {
					parsed += float64(d-'0') / math.Pow(10, float64(j+1))
				}
			}
			break
		}
		if c >= '0' && c <= '9' {
			parsed = parsed*10 + float64(c-'0')
		}
	}

	if negative {
		parsed = -parsed
	}
	return parsed
}

// TestFormatPercentExamples tests specific examples of percentage
// formatting.
func TestFormatPercentExamples(t *testing.T) {
	testCases := []struct {
		value    float64
		expected string
	}{
		{0, "0.00%"},
		{1.5, "+1.50%"},
		{-2.5, "-2.50%"},
		{100, "+100.00%"},
		{-100, "-100.00%"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := FormatPercent(tc.value)
			if result != tc.expected {
				t.Errorf("FormatPercent(%f) = %s, want %s", tc.value, result, tc.expected)
			}
		})
	}
}

func TestFormatMetricRendersDash(t *testing.T) {
	if got := FormatMetricBRL(models.Undefined()); got != MetricDash {
		t.Errorf("FormatMetricBRL(undefined) = %s, want %s", got, MetricDash)
	}
	if got := FormatMetricPercent(models.Undefined()); got != MetricDash {
		t.Errorf("FormatMetricPercent(undefined) = %s, want %s", got, MetricDash)
	}
	if got := FormatRatio(models.Undefined()); got != MetricDash {
		t.Errorf("FormatRatio(undefined) = %s, want %s", got, MetricDash)
	}
	if got := FormatRatio(models.Defined(5.2)); got != "5.20" {
		t.Errorf("FormatRatio(5.2) = %s, want 5.20", got)
	}
	if got := FormatMetric(models.Defined(81.5)); got != "81.5" {
		t.Errorf("FormatMetric(81.5) = %s, want 81.5", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("a longer comment", 9); got != "a long..." {
		t.Errorf("got %q", got)
	}
}
