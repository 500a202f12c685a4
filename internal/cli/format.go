package cli

import (
	"fmt"
	"strings"
	"time"

	"termometro-trader/internal/models"
)

// MetricDash is printed for undefined metrics.
const MetricDash = "–"

// FormatBRL formats an amount in Brazilian currency format:
// dot-grouped thousands and a comma decimal separator.
func FormatBRL(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])
	decPart := parts[1]

	result := "R$ " + intPart + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a dot every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	s = s[:n-3]
	for len(s) > 3 {
		result = s[len(s)-3:] + "." + result
		s = s[:len(s)-3]
	}
	return s + "." + result
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatMetricBRL renders an optional monetary metric, dash when undefined.
func FormatMetricBRL(m models.Metric) string {
	if !m.Valid {
		return MetricDash
	}
	return FormatBRL(m.Value)
}

// FormatMetricPercent renders an optional percentage metric.
func FormatMetricPercent(m models.Metric) string {
	if !m.Valid {
		return MetricDash
	}
	return FormatPercent(m.Value)
}

// FormatMetric renders an optional plain metric with one decimal.
func FormatMetric(m models.Metric) string {
	if !m.Valid {
		return MetricDash
	}
	return fmt.Sprintf("%.1f", m.Value)
}

// FormatRatio renders an optional ratio metric with two decimals.
func FormatRatio(m models.Metric) string {
	if !m.Valid {
		return MetricDash
	}
	return fmt.Sprintf("%.2f", m.Value)
}

// FormatDate formats a calendar date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatPoints formats a point delta.
func FormatPoints(points float64) string {
	return fmt.Sprintf("%.1f", points)
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
