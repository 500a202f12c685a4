package journal

import (
	"fmt"
	"time"
)

// EmptyResultError reports a filter that matched zero trades. It is
// non-fatal: the caller renders a "no trades" state and skips the
// dependent views for that request.
type EmptyResultError struct {
	Filter Filter
}

func (e *EmptyResultError) Error() string {
	return "no trades match the current filter"
}

// NoEquityForDateError reports a thermometer request for a date that
// has no equity row, e.g. because the filter excluded it. Non-fatal:
// rendered as a warning.
type NoEquityForDateError struct {
	Date time.Time
}

func (e *NoEquityForDateError) Error() string {
	return fmt.Sprintf("no equity data for %s", e.Date.Format("2006-01-02"))
}
