package ledger

import "fmt"

// DataLoadError reports a ledger file that is missing or malformed.
// It is fatal for the trade ledger and degradable for the context ledger.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading ledger %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
