package report

import (
	"errors"
	"fmt"
)

// ErrRendererUnavailable indicates the external PDF renderer could not be found.
var ErrRendererUnavailable = errors.New("pdf renderer unavailable")

// ExportError reports a failure to produce one export format.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export failed: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
