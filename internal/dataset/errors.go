package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDataset is returned for names outside the built-in catalog.
	ErrUnknownDataset = errors.New("unknown built-in dataset")
	// ErrUnreachable indicates the sample provider could not be reached.
	ErrUnreachable = errors.New("dataset source unreachable")
	// ErrNoData indicates the input parsed but held no header or rows.
	ErrNoData = errors.New("no tabular data found")
	// ErrTooLarge indicates an upload above the configured size limit.
	ErrTooLarge = errors.New("file exceeds upload limit")
)

// LoadError reports a failure to obtain a Dataset from a built-in name or an upload.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load failed"
	}
	if e.Source != "" {
		return fmt.Sprintf("could not load %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("could not load dataset: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
