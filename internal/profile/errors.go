package profile

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when there is nothing to profile.
var ErrEmptyDataset = errors.New("dataset has no rows or no columns")

// ProfilingError reports a failure while computing a profile.
type ProfilingError struct {
	Dataset string
	Err     error
}

func (e *ProfilingError) Error() string {
	if e.Dataset == "" {
		return fmt.Sprintf("profiling failed: %v", e.Err)
	}
	return fmt.Sprintf("profiling %s failed: %v", e.Dataset, e.Err)
}

func (e *ProfilingError) Unwrap() error { return e.Err }
