package metrics

import "errors"

// Sentinel kinds for metrics errors.
var (
	// ErrObserveFailed marks an observation the backend rejected.
	ErrObserveFailed = errors.New("metrics observe failed")
)
