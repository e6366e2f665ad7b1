package csvio

import "errors"

// Sentinel kinds for CSV boundary errors. Both are structural and fatal: the
// run aborts before or without writing output.
var (
	ErrMissingColumn   = errors.New("required column missing")
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")
)
