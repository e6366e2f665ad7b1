package repository

import "errors"

// Sentinel kinds for artifact store errors.
var (
	ErrNotFound  = errors.New("lookup artifact not found")
	ErrMalformed = errors.New("malformed lookup artifact")
)
