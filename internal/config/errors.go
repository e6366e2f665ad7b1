package config

import "errors"

// Sentinel kinds for configuration errors, matched by callers via errors.Is.
var (
	// ErrInvalidConfig marks a configuration that loaded but fails validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure in one of the loading layers.
	ErrLoadConfig = errors.New("load config failed")
)
