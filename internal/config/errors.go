package config

import "errors"

// Sentinel error kinds returned by Load and Validate.
var (
	// ErrInvalidConfig marks a loaded configuration that failed validation,
	// including an invalid matching section.
	ErrInvalidConfig = errors.New("invalid service config")
	// ErrLoadConfig marks a config file or environment that could not be read.
	ErrLoadConfig = errors.New("cannot load service config")
)
