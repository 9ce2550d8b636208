package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUnsupportedDriver = errors.New("unsupported store driver")
	ErrInvalidFixture    = errors.New("invalid fixture")
)
