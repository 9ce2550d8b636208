package model

import "errors"

// Sentinel kinds shared by data sources and the matching core.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrItemNotFound = errors.New("item not found")
)
