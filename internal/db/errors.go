package db

import "errors"

// Domain-level database error sentinels.
var (
	// City errors
	ErrNoCities = errors.New("no cities stored")

	// Selection errors
	ErrInvalidOutcome = errors.New("invalid selection outcome")
)
