package core

import "errors"

// Sentinel errors returned by BuildBurndown. They are always wrapped with
// detail, so callers should match them with errors.Is.
var (
	// ErrInvalidInterval means the interval token is not one of the supported values.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidRange means the start date is after the end date.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrEmptyRange means the interval produced no axis points inside the range.
	ErrEmptyRange = errors.New("empty date range")

	// ErrNoHistory means velocity had to be derived from history but no axis
	// point falls on or before the as-of date.
	ErrNoHistory = errors.New("no history on or before as-of date")
)
