package ranking

import "errors"

// Sentinel errors for ranking inputs.
var (
	ErrInvalidOrder  = errors.New("invalid rank order")
	ErrUnknownCohort = errors.New("unknown cohort")
)
