package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrUnknownKind       = errors.New("kind must be team or player")
	ErrUnknownConference = errors.New("conference must be east or west")
	ErrLimitExceeded     = errors.New("limit exceeds maximum")
)
