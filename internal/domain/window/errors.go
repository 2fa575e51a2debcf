package window

import "errors"

// Sentinel errors for window parsing.
var (
	ErrInvalidWindow = errors.New("invalid game window")
	ErrInvalidSpan   = errors.New("invalid date span")
)
