package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrNoSnapshot   = errors.New("no snapshot available")
	ErrInvalidLimit = errors.New("invalid ranking limit")
	ErrNilSnapshot  = errors.New("nil snapshot")
)
