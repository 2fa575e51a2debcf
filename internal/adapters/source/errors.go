package source

import "errors"

// Sentinel errors for data sources.
var (
	// ErrSourceUnavailable means no snapshot could be obtained at all.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrDecode means a payload was obtained but is not a valid snapshot.
	ErrDecode = errors.New("snapshot decode failed")
	// ErrUnknownSource is returned by New for an unsupported source name.
	ErrUnknownSource = errors.New("unknown source")
)
