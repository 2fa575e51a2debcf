package model

// RawRecord is a loosely typed source record, tagged with its kind. It is
// validated and converted exactly once, by the normalizer.
type RawRecord struct {
	Kind   Kind
	Fields map[string]any
}

// RawSnapshot is the complete input for one refresh.
type RawSnapshot struct {
	Season      string
	SeasonType  string
	LastUpdated string
	Teams       []RawRecord
	Players     []RawRecord
}
