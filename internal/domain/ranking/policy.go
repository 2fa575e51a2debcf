package ranking

import (
	"sort"
	"strings"
)

// RatingKey is the pseudo-metric under which current ratings are ranked.
const RatingKey = "rating"

// Policy maps a metric key to its ranking direction. Direction is a property
// of the metric, not of the engine.
type Policy map[string]Order

// TeamPolicy covers the metrics published for teams.
func TeamPolicy() Policy {
	return Policy{
		RatingKey:          Descending,
		"offRating":        Descending,
		"defRating":        Ascending,
		"netRating":        Descending,
		"threesPerGame":    Descending,
		"turnoversPerGame": Ascending,
		"plusMinus":        Descending,
		"fgPct":            Descending,
		"fg3Pct":           Descending,
		"ftPct":            Descending,
	}
}

// PlayerPolicy covers the per-game and advanced player metrics.
func PlayerPolicy() Policy {
	return Policy{
		RatingKey:   Descending,
		"pts":       Descending,
		"reb":       Descending,
		"ast":       Descending,
		"stl":       Descending,
		"blk":       Descending,
		"tov":       Ascending,
		"min":       Descending,
		"fgPct":     Descending,
		"fg3Pct":    Descending,
		"ftPct":     Descending,
		"plusMinus": Descending,
		"offRating": Descending,
		"defRating": Ascending,
		"netRating": Descending,
		"tsPct":     Descending,
		"usgPct":    Descending,
		"pie":       Descending,
	}
}

// rankSuffix marks metrics that already carry a league position, where 1 is best.
const rankSuffix = "Rank"

// OrderFor returns the direction for key. Unknown metrics ending in "Rank"
// rank ascending; every other unknown metric ranks descending.
func (p Policy) OrderFor(key string) Order {
	if o, ok := p[key]; ok {
		return o
	}
	if len(key) > len(rankSuffix) && strings.HasSuffix(key, rankSuffix) {
		return Ascending
	}
	return Descending
}

// With returns a copy of p with overrides applied.
func (p Policy) With(overrides map[string]Order) Policy {
	out := make(Policy, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Keys returns the metric keys in sorted order.
func (p Policy) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SelectorFor returns the selector for key, mapping RatingKey to the current rating.
func SelectorFor(key string) Selector {
	if key == RatingKey {
		return CurrentRating()
	}
	return Metric(key)
}
