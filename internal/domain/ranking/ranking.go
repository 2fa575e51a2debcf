// Package ranking assigns ranks within cohorts for arbitrary numeric metrics.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
)

// Order is the direction in which a metric is ranked.
type Order int

// Rank orders. Descending means higher values rank first.
const (
	Descending Order = iota
	Ascending
)

// String implements fmt.Stringer.
func (o Order) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseOrder accepts asc/ascending and desc/descending.
func ParseOrder(raw string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending", "":
		return Descending, nil
	}
	return Descending, fmt.Errorf("%w: %q", ErrInvalidOrder, raw)
}

// Selector extracts a metric from an entity; ok is false when absent.
type Selector func(model.Entity) (float64, bool)

// Metric selects a named entry of Entity.Metrics.
func Metric(key string) Selector {
	return func(e model.Entity) (float64, bool) {
		return e.Metric(key)
	}
}

// CurrentRating selects the entity's current rating.
func CurrentRating() Selector {
	return func(e model.Entity) (float64, bool) {
		return e.CurrentRating, true
	}
}

// Rank returns 1-based ranks keyed by entity id. Entities whose metric is
// absent get no entry. The sort is stable, so ties keep input order and
// repeated calls on the same input give identical ranks.
func Rank(entities []model.Entity, sel Selector, order Order) map[string]int {
	type scored struct {
		id    string
		value float64
	}
	items := make([]scored, 0, len(entities))
	for _, e := range entities {
		if v, ok := sel(e); ok {
			items = append(items, scored{id: e.ID, value: v})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if order == Ascending {
			return items[i].value < items[j].value
		}
		return items[i].value > items[j].value
	})
	ranks := make(map[string]int, len(items))
	for i, it := range items {
		ranks[it.id] = i + 1
	}
	return ranks
}

// RankWithin ranks only the entities matched by cohort.
func RankWithin(entities []model.Entity, cohort Cohort, sel Selector, order Order) map[string]int {
	return Rank(cohort.Filter(entities), sel, order)
}
