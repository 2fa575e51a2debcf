package ranking

import (
	"fmt"
	"strings"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
)

// Cohort is a named grouping of entities, computed on demand.
type Cohort struct {
	Name  string
	Match func(model.Entity) bool
}

// Filter returns the matching entities in input order.
func (c Cohort) Filter(entities []model.Entity) []model.Entity {
	out := make([]model.Entity, 0, len(entities))
	for _, e := range entities {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// League matches every entity.
func League() Cohort {
	return Cohort{Name: "league", Match: func(model.Entity) bool { return true }}
}

// ConferenceCohort matches entities in conference c.
func ConferenceCohort(c model.Conference) Cohort {
	return Cohort{
		Name:  strings.ToLower(string(c)),
		Match: func(e model.Entity) bool { return e.Conference == c },
	}
}

// PositionCohort matches players whose position group equals group.
func PositionCohort(group string) Cohort {
	g := PositionGroup(group)
	return Cohort{
		Name:  "position=" + g,
		Match: func(e model.Entity) bool { return PositionGroup(e.Position) == g },
	}
}

// PositionGroup reduces a position such as "G-F" to its primary letter.
func PositionGroup(position string) string {
	p := strings.ToUpper(strings.TrimSpace(position))
	if p == "" {
		return ""
	}
	return p[:1]
}

// ParseCohort accepts league, east, west and position=<G|F|C>.
func ParseCohort(raw string) (Cohort, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", "league":
		return League(), nil
	case "east":
		return ConferenceCohort(model.East), nil
	case "west":
		return ConferenceCohort(model.West), nil
	}
	if g, ok := strings.CutPrefix(s, "position="); ok && g != "" {
		return PositionCohort(g), nil
	}
	return Cohort{}, fmt.Errorf("%w: %q", ErrUnknownCohort, raw)
}
