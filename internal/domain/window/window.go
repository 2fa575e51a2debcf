package window

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
)

// Window is a trailing game-count window. Games <= 0 selects the full season.
type Window struct {
	Label string
	Games int
}

// Common game windows.
var (
	Last7  = Window{Label: "7", Games: 7}
	Last30 = Window{Label: "30", Games: 30}
	Season = Window{Label: "season"}
)

// ParseWindow accepts "season" or a positive game count.
func ParseWindow(raw string) (Window, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == Season.Label {
		return Season, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidWindow, raw)
	}
	return Window{Label: s, Games: n}, nil
}

// Span is a trailing calendar window in days ending at the anchor date.
// Days <= 0 selects the full season.
type Span struct {
	Label string
	Days  int
}

// Common date spans.
var (
	Span7d     = Span{Label: "7d", Days: 7}
	Span30d    = Span{Label: "30d", Days: 30}
	SpanSeason = Span{Label: "season"}
)

// ParseSpan accepts "season" or "<n>d".
func ParseSpan(raw string) (Span, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == SpanSeason.Label {
		return SpanSeason, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || n <= 0 || !strings.HasSuffix(s, "d") {
		return Span{}, fmt.Errorf("%w: %q", ErrInvalidSpan, raw)
	}
	return Span{Label: s, Days: n}, nil
}

// Contains reports whether d falls inside the span ending at anchor.
func (s Span) Contains(d, anchor time.Time) bool {
	if d.After(anchor) {
		return false
	}
	if s.Days <= 0 {
		return true
	}
	start := anchor.AddDate(0, 0, -(s.Days - 1))
	return !d.Before(start)
}

// AnchorDate returns the latest history date across entities. Synthesized
// histories are ignored unless no entity has real data.
func AnchorDate(entities []model.Entity) (time.Time, bool) {
	var anchor time.Time
	found := false
	for _, synthetic := range []bool{false, true} {
		for _, e := range entities {
			if e.SyntheticHistory != synthetic {
				continue
			}
			if d, ok := e.LatestDate(); ok && (!found || d.After(anchor)) {
				anchor, found = d, true
			}
		}
		if found {
			return anchor, true
		}
	}
	return time.Time{}, false
}

// DatesInSpan returns the sorted distinct history dates of entities that
// fall inside span ending at anchor.
func DatesInSpan(entities []model.Entity, anchor time.Time, span Span) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, e := range entities {
		for _, p := range e.History {
			if span.Contains(p.Date, anchor) {
				seen[p.Date] = struct{}{}
			}
		}
	}
	out := make([]time.Time, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
