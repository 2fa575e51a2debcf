// Package baseline computes mean reference lines for a cohort across dates.
package baseline

import (
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/numeric"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
)

// Series extracts an entity's dated values.
type Series func(model.Entity) []model.RatingPoint

// History selects the rating history. Synthesized histories contribute
// nothing, since their single point is not an observation.
func History() Series {
	return func(e model.Entity) []model.RatingPoint {
		if e.SyntheticHistory {
			return nil
		}
		return e.History
	}
}

// Baseline is a named mean line.
type Baseline struct {
	Cohort string              `json:"cohort"`
	Span   string              `json:"span"`
	Points []model.RatingPoint `json:"points"`
}

// Compute averages series values across the cohort for each requested date.
// A date without any contributing entity produces no point.
func Compute(entities []model.Entity, cohort ranking.Cohort, series Series, dates []time.Time) []model.RatingPoint {
	members := cohort.Filter(entities)
	byDate := make(map[string][]float64, len(dates))
	for _, e := range members {
		for _, p := range series(e) {
			k := model.FormatDate(p.Date)
			byDate[k] = append(byDate[k], p.Value)
		}
	}

	out := make([]model.RatingPoint, 0, len(dates))
	for _, d := range dates {
		mean, ok := numeric.Mean(byDate[model.FormatDate(d)])
		if !ok {
			continue
		}
		out = append(out, model.RatingPoint{Date: model.DateOf(d), Value: mean})
	}
	return out
}

// ForSpan computes the cohort baseline over span. The anchor and the candidate
// dates come from the whole universe so every cohort shares one time axis.
func ForSpan(universe []model.Entity, cohort ranking.Cohort, series Series, span window.Span) Baseline {
	anchor, ok := window.AnchorDate(universe)
	if !ok {
		return Baseline{Cohort: cohort.Name, Span: span.Label, Points: []model.RatingPoint{}}
	}
	return ForSpanAt(universe, cohort, series, span, anchor)
}

// ForSpanAt is ForSpan with an explicit anchor date.
func ForSpanAt(universe []model.Entity, cohort ranking.Cohort, series Series, span window.Span, anchor time.Time) Baseline {
	dates := window.DatesInSpan(universe, anchor, span)
	return Baseline{
		Cohort: cohort.Name,
		Span:   span.Label,
		Points: Compute(universe, cohort, series, dates),
	}
}
