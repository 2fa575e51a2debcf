package baseline_test

import (
	"testing"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/baseline"
	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
	. "github.com/smartystreets/goconvey/convey"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func team(id string, conf model.Conference, points map[int]float64) model.Entity {
	e := model.Entity{ID: id, Kind: model.KindTeam, Conference: conf}
	for d := 0; d < 40; d++ {
		if v, ok := points[d]; ok {
			e.History = append(e.History, model.RatingPoint{Date: day(d), Value: v})
		}
	}
	return e
}

func TestCompute(t *testing.T) {
	Convey("Given two teams with partially overlapping histories", t, func() {
		teams := []model.Entity{
			team("okc", model.West, map[int]float64{0: 1600, 1: 1610, 3: 1620}),
			team("bos", model.East, map[int]float64{0: 1580, 1: 1570}),
		}
		dates := []time.Time{day(0), day(1), day(2), day(3)}

		Convey("Each date averages only the entities with a value", func() {
			pts := baseline.Compute(teams, ranking.League(), baseline.History(), dates)
			So(pts, ShouldResemble, []model.RatingPoint{
				{Date: day(0), Value: 1590},
				{Date: day(1), Value: 1590},
				{Date: day(3), Value: 1620},
			})
		})

		Convey("Dates with no data produce no point rather than zero", func() {
			pts := baseline.Compute(teams, ranking.ConferenceCohort(model.East), baseline.History(), dates)
			So(len(pts), ShouldEqual, 2)
			for _, p := range pts {
				So(p.Value, ShouldNotEqual, 0)
			}
		})

		Convey("An empty cohort yields an empty series", func() {
			pts := baseline.Compute(teams, ranking.PositionCohort("C"), baseline.History(), dates)
			So(pts, ShouldBeEmpty)
		})
	})

	Convey("Synthesized histories do not contribute", t, func() {
		synthetic := team("new", model.West, map[int]float64{1: 1500})
		synthetic.SyntheticHistory = true
		teams := []model.Entity{team("okc", model.West, map[int]float64{1: 1600}), synthetic}
		pts := baseline.Compute(teams, ranking.League(), baseline.History(), []time.Time{day(1)})
		So(pts, ShouldResemble, []model.RatingPoint{{Date: day(1), Value: 1600}})
	})
}

func TestForSpan(t *testing.T) {
	Convey("Given a universe whose latest date is day 30", t, func() {
		points := map[int]float64{}
		for d := 0; d <= 30; d++ {
			points[d] = 1500 + float64(d)
		}
		teams := []model.Entity{
			team("okc", model.West, points),
			team("bos", model.East, map[int]float64{10: 1400, 29: 1450}),
		}

		Convey("A 7-day span is anchored on the data, not the clock", func() {
			b := baseline.ForSpan(teams, ranking.League(), baseline.History(), window.Span7d)
			So(b.Cohort, ShouldEqual, "league")
			So(b.Span, ShouldEqual, "7d")
			So(len(b.Points), ShouldEqual, 7)
			So(b.Points[0].Date, ShouldEqual, day(24))
			So(b.Points[6].Date, ShouldEqual, day(30))
			So(b.Points[5].Value, ShouldEqual, (1529.0+1450.0)/2)
		})

		Convey("The season span covers every date with data", func() {
			b := baseline.ForSpan(teams, ranking.ConferenceCohort(model.East), baseline.History(), window.SpanSeason)
			So(b.Points, ShouldResemble, []model.RatingPoint{
				{Date: day(10), Value: 1400},
				{Date: day(29), Value: 1450},
			})
		})
	})

	Convey("An empty universe yields an empty, non-nil series", t, func() {
		b := baseline.ForSpan(nil, ranking.League(), baseline.History(), window.Span30d)
		So(b.Points, ShouldNotBeNil)
		So(b.Points, ShouldBeEmpty)
	})
}
