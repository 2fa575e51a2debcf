package window_test

import (
	"errors"
	"testing"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
	. "github.com/smartystreets/goconvey/convey"
)

func day(n int) time.Time {
	return time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func series(values ...float64) []model.RatingPoint {
	out := make([]model.RatingPoint, len(values))
	for i, v := range values {
		out[i] = model.RatingPoint{Date: day(i), Value: v}
	}
	return out
}

func TestHistoryStrategy(t *testing.T) {
	Convey("Given a five day history and no game log", t, func() {
		e := model.Entity{ID: "1", History: series(1500, 1510, 1490, 1520, 1530)}

		So(window.StrategyFor(e).Name(), ShouldEqual, "history")

		Convey("A window as long as the series uses last minus first", func() {
			So(window.TrailingDelta(e, 5), ShouldEqual, 30)
		})

		Convey("A shorter window indexes len-n-1", func() {
			So(window.TrailingDelta(e, 2), ShouldEqual, 40)
		})

		Convey("A window longer than the series never indexes before the start", func() {
			So(window.TrailingDelta(e, 50), ShouldEqual, 30)
		})

		Convey("The season window spans the whole series", func() {
			So(window.TrailingDelta(e, window.Season.Games), ShouldEqual, 30)
		})
	})

	Convey("An empty history yields zero", t, func() {
		So(window.HistoryStrategy{}.Delta(model.Entity{}, 7), ShouldEqual, 0)
	})

	Convey("Deltas are rounded to the nearest integer", t, func() {
		e := model.Entity{History: []model.RatingPoint{{Date: day(0), Value: 1500.2}, {Date: day(1), Value: 1507.9}}}
		So(window.TrailingDelta(e, 1), ShouldEqual, 8)
	})
}

func TestGameLogStrategy(t *testing.T) {
	Convey("Given an unsorted game log", t, func() {
		e := model.Entity{Games: []model.GameResult{
			{GameID: "3", Date: day(2), RatingDelta: -4.4},
			{GameID: "1", Date: day(0), RatingDelta: 10.0},
			{GameID: "4", Date: day(3), RatingDelta: 6.3},
			{GameID: "2", Date: day(1), RatingDelta: -20.0},
		}}

		So(window.StrategyFor(e).Name(), ShouldEqual, "game_log")

		Convey("The most recent n deltas are summed and rounded", func() {
			So(window.TrailingDelta(e, 2), ShouldEqual, 2)
			So(window.TrailingDelta(e, 3), ShouldEqual, -18)
		})

		Convey("n beyond the log sums everything", func() {
			So(window.TrailingDelta(e, 30), ShouldEqual, -8)
			So(window.TrailingDelta(e, 0), ShouldEqual, -8)
		})

		Convey("The caller's slice order is untouched", func() {
			window.TrailingDelta(e, 2)
			So(e.Games[0].GameID, ShouldEqual, "3")
		})
	})
}

func TestStrategiesAgree(t *testing.T) {
	Convey("Given a consistent history and game log", t, func() {
		deltas := []float64{12.4, -7.1, 9.9, 3.3, -15.2, 8.8}
		rating := 1500.0
		var e model.Entity
		for i, d := range deltas {
			rating += d
			e.History = append(e.History, model.RatingPoint{Date: day(i), Value: rating})
			e.Games = append(e.Games, model.GameResult{GameID: string(rune('a' + i)), Date: day(i), RatingDelta: d})
		}

		Convey("Both strategies produce the same trailing delta", func() {
			for n := 1; n < len(deltas); n++ {
				g := window.GameLogStrategy{}.Delta(e, n)
				h := window.HistoryStrategy{}.Delta(e, n)
				So(g-h, ShouldBeBetweenOrEqual, -1, 1)
			}
		})
	})
}

func TestSpans(t *testing.T) {
	Convey("Given entities with stale real data and one synthetic history", t, func() {
		entities := []model.Entity{
			{ID: "a", History: series(1500, 1510, 1520)},
			{ID: "b", History: []model.RatingPoint{{Date: day(10), Value: 1490}}},
			{ID: "c", SyntheticHistory: true, History: []model.RatingPoint{{Date: day(400), Value: 1500}}},
		}

		Convey("The anchor is the latest real date", func() {
			anchor, ok := window.AnchorDate(entities)
			So(ok, ShouldBeTrue)
			So(anchor.Equal(day(10)), ShouldBeTrue)

			Convey("A 7 day span ends at the anchor", func() {
				dates := window.DatesInSpan(entities, anchor, window.Span7d)
				So(len(dates), ShouldEqual, 1)
				So(dates[0].Equal(day(10)), ShouldBeTrue)
			})

			Convey("The season span covers everything up to the anchor", func() {
				dates := window.DatesInSpan(entities, anchor, window.SpanSeason)
				So(len(dates), ShouldEqual, 4)
				So(dates[0].Equal(day(0)), ShouldBeTrue)
			})
		})

		Convey("Only synthetic histories still produce an anchor", func() {
			anchor, ok := window.AnchorDate(entities[2:])
			So(ok, ShouldBeTrue)
			So(anchor.Equal(day(400)), ShouldBeTrue)
		})

		Convey("No entities means no anchor", func() {
			_, ok := window.AnchorDate(nil)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Windows and spans parse from query strings", t, func() {
		w, err := window.ParseWindow("10")
		So(err, ShouldBeNil)
		So(w.Games, ShouldEqual, 10)

		w, err = window.ParseWindow("Season")
		So(err, ShouldBeNil)
		So(w, ShouldResemble, window.Season)

		_, err = window.ParseWindow("-1")
		So(errors.Is(err, window.ErrInvalidWindow), ShouldBeTrue)

		s, err := window.ParseSpan("30d")
		So(err, ShouldBeNil)
		So(s.Days, ShouldEqual, 30)

		_, err = window.ParseSpan("30")
		So(errors.Is(err, window.ErrInvalidSpan), ShouldBeTrue)
	})
}
