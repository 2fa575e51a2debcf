package model_test

import (
	"testing"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDate(t *testing.T) {
	Convey("Given date strings in source layouts", t, func() {
		want := time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)

		for _, raw := range []string{"2025-11-03", "2025-11-03T19:30:00Z", "2025-11-03T19:30:00", "Nov 03, 2025"} {
			got, ok := model.ParseDate(raw)
			So(ok, ShouldBeTrue)
			So(got.Equal(want), ShouldBeTrue)
		}

		Convey("Unparseable values are rejected", func() {
			for _, raw := range []any{"", "yesterday", 20251103, nil} {
				_, ok := model.ParseDate(raw)
				So(ok, ShouldBeFalse)
			}
		})
	})

	Convey("Record renders as W-L", t, func() {
		So(model.Record{Wins: 48, Losses: 20}.String(), ShouldEqual, "48-20")
	})
}

func TestParseTimestamp(t *testing.T) {
	Convey("Pipeline timestamps keep their time of day in UTC", t, func() {
		got, ok := model.ParseTimestamp("2026-01-15T08:30:00.123456+00:00")
		So(ok, ShouldBeTrue)
		So(got.Hour(), ShouldEqual, 8)
		So(got.Location(), ShouldEqual, time.UTC)

		got, ok = model.ParseTimestamp("2026-01-15")
		So(ok, ShouldBeTrue)
		So(got.Day(), ShouldEqual, 15)

		_, ok = model.ParseTimestamp("  ")
		So(ok, ShouldBeFalse)
	})
}
