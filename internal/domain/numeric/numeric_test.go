package numeric_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/KrishalDhungana/NBABrain/internal/domain/numeric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestToNumber(t *testing.T) {
	Convey("Given raw values of mixed types", t, func() {
		Convey("Numeric kinds are accepted", func() {
			for _, raw := range []any{42, int64(42), float32(42), 42.0, uint8(42), json.Number("42")} {
				v, ok := numeric.ToNumber(raw)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 42)
			}
		})

		Convey("Numeric strings are coerced", func() {
			v, ok := numeric.ToNumber(" 115.2 ")
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, 115.2)
		})

		Convey("Missing and non-finite values are reported as absent", func() {
			for _, raw := range []any{nil, "", "—", "abc", math.NaN(), math.Inf(1), math.Inf(-1), true, []int{1}} {
				v, ok := numeric.ToNumber(raw)
				So(ok, ShouldBeFalse)
				So(v, ShouldEqual, 0)
			}
		})
	})
}

func TestRoundInt(t *testing.T) {
	Convey("Given values to round", t, func() {
		v, ok := numeric.RoundInt(59.5)
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 60)

		v, ok = numeric.RoundInt("-2.5")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, -3)

		_, ok = numeric.RoundInt("n/a")
		So(ok, ShouldBeFalse)

		_, ok = numeric.RoundInt(1e300)
		So(ok, ShouldBeFalse)
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp saturates into range", t, func() {
		So(numeric.Clamp(120, 1, 99), ShouldEqual, 99)
		So(numeric.Clamp(-4, 1, 99), ShouldEqual, 1)
		So(numeric.Clamp(50.5, 1, 99), ShouldEqual, 50.5)
		So(numeric.Clamp(math.NaN(), 1, 99), ShouldEqual, 1)
		So(numeric.ClampInt(100, 1, 99), ShouldEqual, 99)
		So(numeric.ClampInt(0, 1, 99), ShouldEqual, 1)
	})

	Convey("Mean reports absence for empty input", t, func() {
		_, ok := numeric.Mean(nil)
		So(ok, ShouldBeFalse)
		m, ok := numeric.Mean([]float64{1, 2, 3})
		So(ok, ShouldBeTrue)
		So(m, ShouldEqual, 2)
	})
}
