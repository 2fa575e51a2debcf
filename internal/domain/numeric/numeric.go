// Package numeric provides safe coercion, rounding and clamping for values
// that may be missing, non-numeric or non-finite.
//
// Absence of a usable number is always reported through the boolean return,
// never as 0 or NaN, so "unknown" is not silently treated as "zero" downstream.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const maxExactInt = 1 << 53

// ToNumber coerces raw into a finite float64. Numeric strings are parsed.
func ToNumber(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// RoundInt coerces raw with ToNumber and rounds half away from zero.
func RoundInt(raw any) (int, bool) {
	f, ok := ToNumber(raw)
	if !ok {
		return 0, false
	}
	r := math.Round(f)
	// Beyond 2^53 float64 no longer represents every integer.
	if math.Abs(r) > maxExactInt {
		return 0, false
	}
	return int(r), true
}

// Clamp saturates x into [lo, hi]. NaN saturates to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampInt saturates x into [lo, hi].
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Mean averages values; ok is false for an empty slice.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
