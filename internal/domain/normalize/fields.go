package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/KrishalDhungana/NBABrain/internal/domain/numeric"
)

// fieldSet reads a raw record through alias lists. Keys may be dotted paths
// into nested objects; the first present, non-null value wins.
type fieldSet map[string]any

func (f fieldSet) lookup(keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := f.path(key); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (f fieldSet) path(key string) (any, bool) {
	var cur any = map[string]any(f)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func (f fieldSet) str(keys ...string) string {
	v, ok := f.lookup(keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		if n, ok := numeric.ToNumber(v); ok {
			return formatNumber(n)
		}
	}
	return ""
}

func (f fieldSet) number(keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := f.path(key)
		if !ok {
			continue
		}
		if n, ok := numeric.ToNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

func (f fieldSet) integer(keys ...string) (int, bool) {
	for _, key := range keys {
		v, ok := f.path(key)
		if !ok {
			continue
		}
		if n, ok := numeric.RoundInt(v); ok {
			return n, true
		}
	}
	return 0, false
}

func (f fieldSet) boolean(keys ...string) (bool, bool) {
	v, ok := f.lookup(keys...)
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "home", "h", "1":
			return true, true
		case "false", "no", "away", "a", "0":
			return false, true
		}
	default:
		if n, ok := numeric.ToNumber(v); ok {
			return n != 0, true
		}
	}
	return false, false
}

// list returns the first present value that is a JSON array.
func (f fieldSet) list(keys ...string) []any {
	for _, key := range keys {
		if v, ok := f.path(key); ok {
			if l, ok := v.([]any); ok {
				return l
			}
		}
	}
	return nil
}

// numbers merges the finite numeric members of every object found under keys.
// Earlier keys win on conflicts. Non-numeric members are skipped.
func (f fieldSet) numbers(keys ...string) map[string]float64 {
	out := make(map[string]float64)
	for _, key := range keys {
		v, ok := f.path(key)
		if !ok {
			continue
		}
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for k, raw := range m {
			if _, taken := out[k]; taken {
				continue
			}
			if n, ok := numeric.ToNumber(raw); ok {
				out[k] = n
			}
		}
	}
	return out
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
