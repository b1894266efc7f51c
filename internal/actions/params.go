package actions

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Params is the loosely typed argument map of a tool call or batch step.
// Values arrive from JSON (float64), YAML (int) or Go callers.
type Params map[string]any

func invalid(format string, args ...any) error {
	return model.Errorf(model.KindInvalidParams, format, args...)
}

func stringParam(params Params, key, defaultVal string) string {
	if v, ok := params[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

// roundInt rounds agent-supplied fractional pixels to the nearest integer.
func roundInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Round(f)), true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return roundInt(n)
	case float32:
		return roundInt(float64(n))
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return roundInt(f)
		}
		return int(i), true
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return roundInt(f)
	}
	return 0, false
}

// optIntParam returns the integer at key and whether it was present.
func optIntParam(params Params, key string) (int, bool, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	n, ok := toInt(v)
	if !ok {
		return 0, true, invalid("%s must be a number, got %v", key, v)
	}
	return n, true, nil
}

func intParam(params Params, key string, defaultVal int) int {
	if n, ok, err := optIntParam(params, key); ok && err == nil {
		return n
	}
	return defaultVal
}

// rangeParam reads an optional integer constrained to [lo, hi].
func rangeParam(params Params, key string, defaultVal, lo, hi int) (int, error) {
	n, ok, err := optIntParam(params, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return defaultVal, nil
	}
	if n < lo || n > hi {
		return 0, invalid("%s must be between %d and %d, got %d", key, lo, hi, n)
	}
	return n, nil
}

func boolParam(params Params, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		switch b := v.(type) {
		case bool:
			return b
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed
			}
		}
	}
	return defaultVal
}

// stringSliceParam accepts a list or a comma/plus separated string.
func stringSliceParam(params Params, key string) []string {
	v, ok := params[key]
	if !ok || v == nil {
		return nil
	}
	var out []string
	switch items := v.(type) {
	case []string:
		out = append(out, items...)
	case []any:
		for _, item := range items {
			out = append(out, fmt.Sprintf("%v", item))
		}
	case string:
		out = strings.FieldsFunc(items, func(r rune) bool { return r == ',' || r == '+' })
	}
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out
}

// pointParams reads an optional x/y pair. Both or neither must be given.
func pointParams(params Params) (model.Point, bool, error) {
	x, hasX, err := optIntParam(params, "x")
	if err != nil {
		return model.Point{}, false, err
	}
	y, hasY, err := optIntParam(params, "y")
	if err != nil {
		return model.Point{}, false, err
	}
	if hasX != hasY {
		return model.Point{}, false, invalid("x and y must be given together")
	}
	return model.Point{X: x, Y: y}, hasX, nil
}

// regionParam reads an optional logical region as {x,y,width,height},
// [x,y,w,h] or "x,y,w,h".
func regionParam(params Params, key string) (*model.Rect, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch r := v.(type) {
	case *model.Rect:
		return r, nil
	case model.Rect:
		return &r, nil
	case string:
		rect, err := platform.ParseRegion(r)
		if err != nil {
			return nil, invalid("%s: %w", key, err)
		}
		return rect, nil
	case []any:
		if len(r) != 4 {
			return nil, invalid("%s must have 4 values (x, y, width, height)", key)
		}
		vals := make([]int, 4)
		for i, item := range r {
			n, ok := toInt(item)
			if !ok {
				return nil, invalid("%s[%d] must be a number, got %v", key, i, item)
			}
			vals[i] = n
		}
		return &model.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
	case map[string]any:
		p := Params(r)
		rect := &model.Rect{}
		for _, f := range []struct {
			name string
			dst  *int
		}{{"x", &rect.X}, {"y", &rect.Y}, {"width", &rect.Width}, {"height", &rect.Height}} {
			n, present, err := optIntParam(p, f.name)
			if err != nil {
				return nil, err
			}
			if !present {
				return nil, invalid("%s.%s is required", key, f.name)
			}
			*f.dst = n
		}
		return rect, nil
	}
	return nil, invalid("%s has unsupported type %T", key, v)
}

// asParams converts a decoded object into Params.
func asParams(v any) (Params, bool) {
	switch m := v.(type) {
	case nil:
		return Params{}, true
	case Params:
		return m, true
	case map[string]any:
		return Params(m), true
	case map[any]any:
		out := make(Params, len(m))
		for k, val := range m {
			out[fmt.Sprintf("%v", k)] = val
		}
		return out, true
	}
	return nil, false
}
