package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// toFloat coerces numbers and numeric strings. Form inputs arrive as text,
// so unlike a typed document a string such as "42" counts as a number.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toString renders a value the way string rules see it.
func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// IsEmpty reports whether v counts as "no value" for a form field: nil,
// the empty string, or an empty slice or map.
func IsEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []byte:
		return len(x) == 0
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}

// compareValues orders a and b for the ordering rules. Both sides are
// compared as numbers when both parse, otherwise lexically as strings.
func compareValues(a, b any) int {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(toString(a), toString(b))
}

// targetCompare builds a cross-field rule. criteria names the target field
// whose value is read from values at evaluation time. A missing target
// fails the rule.
func targetCompare(accept func(cmp int) bool) Func {
	return func(values Values, value any, criteria any) bool {
		target, ok := criteria.(string)
		if !ok {
			return false
		}
		other, ok := values[target]
		if !ok || other == nil {
			return false
		}
		return accept(compareValues(value, other))
	}
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}
