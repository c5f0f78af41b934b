package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Truthy reports whether v counts as true in a condition.
// nil, false, 0, NaN and "" are falsy; every other value, including empty
// arrays and objects, is truthy.
func Truthy(v interface{}) bool {
	v = Normalize(v)
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// ToString renders v the way it is spliced into surrounding text
func ToString(v interface{}) string {
	v = Normalize(v)
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return FormatNumber(t)
	case string:
		return t
	case []interface{}, map[string]interface{}:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}

// FormatNumber prints f without a trailing ".0" for whole numbers
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseNumber parses a numeric string. Surrounding whitespace is ignored and
// 0x / 0o / 0b integer literals are accepted; NaN is not a number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(s, "_") {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsNumberString reports whether s parses as a number
func IsNumberString(s string) bool {
	_, ok := ParseNumber(s)
	return ok
}

// IsBooleanString reports whether s is exactly "true" or "false"
func IsBooleanString(s string) bool {
	return s == "true" || s == "false"
}

// IsNullString reports whether s is exactly "null"
func IsNullString(s string) bool {
	return s == "null"
}

// IsEmptyString reports whether s is empty or only whitespace
func IsEmptyString(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ToNumber coerces v to a float64. Strings must be numeric (the empty string
// is 0), booleans become 0 or 1 and nil becomes 0.
func ToNumber(v interface{}) (float64, bool) {
	v = Normalize(v)
	switch t := v.(type) {
	case nil:
		return 0, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		return t, true
	case string:
		if IsEmptyString(t) {
			return 0, true
		}
		return ParseNumber(t)
	}
	return 0, false
}

// Equal reports whether a and b hold the same value. Numbers compare by value
// regardless of their Go type and composites compare structurally.
func Equal(a, b interface{}) bool {
	a, b = Normalize(a), Normalize(b)
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch ta := a.(type) {
	case float64:
		return ta == b.(float64)
	case []interface{}, map[string]interface{}:
		return reflect.DeepEqual(Clone(a), Clone(b))
	case nil:
		return true
	default:
		if !reflect.TypeOf(a).Comparable() {
			return reflect.DeepEqual(a, b)
		}
		return a == b
	}
}

// Compare orders a and b. Two numbers, or a number and a numeric string,
// compare numerically; two strings compare lexically. ok is false when the
// values are not ordered.
func Compare(a, b interface{}) (int, bool) {
	a, b = Normalize(a), Normalize(b)
	sa, aIsString := a.(string)
	sb, bIsString := b.(string)
	if aIsString && bIsString {
		return strings.Compare(sa, sb), true
	}
	fa, okA := ToNumber(a)
	fb, okB := ToNumber(b)
	if !okA || !okB || math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, false
	}
	switch {
	case fa < fb:
		return -1, true
	case fa > fb:
		return 1, true
	default:
		return 0, true
	}
}
