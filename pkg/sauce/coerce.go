package sauce

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToComparableString renders a scalar attribute value as the string a filter
// value is compared against. Booleans become "true"/"false" and numbers use
// their shortest decimal form (12.0 -> "12"). It reports false for nil.
func ToComparableString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case json.Number:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

// LooseEquals compares an attribute value with a filter value, converting the
// filter value to the attribute's kind:
//
//	string  exact match
//	bool    strconv.ParseBool of the filter value
//	number  numeric equality after strconv.ParseFloat ("2" == 2.0)
//	nil     never equal
//
// Anything else falls back to comparing ToComparableString output.
func LooseEquals(v any, want string) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val == want
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(want))
		return err == nil && b == val
	}

	if f, ok := numericValue(v); ok {
		w, ok := parseNumber(want)
		return ok && w == f
	}

	s, ok := ToComparableString(v)
	return ok && s == want
}

// IDEquals compares two resource ids. Ids that both parse as integers are
// compared numerically ("02" == "2"); otherwise they must match exactly.
func IDEquals(a, b string) bool {
	ai, errA := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	bi, errB := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	if errA == nil && errB == nil {
		return ai == bi
	}
	return a == b
}

// parseNumber reports whether s is, in full, a finite numeric literal.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		return parseNumber(val.String())
	}
	return 0, false
}
