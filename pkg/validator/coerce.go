package validator

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var numericStringRegex = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// stringValue renders scalars as strings. Collections and other composite
// values are not stringable.
func stringValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case []byte:
		return string(val), true
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Func, reflect.Chan:
		return "", false
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// isNumeric reports whether v is a number or a numeric string.
// Booleans are not numeric.
func isNumeric(v any) bool {
	switch val := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case string:
		return numericStringRegex.MatchString(val)
	default:
		return false
	}
}

func floatValue(v any) (float64, bool) {
	if !isNumeric(v) {
		return 0, false
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// paramInt reads parameter i as an integer. Outside strict mode a malformed
// parameter is reduced to its leading digits, "12abc" becoming 12 and "abc" 0.
func paramInt(in Input, i int) (int, error) {
	raw := in.Param(i)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err == nil {
		return n, nil
	}
	if in.Env.StrictParams {
		return 0, misconfigured(in.Rule, ErrInvalidParam, "The %s validation rule expects an integer parameter, got %q.", in.Rule, raw)
	}
	return leadingInt(raw), nil
}

func paramFloat(in Input, i int) (float64, error) {
	raw := in.Param(i)
	if numericStringRegex.MatchString(raw) {
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f, nil
		}
	}
	if in.Env.StrictParams {
		return 0, misconfigured(in.Rule, ErrInvalidParam, "The %s validation rule expects a numeric parameter, got %q.", in.Rule, raw)
	}
	return float64(leadingInt(raw)), nil
}

func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r")
	sign := 1
	if s != "" && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return sign * n
}

// isDigits reports whether s is non-empty and made of ASCII digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// digitString renders strings and non-negative integers for the digits rules.
func digitString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s, err := cast.ToStringE(val)
		return s, err == nil
	default:
		return "", false
	}
}
