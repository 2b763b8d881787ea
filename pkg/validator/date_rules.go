package validator

import (
	"context"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// checkDate accepts time.Time values and strings in any layout understood by
// jinzhu/now (dates, date-times, RFC 3339, RFC 1123 and friends).
func checkDate(_ context.Context, in Input) (bool, error) {
	switch v := in.Value.(type) {
	case time.Time:
		return !v.IsZero(), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return false, nil
		}
		_, err := now.ParseInLocation(in.location(), v)
		return err == nil, nil
	default:
		return false, nil
	}
}

// checkDateFormat requires the value to parse with the format and to format
// back to exactly the same string, which rejects "2024-02-30" for "Y-m-d".
func checkDateFormat(_ context.Context, in Input) (bool, error) {
	layout, err := dateLayout(in, 0)
	if err != nil {
		return false, err
	}
	t, ok := parseDateValue(in, layout)
	return ok && t.Format(layout) == in.Value, nil
}

// checkDateEquals parses the value with the format in the first parameter and
// compares its formatted form with the second parameter literally.
func checkDateEquals(_ context.Context, in Input) (bool, error) {
	layout, err := dateLayout(in, 0)
	if err != nil {
		return false, err
	}
	t, ok := parseDateValue(in, layout)
	return ok && t.Format(layout) == in.Param(1), nil
}

func checkDateBefore(_ context.Context, in Input) (bool, error) {
	value, limit, ok, err := datePair(in)
	if err != nil || !ok {
		return false, err
	}
	return value.Before(limit), nil
}

func checkDateAfter(_ context.Context, in Input) (bool, error) {
	value, limit, ok, err := datePair(in)
	if err != nil || !ok {
		return false, err
	}
	return value.After(limit), nil
}

func dateLayout(in Input, i int) (string, error) {
	layout, err := layoutFromFormat(in.Param(i))
	if err != nil {
		return "", misconfigured(in.Rule, ErrInvalidParam, "The %s validation rule has an invalid date format: %v", in.Rule, err)
	}
	return layout, nil
}

func parseDateValue(in Input, layout string) (time.Time, bool) {
	s, ok := in.Value.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(layout, s, in.location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// datePair parses the value and the limit in the second parameter with the
// format in the first parameter. An unparsable limit fails the rule, as it
// would for any value.
func datePair(in Input) (time.Time, time.Time, bool, error) {
	layout, err := dateLayout(in, 0)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	value, ok := parseDateValue(in, layout)
	if !ok {
		return time.Time{}, time.Time{}, false, nil
	}
	limit, err := time.ParseInLocation(layout, in.Param(1), in.location())
	if err != nil {
		return time.Time{}, time.Time{}, false, nil
	}
	return value, limit, true, nil
}
