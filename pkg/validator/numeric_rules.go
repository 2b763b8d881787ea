package validator

import (
	"context"
	"strings"
)

func checkNumeric(_ context.Context, in Input) (bool, error) {
	return isNumeric(in.Value), nil
}

func checkMinValue(_ context.Context, in Input) (bool, error) {
	limit, err := paramFloat(in, 0)
	if err != nil {
		return false, err
	}
	f, ok := floatValue(in.Value)
	return ok && f >= limit, nil
}

func checkMaxValue(_ context.Context, in Input) (bool, error) {
	limit, err := paramFloat(in, 0)
	if err != nil {
		return false, err
	}
	f, ok := floatValue(in.Value)
	return ok && f <= limit, nil
}

// checkDigits requires an all-digit value of exactly the given length.
func checkDigits(_ context.Context, in Input) (bool, error) {
	length, err := paramInt(in, 0)
	if err != nil {
		return false, err
	}
	s, ok := digitString(in.Value)
	return ok && isDigits(s) && len(s) == length, nil
}

func checkDigitsBetween(_ context.Context, in Input) (bool, error) {
	lower, err := paramInt(in, 0)
	if err != nil {
		return false, err
	}
	upper, err := paramInt(in, 1)
	if err != nil {
		return false, err
	}
	s, ok := digitString(in.Value)
	if !ok || !isDigits(s) {
		return false, nil
	}
	return len(s) >= lower && len(s) <= upper, nil
}

var booleanTokens = map[string]bool{
	"1": true, "true": true, "on": true, "yes": true,
	"0": true, "false": true, "off": true, "no": true,
}

// checkBoolean accepts Go booleans, the integers 0 and 1, and the
// case-insensitive tokens true/false, 1/0, yes/no, on/off.
func checkBoolean(_ context.Context, in Input) (bool, error) {
	switch v := in.Value.(type) {
	case bool:
		return true, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s, _ := stringValue(v)
		return s == "0" || s == "1", nil
	case string:
		return booleanTokens[strings.ToLower(strings.TrimSpace(v))], nil
	default:
		return false, nil
	}
}
