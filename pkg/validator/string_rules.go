package validator

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/fieldrules/pkg/cache"
)

var (
	alphaRegex     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRegex  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRegex = regexp.MustCompile(`^[A-Za-z0-9-_]+$`)
)

// checkRequired passes for anything except nil and the empty string.
// Whitespace and empty collections count as present.
func checkRequired(_ context.Context, in Input) (bool, error) {
	if in.Value == nil {
		return false, nil
	}
	if s, ok := in.Value.(string); ok && s == "" {
		return false, nil
	}
	return true, nil
}

func checkString(_ context.Context, in Input) (bool, error) {
	_, ok := in.Value.(string)
	return ok, nil
}

// checkMinLength compares the byte length of the value rendered as a string.
func checkMinLength(_ context.Context, in Input) (bool, error) {
	limit, err := paramInt(in, 0)
	if err != nil {
		return false, err
	}
	s, ok := stringValue(in.Value)
	if !ok {
		return false, nil
	}
	return len(s) >= limit, nil
}

func checkMaxLength(_ context.Context, in Input) (bool, error) {
	limit, err := paramInt(in, 0)
	if err != nil {
		return false, err
	}
	s, ok := stringValue(in.Value)
	if !ok {
		return false, nil
	}
	return len(s) <= limit, nil
}

func checkAlpha(_ context.Context, in Input) (bool, error) {
	s, ok := in.Value.(string)
	return ok && alphaRegex.MatchString(s), nil
}

func checkAlphaNum(_ context.Context, in Input) (bool, error) {
	s, ok := in.Value.(string)
	return ok && alphaNumRegex.MatchString(s), nil
}

func checkAlphaDash(_ context.Context, in Input) (bool, error) {
	s, ok := stringValue(in.Value)
	return ok && alphaDashRegex.MatchString(s), nil
}

// checkRegex matches the value against the pattern parameter. The rule parser
// splits on commas, so the parameters are joined back before compiling:
// "regex:/^a{1,3}$/" arrives as ["/^a{1", "3}$/"].
func checkRegex(_ context.Context, in Input) (bool, error) {
	raw := strings.Join(in.Params, paramDelimiter)
	re, err := compiledPatterns.GetOrLoad(raw, func() (*regexp.Regexp, error) {
		return compilePattern(raw)
	})
	if err != nil {
		return false, misconfigured(in.Rule, ErrInvalidParam, "The %s validation rule has an invalid pattern: %v", in.Rule, err)
	}
	s, ok := stringValue(in.Value)
	if !ok {
		return false, nil
	}
	return re.MatchString(s), nil
}

// checkIn compares the value, rendered as a string, with every parameter.
func checkIn(_ context.Context, in Input) (bool, error) {
	s, ok := stringValue(in.Value)
	if !ok {
		return false, nil
	}
	return slices.Contains(in.Params, s), nil
}

// checkConfirmed requires the input named by the first parameter to be
// present and identical to the value.
func checkConfirmed(_ context.Context, in Input) (bool, error) {
	other, ok := in.Inputs[in.Param(0)]
	if !ok || other == nil {
		return false, nil
	}
	return reflect.DeepEqual(in.Value, other), nil
}

// compiledPatterns holds regex rule patterns keyed by their raw parameter text.
var compiledPatterns = cache.NewLRU[string, *regexp.Regexp](256)

var patternFlags = map[rune]string{
	'i': "i",
	'm': "m",
	's': "s",
	'U': "U",
	'u': "",
}

// patternDelimiters are the characters accepted around a delimited pattern.
// Brackets are left out so "(a|b)" keeps meaning a plain pattern.
const patternDelimiters = "/#~!@%`;"

// compilePattern accepts both plain Go patterns and delimited patterns such as
// "/^[a-z]+$/i". Supported trailing flags are i, m, s, U and u (ignored).
func compilePattern(raw string) (*regexp.Regexp, error) {
	if len(raw) < 2 || !isDelimiter(raw[0]) {
		return regexp.Compile(raw)
	}

	end := strings.LastIndexByte(raw, raw[0])
	if end <= 0 {
		return regexp.Compile(raw)
	}

	pattern, modifiers := raw[1:end], raw[end+1:]
	var flags strings.Builder
	for _, m := range modifiers {
		flag, known := patternFlags[m]
		if !known {
			return nil, fmt.Errorf("unsupported pattern modifier %q", m)
		}
		flags.WriteString(flag)
	}
	if flags.Len() > 0 {
		pattern = "(?" + flags.String() + ")" + pattern
	}

	return regexp.Compile(pattern)
}

func isDelimiter(c byte) bool {
	return strings.IndexByte(patternDelimiters, c) >= 0
}
