package validator

import (
	"context"
	"net/mail"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// grammar runs single-value grammar checks (url, timezone) from go-playground.
// The instance is safe for concurrent use.
var grammar = playground.New()

// checkEmail validates an address with net/mail and then applies the
// constraints typical for web forms: a single "@" and a dotted domain.
func checkEmail(_ context.Context, in Input) (bool, error) {
	value, ok := in.Value.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return false, nil
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false, nil
	}

	localPart, domain, found := strings.Cut(addr.Address, "@")
	if !found || localPart == "" || strings.Contains(domain, "@") {
		return false, nil
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false, nil
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false, nil
		}
	}

	return true, nil
}

func checkURL(_ context.Context, in Input) (bool, error) {
	value, ok := in.Value.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return false, nil
	}
	return grammar.Var(value, "url") == nil, nil
}

// checkTimezone accepts IANA zone identifiers such as "Europe/Berlin" and "UTC".
func checkTimezone(_ context.Context, in Input) (bool, error) {
	value, ok := in.Value.(string)
	if !ok || value == "" {
		return false, nil
	}
	return grammar.Var(value, "timezone") == nil, nil
}

func checkUUID(_ context.Context, in Input) (bool, error) {
	value, ok := in.Value.(string)
	if !ok {
		return false, nil
	}
	_, err := uuid.Parse(value)
	return err == nil, nil
}

// checkArray accepts slices, arrays and maps.
func checkArray(_ context.Context, in Input) (bool, error) {
	if in.Value == nil {
		return false, nil
	}
	switch reflect.ValueOf(in.Value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true, nil
	default:
		return false, nil
	}
}
