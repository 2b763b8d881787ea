package sqldb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

var identifierPart = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SplitIdentifier splits an optionally schema-qualified name such as
// "public.users" and rejects anything that is not a plain identifier.
func SplitIdentifier(name string) ([]string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	for _, p := range parts {
		if !identifierPart.MatchString(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return parts, nil
}

// Dialect quotes identifiers and renders positional placeholders.
type Dialect struct {
	Quote       func(parts []string) string
	Placeholder func(n int) string
}

// Dollar renders PostgreSQL style placeholders: $1, $2 and so on.
func Dollar(n int) string { return "$" + strconv.Itoa(n) }

// Question renders "?" placeholders.
func Question(int) string { return "?" }

// CountQuery builds the statement counting rows that hold q.Value in
// q.Column, skipping rows whose except or id columns equal the given values.
// Identifier errors are returned as validator misconfiguration so the
// offending rule lands in the validator diagnostics.
func CountQuery(q validator.UniqueQuery, d Dialect) (string, []any, error) {
	table, err := quoted(q.Table, d)
	if err != nil {
		return "", nil, err
	}
	column, err := quoted(q.Column, d)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	args := []any{q.Value}
	fmt.Fprintf(&sb, "SELECT COUNT(*) FROM %s WHERE %s = %s", table, column, d.Placeholder(1))

	for _, ex := range []struct {
		column string
		value  any
	}{{q.ExceptColumn, q.ExceptValue}, {q.IDColumn, q.IDValue}} {
		if ex.column == "" {
			continue
		}
		col, err := quoted(ex.column, d)
		if err != nil {
			return "", nil, err
		}
		args = append(args, ex.value)
		fmt.Fprintf(&sb, " AND %s <> %s", col, d.Placeholder(len(args)))
	}

	return sb.String(), args, nil
}

func quoted(name string, d Dialect) (string, error) {
	parts, err := SplitIdentifier(name)
	if err != nil {
		return "", &validator.ConfigError{
			Rule:    "unique",
			Message: fmt.Sprintf("The unique validation rule got an invalid identifier %q.", name),
			Err:     fmt.Errorf("%w: %w", validator.ErrInvalidParam, err),
		}
	}
	return d.Quote(parts), nil
}
