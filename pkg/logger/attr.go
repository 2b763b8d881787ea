package logger

import (
	"fmt"
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Field records the validated field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Rule records the rule name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Params records rule parameters under the key "params".
// Empty parameter lists produce an empty Attr.
func Params(params []string) slog.Attr {
	if len(params) == 0 {
		return slog.Attr{}
	}
	return slog.Any("params", params)
}

// Outcome records a rule outcome under the key "outcome".
func Outcome(o fmt.Stringer) slog.Attr {
	return slog.String("outcome", o.String())
}
