package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationFailed is returned by Validator.Err when at least one field failed.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownRule marks a rule token whose name is not registered.
	ErrUnknownRule = errors.New("validation rule does not exist")

	// ErrMisconfigured is the parent of every rule-declaration problem.
	ErrMisconfigured = errors.New("validation rule misconfigured")

	// ErrNotEnoughParams is returned when a rule gets fewer parameters than it requires.
	ErrNotEnoughParams = fmt.Errorf("%w: not enough parameters", ErrMisconfigured)

	// ErrInvalidParam is returned when a rule parameter cannot be interpreted (bad number, bad pattern, bad layout).
	ErrInvalidParam = fmt.Errorf("%w: invalid parameter", ErrMisconfigured)

	// ErrMissingCollaborator is returned when a rule needs a lookup or file inspector that was not injected.
	ErrMissingCollaborator = fmt.Errorf("%w: collaborator is not configured", ErrMisconfigured)

	ErrInvalidHandler = errors.New("rule handler must have a name and a check function")

	ErrFailedToLoadMessages      = errors.New("failed to load message templates")
	ErrFailedToParseMessages     = errors.New("failed to parse message templates")
	ErrUnsupportedMessagesFormat = errors.New("unsupported message templates format")
	ErrParsingConfig             = errors.New("failed to parse validator config")
	ErrInvalidTimezone           = errors.New("invalid timezone")
)

// ConfigError describes a rule that was declared incorrectly.
// The message is user-independent and lands in Validator.Diagnostics, never in Validator.Errors.
type ConfigError struct {
	Rule    string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func misconfigured(rule string, kind error, format string, args ...any) error {
	return &ConfigError{
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
		Err:     kind,
	}
}

func notEnoughParams(rule string, want int) error {
	noun := "parameter"
	if want != 1 {
		noun = "parameters"
	}
	return misconfigured(rule, ErrNotEnoughParams, "The %s validation rule requires at least %d %s.", rule, want, noun)
}

// IsMisconfigured reports whether err describes a rule declaration problem.
func IsMisconfigured(err error) bool {
	return errors.Is(err, ErrMisconfigured)
}
