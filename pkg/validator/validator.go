package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
)

// FieldState is the per-field position in a validation run.
type FieldState uint8

const (
	// StateUndeclared is reported for fields without declared rules.
	StateUndeclared FieldState = iota
	StatePending
	StatePassed
	StateFailed
	// StateUnknownRule means evaluation stopped at a rule name that is not registered.
	StateUnknownRule
)

func (s FieldState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StatePassed:
		return "passed"
	case StateFailed:
		return "failed"
	case StateUnknownRule:
		return "unknown_rule"
	default:
		return "undeclared"
	}
}

// DiagnosticKind separates declaration problems from data problems.
type DiagnosticKind uint8

const (
	DiagnosticMisconfigured DiagnosticKind = iota + 1
	DiagnosticUnknownRule
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticMisconfigured:
		return "misconfigured"
	case DiagnosticUnknownRule:
		return "unknown_rule"
	default:
		return "invalid"
	}
}

// Diagnostic reports a problem with the rule declaration itself.
// Diagnostics are meant for developers and logs, not for end users.
type Diagnostic struct {
	Field   string
	Rule    string
	Kind    DiagnosticKind
	Message string
	Err     error
}

// Validator evaluates declared rules against a set of inputs.
//
// A Validator holds the state of one run at a time and is not safe for
// concurrent use; run concurrent validations on separate instances.
type Validator struct {
	inputs Inputs
	fields []string
	rules  map[string][]string

	errors      ValidationErrors
	states      map[string]FieldState
	diagnostics []Diagnostic

	messages Messages
	registry *Registry
	env      Env
	log      *slog.Logger

	customRules []customRule
}

type customRule struct {
	name    string
	handler Handler
}

// New creates a validator with the built-in rules and default messages.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		inputs:   Inputs{},
		rules:    make(map[string][]string),
		states:   make(map[string]FieldState),
		messages: DefaultMessages(),
		registry: DefaultRegistry(),
		env: Env{
			Location:     time.UTC,
			StrictParams: true,
		},
		log: logger.Discard(),
	}

	for _, opt := range opts {
		opt(v)
	}
	if len(v.customRules) > 0 {
		registry := v.registry.Clone()
		for _, rule := range v.customRules {
			if err := registry.Register(rule.name, rule.handler); err != nil {
				return nil, err
			}
		}
		v.registry = registry
		v.customRules = nil
	}

	return v, nil
}

// MustNew works like New but panics on invalid options.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("validator: %v", err))
	}
	return v
}

// Validate builds a validator, runs it and returns it for inspection.
// The error is non-nil only when a collaborator failed or options were invalid.
func Validate(ctx context.Context, inputs Inputs, rules map[string]string, opts ...Option) (*Validator, error) {
	v, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.SetInputs(inputs).SetRules(rules).Run(ctx); err != nil {
		return v, err
	}
	return v, nil
}

// SetInputs sets the values rules are evaluated against. Missing keys read as nil.
func (v *Validator) SetInputs(inputs Inputs) *Validator {
	if inputs == nil {
		inputs = Inputs{}
	}
	v.inputs = inputs
	return v
}

// SetRules replaces every declaration with pipe-delimited rule lists.
// Go maps carry no order, so fields are evaluated in lexical order; use
// AddRule to control the order explicitly.
func (v *Validator) SetRules(rules map[string]string) *Validator {
	v.resetRules()
	for _, field := range sortedKeys(rules) {
		v.declare(field, SplitRules(rules[field]))
	}
	return v
}

// SetRuleList replaces every declaration with token sequences. The tokens are
// not split on "|", which keeps patterns such as "regex:/^(a|b)$/" intact.
func (v *Validator) SetRuleList(rules map[string][]string) *Validator {
	v.resetRules()
	for _, field := range sortedKeys(rules) {
		v.declare(field, slices.Clone(rules[field]))
	}
	return v
}

// AddRule declares a pipe-delimited rule list for field. Fields are evaluated
// in the order they were first declared; declaring a field again replaces its
// rules without moving it.
func (v *Validator) AddRule(field, list string) *Validator {
	v.declare(field, SplitRules(list))
	return v
}

// AddRules declares field with an explicit token sequence.
func (v *Validator) AddRules(field string, tokens ...string) *Validator {
	v.declare(field, slices.Clone(tokens))
	return v
}

func (v *Validator) declare(field string, tokens []string) {
	if _, exists := v.rules[field]; !exists {
		v.fields = append(v.fields, field)
	}
	v.rules[field] = tokens
}

func (v *Validator) resetRules() {
	v.fields = nil
	v.rules = make(map[string][]string)
}

func (v *Validator) reset() {
	v.errors = nil
	v.diagnostics = nil
	v.states = make(map[string]FieldState, len(v.fields))
	for _, field := range v.fields {
		v.states[field] = StatePending
	}
}

// Run evaluates every declared field in declaration order. Each field stops
// at its first failing or unknown rule, so a field collects at most one error.
//
// Validation failures are not errors: inspect them with Fails, Errors and
// Diagnostics. Run returns an error only when a collaborator (uniqueness
// lookup, file inspector) fails or ctx is done; the run stops there and the
// errors recorded so far stay available.
func (v *Validator) Run(ctx context.Context) error {
	v.reset()

	for _, field := range v.fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.runField(ctx, field); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) runField(ctx context.Context, field string) error {
	value := v.inputs[field]

	for _, token := range v.rules[field] {
		name, params := ParseRule(token)
		in := Input{
			Field:  field,
			Rule:   name,
			Value:  value,
			Params: params,
			Inputs: v.inputs,
			Env:    v.env,
		}

		outcome, err := v.registry.Evaluate(ctx, in)
		if err != nil {
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				return fmt.Errorf("validator: field %q rule %q: %w", field, name, err)
			}
			v.diagnose(ctx, field, name, DiagnosticMisconfigured, cfgErr.Message, err)
			outcome = Fail
		}

		switch outcome {
		case Unknown:
			v.states[field] = StateUnknownRule
			v.errors.Add(ValidationError{Field: field, Rule: name, Message: unknownRuleMessage(name)})
			v.diagnose(ctx, field, name, DiagnosticUnknownRule, unknownRuleMessage(name), fmt.Errorf("%w: %q", ErrUnknownRule, name))
			return nil
		case Fail:
			v.states[field] = StateFailed
			message := v.messages.Render(field, name, params)
			v.errors.Add(ValidationError{Field: field, Rule: name, Message: message})
			v.log.DebugContext(ctx, "validation rule failed",
				logger.Field(field),
				logger.Rule(name),
				logger.Params(params),
				logger.Outcome(outcome),
			)
			return nil
		}
	}

	v.states[field] = StatePassed
	return nil
}

func (v *Validator) diagnose(ctx context.Context, field, rule string, kind DiagnosticKind, message string, err error) {
	v.diagnostics = append(v.diagnostics, Diagnostic{
		Field:   field,
		Rule:    rule,
		Kind:    kind,
		Message: message,
		Err:     err,
	})
	v.log.WarnContext(ctx, "validation rule declaration problem",
		logger.Field(field),
		logger.Rule(rule),
		slog.String("kind", kind.String()),
		logger.Error(err),
	)
}

// Fails reports whether any field recorded an error.
func (v *Validator) Fails() bool {
	return len(v.errors) > 0
}

func (v *Validator) Passed() bool {
	return !v.Fails()
}

// Errors returns a copy of every recorded error in evaluation order.
func (v *Validator) Errors() ValidationErrors {
	return slices.Clone(v.errors)
}

// ErrorsFor returns the messages recorded for field, empty when there are none.
func (v *Validator) ErrorsFor(field string) []string {
	return v.errors.Get(field)
}

// FirstError returns the first message of the given field, or the first
// message overall when no field is given.
func (v *Validator) FirstError(field ...string) (string, bool) {
	if len(field) == 0 {
		return v.errors.First()
	}
	for _, err := range v.errors {
		if err.Field == field[0] {
			return err.Message, true
		}
	}
	return "", false
}

func (v *Validator) State(field string) FieldState {
	return v.states[field]
}

// Diagnostics returns the rule declaration problems of the last run.
func (v *Validator) Diagnostics() []Diagnostic {
	return slices.Clone(v.diagnostics)
}

// HasUnknownRules reports whether any field stopped at an unregistered rule.
func (v *Validator) HasUnknownRules() bool {
	return slices.ContainsFunc(v.diagnostics, func(d Diagnostic) bool {
		return d.Kind == DiagnosticUnknownRule
	})
}

// Err returns the recorded errors as a ValidationErrors value, or nil when the
// run passed. errors.Is(err, ErrValidationFailed) holds for the result.
func (v *Validator) Err() error {
	if v.Passed() {
		return nil
	}
	return v.Errors()
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
