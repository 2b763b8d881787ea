package validator

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// Outcome is the result of dispatching one rule token.
type Outcome uint8

const (
	// Pass means the value satisfied the rule.
	Pass Outcome = iota + 1
	// Fail means the value did not satisfy the rule, or the rule was misconfigured.
	Fail
	// Unknown means no handler is registered under the rule name.
	Unknown
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Env carries the collaborators and settings a handler may need.
type Env struct {
	Lookup   UniqueLookup
	Files    FileInspector
	Location *time.Location
	// StrictParams turns non-numeric numeric parameters into misconfiguration
	// instead of coercing them to their leading digits.
	StrictParams bool
}

// Input is everything a handler sees for a single rule token.
type Input struct {
	Field  string
	Rule   string
	Value  any
	Params []string
	Inputs Inputs
	Env    Env
}

// Param returns the i-th parameter or an empty string.
func (in Input) Param(i int) string {
	if i < 0 || i >= len(in.Params) {
		return ""
	}
	return in.Params[i]
}

func (in Input) location() *time.Location {
	if in.Env.Location == nil {
		return time.UTC
	}
	return in.Env.Location
}

// Handler validates a value for one rule kind.
// Check returns a non-nil error only for misconfiguration (*ConfigError) or
// collaborator failures; a plain "does not match" is (false, nil).
type Handler interface {
	MinParams() int
	Check(ctx context.Context, in Input) (bool, error)
}

// CheckFunc is the function form of Handler.Check.
type CheckFunc func(ctx context.Context, in Input) (bool, error)

type funcHandler struct {
	minParams int
	check     CheckFunc
}

// NewHandler wraps a check function with its required parameter count.
func NewHandler(minParams int, check CheckFunc) Handler {
	return funcHandler{minParams: minParams, check: check}
}

func (h funcHandler) MinParams() int { return h.minParams }

func (h funcHandler) Check(ctx context.Context, in Input) (bool, error) {
	return h.check(ctx, in)
}

// Registry maps rule names to handlers. It is safe for concurrent reads and writes,
// though validators only read from it during a run.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// DefaultRegistry returns a new registry holding every built-in rule.
// Each call returns an independent copy so registering custom rules never
// leaks across validators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for name, h := range builtinHandlers {
		r.handlers[name] = h
	}
	return r
}

// Register adds or replaces the handler for name.
func (r *Registry) Register(name string, h Handler) error {
	if strings.TrimSpace(name) == "" || h == nil {
		return ErrInvalidHandler
	}
	if fh, ok := h.(funcHandler); ok && fh.check == nil {
		return ErrInvalidHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
	return nil
}

func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for name, h := range r.handlers {
		c.handlers[name] = h
	}
	return c
}

// Evaluate dispatches in.Rule to its handler.
// A missing handler yields Unknown with no error. Too few parameters yield
// Fail together with a *ConfigError; the handler is not called in that case.
func (r *Registry) Evaluate(ctx context.Context, in Input) (Outcome, error) {
	h, ok := r.Lookup(in.Rule)
	if !ok {
		return Unknown, nil
	}

	if want := h.MinParams(); len(in.Params) < want {
		return Fail, notEnoughParams(in.Rule, want)
	}

	passed, err := h.Check(ctx, in)
	if err != nil {
		return Fail, err
	}
	if !passed {
		return Fail, nil
	}
	return Pass, nil
}
