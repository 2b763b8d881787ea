package validator

import (
	"log/slog"
	"time"
)

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides message templates per rule. Rules not present keep
// their current template.
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		v.messages = v.messages.Merge(messages)
	}
}

// WithRegistry replaces the rule registry. The validator reads from it during
// runs; share one registry across validators only if nobody registers into it concurrently.
// Rules added with WithRule go to a copy, so r itself is never modified.
func WithRegistry(r *Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithRule registers a handler on the validator's own copy of the registry,
// regardless of where it appears relative to WithRegistry.
// Invalid handlers are reported by New.
func WithRule(name string, h Handler) Option {
	return func(v *Validator) {
		v.customRules = append(v.customRules, customRule{name: name, handler: h})
	}
}

// WithUniqueLookup injects the collaborator used by the unique rule.
func WithUniqueLookup(l UniqueLookup) Option {
	return func(v *Validator) {
		v.env.Lookup = l
	}
}

// WithFileInspector injects the collaborator used by file, image, mimetypes and size.
func WithFileInspector(f FileInspector) Option {
	return func(v *Validator) {
		v.env.Files = f
	}
}

// WithLocation sets the location date rules parse in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.env.Location = loc
		}
	}
}

// WithStrictParams controls whether malformed numeric parameters are
// misconfiguration (true, the default) or coerced to their leading digits.
func WithStrictParams(strict bool) Option {
	return func(v *Validator) {
		v.env.StrictParams = strict
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}
