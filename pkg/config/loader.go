package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	files       []string
	optional    bool
	prefix      string
	environment map[string]string
}

// Option configures a single Load call.
type Option func(*options)

// WithEnvFiles loads the given .env files before parsing. Missing files are
// an error unless the list was added with WithOptionalEnvFiles.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
	}
}

// WithOptionalEnvFiles loads the given .env files and ignores the ones that
// cannot be read.
func WithOptionalEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
		o.optional = true
	}
}

// WithPrefix prepends prefix to every variable name declared in struct tags.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment parses from the given map instead of the process environment.
// Env files are ignored in this mode.
func WithEnvironment(environment map[string]string) Option {
	return func(o *options) {
		o.environment = environment
	}
}

// Load parses environment variables into v according to its `env` tags.
// Env files never override variables that are already set.
//
// Example:
//
//	type LookupConfig struct {
//		DSN string `env:"SQL_DSN,required"`
//	}
//
//	var cfg LookupConfig
//	if err := config.Load(&cfg, config.WithOptionalEnvFiles(".env")); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.environment == nil && len(o.files) > 0 {
		if err := godotenv.Load(o.files...); err != nil && !o.optional {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	parseOpts := env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}
	if err := env.ParseWithOptions(v, parseOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
