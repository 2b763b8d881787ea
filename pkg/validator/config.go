package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/fieldrules/pkg/config"
	"github.com/dmitrymomot/fieldrules/pkg/logger"
)

// Config holds the environment-driven settings of an evaluator.
type Config struct {
	MessagesFile string `env:"VALIDATOR_MESSAGES_FILE"`                   // MessagesFile is an optional YAML or JSON template table merged over the defaults.
	Timezone     string `env:"VALIDATOR_TIMEZONE" envDefault:"UTC"`       // Timezone is the IANA location date rules parse in.
	StrictParams bool   `env:"VALIDATOR_STRICT_PARAMS" envDefault:"true"` // StrictParams treats malformed numeric parameters as misconfiguration.
	LogLevel     string `env:"VALIDATOR_LOG_LEVEL" envDefault:"info"`     // LogLevel is one of debug, info, warn, error.
	LogFormat    string `env:"VALIDATOR_LOG_FORMAT" envDefault:"json"`    // LogFormat is json or text.
}

// LoadConfig reads Config from the environment, loading an optional .env file first.
func LoadConfig(opts ...config.Option) (Config, error) {
	opts = append([]config.Option{config.WithOptionalEnvFiles(".env")}, opts...)

	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// NewFromConfig creates a validator from cfg. Explicit options are applied
// after the config-derived ones and win over them.
func NewFromConfig(ctx context.Context, cfg Config, opts ...Option) (*Validator, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, errors.Join(ErrInvalidTimezone, err)
	}

	log, err := configLogger(cfg)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithLocation(loc),
		WithStrictParams(cfg.StrictParams),
		WithLogger(log),
	}

	if cfg.MessagesFile != "" {
		messages, err := LoadMessages(ctx, cfg.MessagesFile)
		if err != nil {
			return nil, err
		}
		base = append(base, WithMessages(messages))
	}

	return New(append(base, opts...)...)
}

func configLogger(cfg Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		return nil, errors.Join(ErrParsingConfig, fmt.Errorf("log level %q: %w", cfg.LogLevel, err))
	}

	format := logger.Format(strings.ToLower(strings.TrimSpace(cfg.LogFormat)))
	if format != logger.FormatJSON && format != logger.FormatText {
		return nil, fmt.Errorf("%w: log format %q", ErrParsingConfig, cfg.LogFormat)
	}

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithAttr(logger.Component("validator")),
	), nil
}
