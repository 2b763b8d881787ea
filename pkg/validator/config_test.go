package validator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/config"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		cfg, err := validator.LoadConfig(config.WithEnvironment(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, validator.Config{
			Timezone:     "UTC",
			StrictParams: true,
			LogLevel:     "info",
			LogFormat:    "json",
		}, cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := validator.LoadConfig(config.WithEnvironment(map[string]string{
			"VALIDATOR_TIMEZONE":      "Europe/Berlin",
			"VALIDATOR_STRICT_PARAMS": "false",
			"VALIDATOR_MESSAGES_FILE": "messages.yaml",
		}))
		require.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", cfg.Timezone)
		assert.False(t, cfg.StrictParams)
		assert.Equal(t, "messages.yaml", cfg.MessagesFile)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := validator.LoadConfig(config.WithEnvironment(map[string]string{"VALIDATOR_STRICT_PARAMS": "sometimes"}))
		assert.ErrorIs(t, err, validator.ErrParsingConfig)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	base := validator.Config{Timezone: "UTC", StrictParams: true, LogLevel: "info", LogFormat: "json"}

	t.Run("applies message file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"required": ":attribute is missing"}`), 0o600))

		cfg := base
		cfg.MessagesFile = path
		v, err := validator.NewFromConfig(t.Context(), cfg)
		require.NoError(t, err)

		v.AddRule("email", "required")
		require.NoError(t, v.Run(t.Context()))
		msg, _ := v.FirstError()
		assert.Equal(t, "email is missing", msg)
	})

	t.Run("explicit options win", func(t *testing.T) {
		cfg := base
		v, err := validator.NewFromConfig(t.Context(), cfg,
			validator.WithStrictParams(false),
			validator.WithLogger(nil),
		)
		require.NoError(t, err)

		v.SetInputs(validator.Inputs{"a": "abc"}).AddRule("a", "min:2x")
		require.NoError(t, v.Run(t.Context()))
		assert.True(t, v.Passed())
	})

	t.Run("strict params from config", func(t *testing.T) {
		v, err := validator.NewFromConfig(t.Context(), base)
		require.NoError(t, err)

		v.SetInputs(validator.Inputs{"a": "abc"}).AddRule("a", "min:2x")
		require.NoError(t, v.Run(t.Context()))
		require.Len(t, v.Diagnostics(), 1)
		assert.ErrorIs(t, v.Diagnostics()[0].Err, validator.ErrInvalidParam)
	})

	t.Run("invalid settings", func(t *testing.T) {
		cfg := base
		cfg.Timezone = "Nowhere/Land"
		_, err := validator.NewFromConfig(t.Context(), cfg)
		assert.ErrorIs(t, err, validator.ErrInvalidTimezone)

		cfg = base
		cfg.LogLevel = "loud"
		_, err = validator.NewFromConfig(t.Context(), cfg)
		assert.ErrorIs(t, err, validator.ErrParsingConfig)

		cfg = base
		cfg.LogFormat = "xml"
		_, err = validator.NewFromConfig(t.Context(), cfg)
		assert.ErrorIs(t, err, validator.ErrParsingConfig)

		cfg = base
		cfg.MessagesFile = filepath.Join(t.TempDir(), "missing.yaml")
		_, err = validator.NewFromConfig(t.Context(), cfg)
		assert.ErrorIs(t, err, validator.ErrFailedToLoadMessages)
	})
}
