package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/config"
)

type sampleConfig struct {
	Timezone string        `env:"TIMEZONE" envDefault:"UTC"`
	Strict   bool          `env:"STRICT" envDefault:"true"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"2s"`
	DSN      string        `env:"DSN"`
}

type requiredConfig struct {
	DSN string `env:"DSN,required"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
		assert.Equal(t, "UTC", cfg.Timezone)
		assert.True(t, cfg.Strict)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})

	t.Run("explicit environment", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"TIMEZONE": "Europe/Berlin",
			"STRICT":   "false",
		}))
		require.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", cfg.Timezone)
		assert.False(t, cfg.Strict)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		err := config.Load(&cfg,
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_DSN": "postgres://db", "DSN": "ignored"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "postgres://db", cfg.DSN)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"STRICT": "maybe"}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("required missing", func(t *testing.T) {
		t.Parallel()
		var cfg requiredConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()
		var cfg *sampleConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FIELDRULES_CFG_TEST_DSN=file-dsn\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FIELDRULES_CFG_TEST_DSN") })

	t.Run("missing file is an error", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(dir, "missing.env")))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})

	t.Run("missing optional file is ignored", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithOptionalEnvFiles(filepath.Join(dir, "missing.env")))
		assert.NoError(t, err)
	})

	t.Run("file values are loaded", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithPrefix("FIELDRULES_CFG_TEST_"), config.WithEnvFiles(path))
		require.NoError(t, err)
		assert.Equal(t, "file-dsn", cfg.DSN)
	})
}

func TestMustLoadPanics(t *testing.T) {
	t.Parallel()
	var cfg requiredConfig
	assert.Panics(t, func() {
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	})
}
