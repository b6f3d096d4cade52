package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/referendum/pkg/log"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{EnvDataDir, EnvLogLevel, EnvLogFormat, EnvOwner, EnvMetricsAddr, EnvGenesis, EnvScript} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, Config{LogLevel: "info", LogFormat: "console"}, cfg)
	assert.True(t, cfg.InMemory())
	assert.ErrorIs(t, cfg.Validate(), ErrMissingOwner)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/var/lib/referendum")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvOwner, " admin ")
	t.Setenv(EnvMetricsAddr, ":9100")
	t.Setenv(EnvGenesis, "genesis.json")
	t.Setenv(EnvScript, "steps.json")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "admin", cfg.Owner)
	assert.False(t, cfg.InMemory())

	opts, err := cfg.LogOptions()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, opts.LogLevel)
	assert.Equal(t, log.JSONLogger, opts.Type)
}

func TestValidate(t *testing.T) {
	valid := Config{LogLevel: "info", LogFormat: "console", Owner: "admin"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"no owner", func(c *Config) { c.Owner = "" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestString(t *testing.T) {
	cfg := Config{LogLevel: "info", LogFormat: "json", Owner: "admin"}
	assert.Contains(t, cfg.String(), "data_dir=(memory)")
	assert.Contains(t, cfg.String(), "owner=admin")
}
