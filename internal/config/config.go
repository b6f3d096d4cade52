package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eigerco/referendum/pkg/log"
)

const (
	EnvDataDir     = "REFERENDUM_DATA_DIR"
	EnvLogLevel    = "REFERENDUM_LOG_LEVEL"
	EnvLogFormat   = "REFERENDUM_LOG_FORMAT"
	EnvOwner       = "REFERENDUM_OWNER"
	EnvMetricsAddr = "REFERENDUM_METRICS_ADDR"
	EnvGenesis     = "REFERENDUM_GENESIS"
	EnvScript      = "REFERENDUM_SCRIPT"
)

var ErrMissingOwner = errors.New("owner is required")

type Config struct {
	DataDir     string // empty: in-memory store, nothing persists
	LogLevel    string
	LogFormat   string // console or json
	Owner       string // principal allowed to toggle the emergency stop
	MetricsAddr string // optional: serve /metrics on this address
	Genesis     string // optional: genesis file path, overrides the genesis owner when Owner is empty
	Script      string // optional: step script to replay
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	return Config{
		DataDir:     getenv(EnvDataDir, ""),
		LogLevel:    getenv(EnvLogLevel, zerolog.LevelInfoValue),
		LogFormat:   getenv(EnvLogFormat, "console"),
		Owner:       getenv(EnvOwner, ""),
		MetricsAddr: getenv(EnvMetricsAddr, ""),
		Genesis:     getenv(EnvGenesis, ""),
		Script:      getenv(EnvScript, ""),
	}
}

// Validate checks the logging settings and the owner. It must run after the
// genesis owner, if any, has been applied.
func (c Config) Validate() error {
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if _, err := log.ParseLoggerType(c.LogFormat); err != nil {
		return err
	}
	if c.Owner == "" {
		return ErrMissingOwner
	}
	return nil
}

// LogOptions returns the logger options for the configured level and format
func (c Config) LogOptions() (log.Options, error) {
	level, err := log.ParseLogLevel(c.LogLevel)
	if err != nil {
		return log.Options{}, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	typ, err := log.ParseLoggerType(c.LogFormat)
	if err != nil {
		return log.Options{}, err
	}
	return log.Options{LogLevel: level, Type: typ}, nil
}

func (c Config) InMemory() bool {
	return c.DataDir == ""
}

func (c Config) String() string {
	dataDir := c.DataDir
	if c.InMemory() {
		dataDir = "(memory)"
	}
	return fmt.Sprintf("data_dir=%s log=%s/%s owner=%s metrics=%s genesis=%s script=%s",
		dataDir, c.LogLevel, c.LogFormat, c.Owner, c.MetricsAddr, c.Genesis, c.Script)
}
