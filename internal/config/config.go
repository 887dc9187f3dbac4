// Package config handles configuration loading for trellis.
// Configuration is a JSON file read once at startup, with environment
// variable overrides for the API credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// DefaultPath is the config file read when TRELLIS_CONFIG is not set.
const DefaultPath = "config.json"

// PathEnv names the environment variable that overrides DefaultPath.
const PathEnv = "TRELLIS_CONFIG"

// Source kinds.
const (
	SourceRemote  = "remote"
	SourceFixture = "fixture"
)

// Config holds all configuration for trellis.
type Config struct {
	// BaseURL is the REST API root used by the remote source.
	BaseURL string `mapstructure:"base_url"`
	// Key is the API key used by the remote source.
	Key string `mapstructure:"key"`
	// Token is the API token used by the remote source.
	Token string `mapstructure:"token"`

	// Source selects the data source: "remote" or "fixture".
	Source string `mapstructure:"source"`
	// FixtureRoot is the directory containing test_data/.
	FixtureRoot string `mapstructure:"fixture_root"`
	// WatchFixtures repaints when fixture files change.
	WatchFixtures bool `mapstructure:"watch_fixtures"`

	// TickInterval is the heartbeat redraw interval.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// LogFile is the diagnostic log, opened in append mode.
	LogFile string `mapstructure:"log_file"`
	// FetchConcurrency is how many card lists are fetched in parallel.
	FetchConcurrency int `mapstructure:"fetch_concurrency"`
	// AbortOnSourceError ends the dashboard on the first fetch failure
	// instead of drawing an empty pane.
	AbortOnSourceError bool `mapstructure:"abort_on_source_error"`
}

// Path returns the config file path, honoring TRELLIS_CONFIG.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load loads configuration from Path().
func Load() (*Config, error) {
	return LoadFromPath(Path())
}

// LoadFromPath loads configuration from a specific JSON file.
// Precedence (highest to lowest):
// 1. Environment variables (TRELLO_KEY, TRELLO_TOKEN)
// 2. The config file
// 3. Built-in defaults
//
// A missing file or malformed JSON is an error.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	v.BindEnv("key", KeyEnv)
	v.BindEnv("token", TokenEnv)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Key = expandEnv(cfg.Key)
	cfg.Token = expandEnv(cfg.Token)

	return cfg, nil
}

// Validate checks that the configuration can build a working dashboard.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceRemote:
		if c.BaseURL == "" {
			return fmt.Errorf("remote source requires base_url")
		}
		if c.Key == "" {
			return fmt.Errorf("remote source requires key (or %s)", KeyEnv)
		}
		if c.Token == "" {
			return fmt.Errorf("remote source requires token (or %s)", TokenEnv)
		}
	case SourceFixture:
	default:
		return fmt.Errorf("unknown source %q (want %q or %q)", c.Source, SourceRemote, SourceFixture)
	}

	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("fetch_concurrency must be at least 1, got %d", c.FetchConcurrency)
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file must not be empty")
	}
	return nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Remote defaults
	v.SetDefault("base_url", "")
	v.SetDefault("key", "")
	v.SetDefault("token", "")

	// Source defaults
	v.SetDefault("source", SourceRemote)
	v.SetDefault("fixture_root", ".")
	v.SetDefault("watch_fixtures", true)

	// Dashboard defaults
	v.SetDefault("tick_interval", "200ms")
	v.SetDefault("log_file", "output.log")
	v.SetDefault("fetch_concurrency", 1)
	v.SetDefault("abort_on_source_error", false)
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Source:           SourceRemote,
		FixtureRoot:      ".",
		WatchFixtures:    true,
		TickInterval:     200 * time.Millisecond,
		LogFile:          "output.log",
		FetchConcurrency: 1,
	}
}
