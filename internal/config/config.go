package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListen       = "127.0.0.1:8080"
	DefaultTimezone     = "Europe/Warsaw"
	DefaultLogLevel     = "info"
	DefaultCacheMaxAge  = 3600
	DefaultRefreshCron  = "0 0 * * *"
	DefaultCaptureWidth = 1200
	// 1200x630 is the usual link-preview image size.
	DefaultCaptureHeight  = 630
	DefaultCaptureTimeout = 30

	envPrefix = "NIEDZIELE_"
)

// CaptureConfig controls the headless-browser preview image of the landing
// page.
type CaptureConfig struct {
	// Enabled re-captures the preview after every scheduled refresh.
	Enabled bool `yaml:"enabled" json:"enabled" env:"ENABLED"`
	// Output is where the PNG is written and served from (/og.png).
	Output         string `yaml:"output" json:"output" env:"OUTPUT"`
	Width          int    `yaml:"width" json:"width" env:"WIDTH"`
	Height         int    `yaml:"height" json:"height" env:"HEIGHT"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"listen" env:"LISTEN"`

	// Timezone decides what "today" (and therefore the current year) is.
	// Dates themselves carry no zone.
	Timezone string `yaml:"timezone" json:"timezone" env:"TIMEZONE"`

	LogLevel string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`

	// Year pins the published year. Zero follows the clock.
	Year int `yaml:"year" json:"year" env:"YEAR"`

	// Dates replaces the compiled-in/generated list. Entries are validated
	// at load time.
	Dates []string `yaml:"dates,omitempty" json:"dates,omitempty" env:"DATES" envSeparator:","`

	// Attachment adds Content-Disposition to /calendar so browsers download
	// the file instead of handing it to a calendar app.
	Attachment bool `yaml:"attachment" json:"attachment" env:"ATTACHMENT"`

	// CacheMaxAge is the Cache-Control max-age of /calendar, in seconds.
	CacheMaxAge int `yaml:"cache_max_age" json:"cache_max_age" env:"CACHE_MAX_AGE"`

	// RefreshCron is a cron-style schedule (e.g. "0 0 * * *") on which the
	// published year and "last updated" stamp are recomputed.
	RefreshCron string `yaml:"refresh" json:"refresh" env:"REFRESH"`

	// BaseURL is the public origin, used for absolute links and by the
	// capture job. Empty means http://<listen>.
	BaseURL string `yaml:"base_url" json:"base_url" env:"BASE_URL"`

	Capture CaptureConfig `yaml:"capture" json:"capture" envPrefix:"CAPTURE_"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      DefaultListen,
		Timezone:    DefaultTimezone,
		LogLevel:    DefaultLogLevel,
		Attachment:  true,
		CacheMaxAge: DefaultCacheMaxAge,
		RefreshCron: DefaultRefreshCron,
		Capture: CaptureConfig{
			Output:         "./cache/og.png",
			Width:          DefaultCaptureWidth,
			Height:         DefaultCaptureHeight,
			TimeoutSeconds: DefaultCaptureTimeout,
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.CacheMaxAge <= 0 {
		c.CacheMaxAge = DefaultCacheMaxAge
	}
	if c.RefreshCron == "" {
		c.RefreshCron = DefaultRefreshCron
	}
	if c.Year < 0 {
		c.Year = 0
	}
	if c.Capture.Width <= 0 {
		c.Capture.Width = DefaultCaptureWidth
	}
	if c.Capture.Height <= 0 {
		c.Capture.Height = DefaultCaptureHeight
	}
	if c.Capture.TimeoutSeconds <= 0 {
		c.Capture.TimeoutSeconds = DefaultCaptureTimeout
	}
}

// PublicURL returns BaseURL, or an http URL for Listen when unset. A
// wildcard or empty listen host maps to loopback, e.g. ":8080" gives
// "http://127.0.0.1:8080".
func (c *Config) PublicURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	host, port, err := net.SplitHostPort(c.Listen)
	if err != nil {
		return "http://" + c.Listen
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Load loads configuration from the given YAML path, then applies
// NIEDZIELE_* environment overrides.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms (parent directories created) and returned.
//   - If the file exists, it is unmarshaled over the defaults, so keys
//     missing from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: create default config file.
		if err := Save(path, cfg); err != nil {
			// Even if save fails, return cfg with error so caller can decide.
			return cfg, err
		}
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// ApplyEnv overrides cfg fields from NIEDZIELE_* environment variables.
// Unset variables leave fields untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".niedziele-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
