// Package config provides configuration types and defaults for restyle.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/restyle/internal/restyle"
)

// CacheConfig holds text cache tuning for the formatter.
type CacheConfig struct {
	// TTL bounds how long a widget's last-rendered text is cached.
	// Zero keeps entries until the style changes.
	TTL time.Duration `mapstructure:"ttl"`

	// CleanupInterval controls how often expired entries are collected.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Config holds all configuration options for restyle.
type Config struct {
	// Style is the chroma style name applied at startup.
	Style string `mapstructure:"style"`

	// Lexer overrides lexer detection. Empty means detect from the
	// file name.
	Lexer string `mapstructure:"lexer"`

	// Formatter is the registry name the formatter factory is resolved
	// under. "rtc" and "richtext" are equivalent.
	Formatter string `mapstructure:"formatter"`

	// Follow re-styles the file whenever it changes on disk.
	Follow bool `mapstructure:"follow"`

	// FollowDebounce coalesces bursts of file events into one reload.
	FollowDebounce time.Duration `mapstructure:"follow_debounce"`

	Cache CacheConfig `mapstructure:"cache"`

	// Debug enables the structured debug log.
	Debug bool `mapstructure:"debug"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Style:          restyle.DefaultStyle,
		Formatter:      restyle.NameRTC,
		Follow:         true,
		FollowDebounce: 500 * time.Millisecond,
		Cache: CacheConfig{
			TTL:             0,
			CleanupInterval: 30 * time.Minute,
		},
	}
}

// Validate checks cross-field constraints the flag layer cannot.
func Validate(cfg Config) error {
	if _, err := restyle.Lookup(cfg.Formatter); err != nil {
		return fmt.Errorf("invalid formatter: %w", err)
	}
	if cfg.FollowDebounce < 0 {
		return fmt.Errorf("follow_debounce must not be negative, got %s", cfg.FollowDebounce)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", cfg.Cache.TTL)
	}
	return nil
}

const defaultConfigTemplate = `# restyle configuration
# Style applied at startup. Run 'restyle styles' for the full list.
style: %s

# Lexer override; empty detects from the file name. Run 'restyle lexers'.
lexer: ""

# Formatter registry name. "rtc" and "richtext" are equivalent.
formatter: %s

# Re-style the file whenever it changes on disk.
follow: true
follow_debounce: 500ms

cache:
  # How long a widget's last-rendered text is cached. 0 keeps entries
  # until the style changes.
  ttl: 0s
  cleanup_interval: 30m

# Write a structured debug log to restyle-debug.log.
debug: false
`

// WriteDefaultConfig writes a commented default config file, creating parent
// directories as needed.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	defaults := Defaults()
	content := fmt.Sprintf(defaultConfigTemplate, defaults.Style, defaults.Formatter)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
