// Package config provides configuration types and defaults for wizard.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/iw2rmb/wizard/internal/log"
	"github.com/iw2rmb/wizard/internal/tracing"
)

// Config holds all configuration options for wizard.
type Config struct {
	// File is the document path. Empty means $HOME/index.html.
	File     string `mapstructure:"file"`
	URL      string `mapstructure:"url"` // loaded into an empty document on start
	ReadOnly bool   `mapstructure:"read_only"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`

	Editor  EditorConfig   `mapstructure:"editor"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Fetch   FetchConfig    `mapstructure:"fetch"`
	Watch   WatchConfig    `mapstructure:"watch"`
	Recent  RecentConfig   `mapstructure:"recent"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// EditorConfig holds editor component options.
type EditorConfig struct {
	ShowLineNumbers bool `mapstructure:"show_line_numbers"`
	HistoryLimit    int  `mapstructure:"history_limit"`
}

// ThemeConfig holds the color of each span kind. Values are lipgloss colors:
// ANSI indices ("4") or hex ("#10B981").
type ThemeConfig struct {
	Tag     string `mapstructure:"tag"`
	Doctype string `mapstructure:"doctype"`
	Comment string `mapstructure:"comment"`
	String  string `mapstructure:"string"`
	Bold    bool   `mapstructure:"bold"` // tags and doctype
	Help    string `mapstructure:"help"` // glamour style: "auto", "dark", "light", "notty"
}

// FetchConfig controls loading the start document from a URL.
type FetchConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxBytes int64         `mapstructure:"max_bytes"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// WatchConfig controls reloading the document when it changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// RecentConfig controls the recently saved documents store.
type RecentConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

// DefaultURL is the document fetched on start when none is configured.
const DefaultURL = "https://example.com"

// DefaultDocumentPath returns $HOME/index.html, or index.html when the home
// directory is unavailable.
func DefaultDocumentPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "index.html"
	}
	return filepath.Join(home, "index.html")
}

// DefaultConfigDir returns ~/.config/wizard or empty string if the home
// directory is unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wizard")
}

// DefaultRecentDBPath returns ~/.config/wizard/recent.db.
func DefaultRecentDBPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "recent.db")
}

// DefaultTracesFilePath returns ~/.config/wizard/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()

	return Config{
		File:     DefaultDocumentPath(),
		URL:      DefaultURL,
		LogLevel: "debug",
		Editor: EditorConfig{
			ShowLineNumbers: true,
			HistoryLimit:    1000,
		},
		Theme: ThemeConfig{
			Tag:     "4",  // dark blue
			Doctype: "12", // blue
			Comment: "8",  // gray
			String:  "2",  // green
			Bold:    true,
			Help:    "auto",
		},
		Fetch: FetchConfig{
			Timeout:  10 * time.Second,
			MaxBytes: 4 << 20,
			CacheTTL: 5 * time.Minute,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 100 * time.Millisecond,
		},
		Recent: RecentConfig{
			Enabled: true,
			DBPath:  DefaultRecentDBPath(),
		},
		Tracing: tr,
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if c.URL != "" {
		if err := ValidateURL(c.URL); err != nil {
			return err
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Editor.HistoryLimit < -1 {
		return fmt.Errorf("editor.history_limit must be >= -1, got %d", c.Editor.HistoryLimit)
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout)
	}
	if c.Fetch.MaxBytes < 0 {
		return fmt.Errorf("fetch.max_bytes must not be negative, got %d", c.Fetch.MaxBytes)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if c.Recent.Enabled && c.Recent.DBPath == "" {
		return fmt.Errorf("recent.db_path is required when recent is enabled")
	}
	return ValidateTracing(c.Tracing)
}

// ValidateURL accepts absolute http and https URLs.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url must have a host, got %q", raw)
	}
	return nil
}

// ValidateTheme checks that every color parses. Empty values fall back to
// the defaults.
func ValidateTheme(t ThemeConfig) error {
	for _, c := range []struct{ key, val string }{
		{"tag", t.Tag},
		{"doctype", t.Doctype},
		{"comment", t.Comment},
		{"string", t.String},
	} {
		if err := validateColor(c.val); err != nil {
			return fmt.Errorf("theme.%s: %w", c.key, err)
		}
	}
	switch t.Help {
	case "", "auto", "dark", "light", "notty":
	default:
		return fmt.Errorf("theme.help must be \"auto\", \"dark\", \"light\" or \"notty\", got %q", t.Help)
	}
	return nil
}

func validateColor(s string) error {
	if s == "" {
		return nil
	}
	if s[0] == '#' {
		if len(s) != 4 && len(s) != 7 {
			return fmt.Errorf("invalid hex color %q", s)
		}
		for _, r := range s[1:] {
			if !isHexDigit(r) {
				return fmt.Errorf("invalid hex color %q", s)
			}
		}
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || fmt.Sprint(n) != s || n < 0 || n > 255 {
		return fmt.Errorf("invalid ANSI color %q", s)
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tr tracing.Config) error {
	if tr.SampleRate < 0.0 || tr.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tr.SampleRate)
	}

	if tr.Exporter != "" {
		switch tr.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tr.Exporter)
		}
	}

	// Path requirements only matter when tracing is on.
	if tr.Enabled {
		if tr.Exporter == "file" && tr.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tr.Exporter == "otlp" && tr.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}
