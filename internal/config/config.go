// Package config holds the runtime configuration of the scraper and its service
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/myusername/match-report-scraper/pkg/parser"
)

// Config holds all configurable parameters for the application
type Config struct {
	// MaxPages bounds the leading pages read from a document; 0 reads all
	MaxPages  int    `yaml:"max_pages"`
	OutputDir string `yaml:"output_dir"`
	LogLevel  string `yaml:"log_level"`

	// DatabasePath enables persistence of extracted records when set
	DatabasePath string `yaml:"database_path"`

	Addr            string        `yaml:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`

	Markers parser.Markers `yaml:"markers"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		MaxPages:  0,
		OutputDir: ".",
		LogLevel:  "info",

		Addr:            ":5001",
		MaxUploadBytes:  20 << 20,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		FetchTimeout:    30 * time.Second,

		Markers: parser.DefaultMarkers(),
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value, including individual markers.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Markers = cfg.Markers.Merge(parser.DefaultMarkers())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot run with
func (c Config) Validate() error {
	if c.MaxPages < 0 {
		return fmt.Errorf("max_pages must not be negative, got %d", c.MaxPages)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// ParseLogLevel maps a level name to an slog level
func ParseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the text logger used by the commands
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	}))
}
