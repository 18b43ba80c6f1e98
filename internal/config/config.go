// internal/config/config.go
//
// This package handles configuration and the .chefdeck directory structure.
// Every operator running chefdeck gets a .chefdeck/ folder in their home
// directory holding the config file, stored credentials, and logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	// ChefdeckDir is the name of the dot-directory we create in the home dir.
	ChefdeckDir = ".chefdeck"

	defaultBaseURL        = "http://localhost:3100"
	defaultTimeoutSeconds = 15
	defaultLogLevel       = "info"
	defaultFilter         = "all"
)

const defaultConfigYAML = `# chefdeck configuration
version: 1

api:
  # Base URL of the marketplace admin API. Override with CHEFDECK_API_URL.
  base_url: http://localhost:3100
  timeout_seconds: 15

log:
  level: info

ui:
  default_filter: all
`

// APIConfig selects the remote admin API endpoint.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `yaml:"level"`
}

// UIConfig captures console preferences that persist between sessions.
type UIConfig struct {
	DefaultFilter string `yaml:"default_filter"`
}

// FileConfig models .chefdeck/config.yaml.
type FileConfig struct {
	Version int       `yaml:"version"`
	API     APIConfig `yaml:"api"`
	Log     LogConfig `yaml:"log"`
	UI      UIConfig  `yaml:"ui"`
}

// Config holds the runtime configuration for chefdeck.
type Config struct {
	// HomeDir is the directory that contains the .chefdeck folder.
	HomeDir string

	// ChefdeckHome is HomeDir/.chefdeck
	ChefdeckHome string

	File FileConfig
}

// LoadDotenv loads a .env file from the working directory when present.
// Missing files are fine; env vars always win over config.yaml values.
func LoadDotenv() {
	_ = godotenv.Load()
}

// InitChefdeckDir creates the .chefdeck directory structure.
// This is called before the TUI starts.
//
// Structure created:
// .chefdeck/
// ├── credentials/  <- access/refresh token pair
// ├── logs/         <- activity feed and diagnostics
// └── config.yaml   <- seeded with defaults on first run
func InitChefdeckDir(homeDir string) error {
	deckDir := filepath.Join(homeDir, ChefdeckDir)

	dirs := []string{
		filepath.Join(deckDir, "credentials"),
		filepath.Join(deckDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return ensureConfigFile(filepath.Join(deckDir, "config.yaml"))
}

// NewConfig loads the config file and applies environment overrides.
func NewConfig(homeDir string) (*Config, error) {
	cfg := &Config{
		HomeDir:      homeDir,
		ChefdeckHome: filepath.Join(homeDir, ChefdeckDir),
		File:         defaultFileConfig(),
	}

	if err := cfg.loadFileConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()

	return cfg, nil
}

// BaseURL returns the admin API base URL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimSuffix(c.File.API.BaseURL, "/")
}

// HTTPTimeout bounds every request to the admin API.
func (c *Config) HTTPTimeout() time.Duration {
	secs := c.File.API.TimeoutSeconds
	if secs <= 0 {
		secs = defaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// LogLevel returns the configured diagnostic log level.
func (c *Config) LogLevel() string {
	return c.File.Log.Level
}

// DefaultFilter returns the roster filter to apply on startup.
func (c *Config) DefaultFilter() string {
	return c.File.UI.DefaultFilter
}

// CredentialsDir returns the directory holding the stored token pair.
func (c *Config) CredentialsDir() string {
	return filepath.Join(c.ChefdeckHome, "credentials")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ChefdeckHome, "logs")
}

// ActivityLogPath is the operator-visible activity feed file.
func (c *Config) ActivityLogPath() string {
	return filepath.Join(c.LogsDir(), "console.log")
}

// DiagnosticsLogPath is where structured diagnostics are written.
func (c *Config) DiagnosticsLogPath() string {
	return filepath.Join(c.LogsDir(), "diagnostics.log")
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.ChefdeckHome, "config.yaml")
}

// SetDefaultFilter updates the startup roster filter and persists the value
// back to .chefdeck/config.yaml so the console reopens on the same view.
func (c *Config) SetDefaultFilter(filter string) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return fmt.Errorf("config: filter is required")
	}
	c.File.UI.DefaultFilter = filter
	return c.saveFileConfig()
}

func (c *Config) loadFileConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	c.File = parsed
	return nil
}

func (c *Config) saveFileConfig() error {
	data, err := yaml.Marshal(&c.File)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(c.ChefdeckHome, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", c.ConfigPath(), err)
	}
	return nil
}

// applyEnvOverrides lets environment variables (usually from .env) win over
// whatever the config file says.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("CHEFDECK_API_URL")); v != "" {
		c.File.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("CHEFDECK_HTTP_TIMEOUT")); v != "" {
		if secs := cast.ToInt(v); secs > 0 {
			c.File.API.TimeoutSeconds = secs
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHEFDECK_LOG_LEVEL")); v != "" {
		c.File.Log.Level = v
	}
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		API: APIConfig{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Log: LogConfig{Level: defaultLogLevel},
		UI:  UIConfig{DefaultFilter: defaultFilter},
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	if strings.TrimSpace(fc.API.BaseURL) == "" {
		fc.API.BaseURL = defaultBaseURL
	}
	if fc.API.TimeoutSeconds <= 0 {
		fc.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	if strings.TrimSpace(fc.Log.Level) == "" {
		fc.Log.Level = defaultLogLevel
	}
	if strings.TrimSpace(fc.UI.DefaultFilter) == "" {
		fc.UI.DefaultFilter = defaultFilter
	}
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
