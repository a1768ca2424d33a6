// Package config provides the YAML application configuration for hymod: where
// the settings document lives, network timeouts, provider endpoints and
// output preferences. User state (credential, game folder, installed
// manifest) lives in the settings package instead.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings  Settings  `yaml:"settings"`
	Providers Providers `yaml:"providers"`
}

// Settings represents general application settings.
type Settings struct {
	// SettingsPath overrides the location of settings.json.
	SettingsPath string `yaml:"settings_path,omitempty"`
	// HooksDir holds optional pre-/post- install and remove scripts.
	HooksDir string `yaml:"hooks_dir,omitempty"`

	// Network settings
	HTTPTimeout          time.Duration `yaml:"http_timeout"`
	DownloadTimeout      time.Duration `yaml:"download_timeout"`
	MaxConcurrentLookups int           `yaml:"max_concurrent_lookups"`
	UserAgent            string        `yaml:"user_agent"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json, yaml
	LogLevel     string `yaml:"log_level"`     // debug, info, warn, error
}

// Providers holds per-catalog endpoints.
type Providers struct {
	CurseForge CurseForgeConfig `yaml:"curseforge"`
	Modtale    ModtaleConfig    `yaml:"modtale"`
}

// CurseForgeConfig configures the CurseForge client.
type CurseForgeConfig struct {
	BaseURL string `yaml:"base_url"`
	GameID  int    `yaml:"game_id"`
}

// ModtaleConfig configures the Modtale client.
type ModtaleConfig struct {
	BaseURL string `yaml:"base_url"`
	CDNURL  string `yaml:"cdn_url"`
}

// Default configuration values.
const (
	DefaultHTTPTimeout          = 30 * time.Second
	DefaultDownloadTimeout      = 10 * time.Minute
	DefaultMaxConcurrentLookups = 4
	DefaultUserAgent            = "HytaleModManager/1.0"

	DefaultCurseForgeURL    = "https://api.curseforge.com/v1"
	DefaultCurseForgeGameID = 70216
	DefaultModtaleURL       = "https://api.modtale.net/api/v1"
	DefaultModtaleCDN       = "https://cdn.modtale.net"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			HTTPTimeout:          DefaultHTTPTimeout,
			DownloadTimeout:      DefaultDownloadTimeout,
			MaxConcurrentLookups: DefaultMaxConcurrentLookups,
			UserAgent:            DefaultUserAgent,
			OutputFormat:         "text",
			LogLevel:             "info",
		},
		Providers: Providers{
			CurseForge: CurseForgeConfig{BaseURL: DefaultCurseForgeURL, GameID: DefaultCurseForgeGameID},
			Modtale:    ModtaleConfig{BaseURL: DefaultModtaleURL, CDNURL: DefaultModtaleCDN},
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the configuration to path atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	_ = encoder.Close()

	if err := fsutil.EnsureFileDir(path, fsutil.DirModeDefault); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := fsutil.WriteFileAtomic(path, []byte(buf.String()), fsutil.FileModeDefault); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	s := c.Settings
	switch {
	case s.HTTPTimeout < 0:
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	case s.DownloadTimeout < 0:
		return errors.Wrap(errors.ErrConfigValidation, "download_timeout cannot be negative")
	case s.MaxConcurrentLookups < 1:
		return errors.Wrap(errors.ErrConfigValidation, "max_concurrent_lookups must be at least 1")
	}

	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[s.OutputFormat] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid output format %q (valid: text, json, yaml)", s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid log level %q (valid: debug, info, warn, error)", s.LogLevel)
	}
	if c.Providers.CurseForge.GameID <= 0 {
		return errors.Wrap(errors.ErrConfigValidation, "curseforge.game_id must be positive")
	}
	return nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.DownloadTimeout == 0 {
		c.Settings.DownloadTimeout = defaults.Settings.DownloadTimeout
	}
	if c.Settings.MaxConcurrentLookups == 0 {
		c.Settings.MaxConcurrentLookups = defaults.Settings.MaxConcurrentLookups
	}
	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = defaults.Settings.UserAgent
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Providers.CurseForge.BaseURL == "" {
		c.Providers.CurseForge.BaseURL = defaults.Providers.CurseForge.BaseURL
	}
	if c.Providers.CurseForge.GameID == 0 {
		c.Providers.CurseForge.GameID = defaults.Providers.CurseForge.GameID
	}
	if c.Providers.Modtale.BaseURL == "" {
		c.Providers.Modtale.BaseURL = defaults.Providers.Modtale.BaseURL
	}
	if c.Providers.Modtale.CDNURL == "" {
		c.Providers.Modtale.CDNURL = defaults.Providers.Modtale.CDNURL
	}
}

// GetDefaultConfigPath returns <UserConfigDir>/hymod/config.yaml.
func GetDefaultConfigPath() (string, error) {
	dir, err := fsutil.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetSettingsPath returns the configured settings.json location, or the
// platform default.
func (c *Config) GetSettingsPath() (string, error) {
	if c.Settings.SettingsPath != "" {
		return c.Settings.SettingsPath, nil
	}
	dir, err := fsutil.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, "settings.json"), nil
}

// GetHooksDir returns the configured hook script directory, or
// <UserConfigDir>/hymod/hooks.
func (c *Config) GetHooksDir() string {
	if c.Settings.HooksDir != "" {
		return c.Settings.HooksDir
	}
	dir, err := fsutil.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hooks")
}
