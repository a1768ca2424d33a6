package config

import (
	"strconv"
	"time"

	"github.com/glorpus-work/hymod/pkg/errors"
)

// Keys lists every key accepted by GetValue and SetValue, in display order.
var Keys = []string{
	"settings_path",
	"hooks_dir",
	"http_timeout",
	"download_timeout",
	"max_concurrent_lookups",
	"user_agent",
	"output_format",
	"log_level",
	"curseforge.base_url",
	"curseforge.game_id",
	"modtale.base_url",
	"modtale.cdn_url",
}

// SetValue sets a configuration value by key. The result is validated, and
// the previous value is restored when validation fails.
func (c *Config) SetValue(key, value string) error {
	prev := *c
	if err := c.setValue(key, value); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		*c = prev
		return err
	}
	return nil
}

func (c *Config) setValue(key, value string) error {
	switch key {
	case "settings_path":
		c.Settings.SettingsPath = value
	case "hooks_dir":
		c.Settings.HooksDir = value
	case "http_timeout":
		return parseDuration(key, value, &c.Settings.HTTPTimeout)
	case "download_timeout":
		return parseDuration(key, value, &c.Settings.DownloadTimeout)
	case "max_concurrent_lookups":
		return parseInt(key, value, &c.Settings.MaxConcurrentLookups)
	case "user_agent":
		c.Settings.UserAgent = value
	case "output_format":
		c.Settings.OutputFormat = value
	case "log_level":
		c.Settings.LogLevel = value
	case "curseforge.base_url":
		c.Providers.CurseForge.BaseURL = value
	case "curseforge.game_id":
		return parseInt(key, value, &c.Providers.CurseForge.GameID)
	case "modtale.base_url":
		c.Providers.Modtale.BaseURL = value
	case "modtale.cdn_url":
		c.Providers.Modtale.CDNURL = value
	default:
		return errors.Wrap(errors.ErrUnknownConfigKey, key)
	}
	return nil
}

// GetValue returns the value of key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "settings_path":
		return c.Settings.SettingsPath, nil
	case "hooks_dir":
		return c.Settings.HooksDir, nil
	case "http_timeout":
		return c.Settings.HTTPTimeout.String(), nil
	case "download_timeout":
		return c.Settings.DownloadTimeout.String(), nil
	case "max_concurrent_lookups":
		return strconv.Itoa(c.Settings.MaxConcurrentLookups), nil
	case "user_agent":
		return c.Settings.UserAgent, nil
	case "output_format":
		return c.Settings.OutputFormat, nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "curseforge.base_url":
		return c.Providers.CurseForge.BaseURL, nil
	case "curseforge.game_id":
		return strconv.Itoa(c.Providers.CurseForge.GameID), nil
	case "modtale.base_url":
		return c.Providers.Modtale.BaseURL, nil
	case "modtale.cdn_url":
		return c.Providers.Modtale.CDNURL, nil
	default:
		return "", errors.Wrap(errors.ErrUnknownConfigKey, key)
	}
}

// ToMap returns every key with its current value.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(Keys))
	for _, key := range Keys {
		value, _ := c.GetValue(key)
		result[key] = value
	}
	return result
}

func parseDuration(key, value string, dst *time.Duration) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid duration for %s: %s", key, value)
	}
	*dst = d
	return nil
}

func parseInt(key, value string, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid integer for %s: %s", key, value)
	}
	*dst = n
	return nil
}
