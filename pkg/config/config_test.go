package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, 4, cfg.Settings.MaxConcurrentLookups)
	assert.Equal(t, "HytaleModManager/1.0", cfg.Settings.UserAgent)
	assert.Equal(t, 70216, cfg.Providers.CurseForge.GameID)
	assert.Equal(t, "https://cdn.modtale.net", cfg.Providers.Modtale.CDNURL)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `settings:
  log_level: debug
  http_timeout: 5s
  max_concurrent_lookups: 8
providers:
  curseforge:
    base_url: http://localhost:9999/v1`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, 8, cfg.Settings.MaxConcurrentLookups)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Providers.CurseForge.BaseURL)
	// defaults fill the rest
	assert.Equal(t, DefaultDownloadTimeout, cfg.Settings.DownloadTimeout)
	assert.Equal(t, DefaultCurseForgeGameID, cfg.Providers.CurseForge.GameID)
	assert.Equal(t, DefaultModtaleURL, cfg.Providers.Modtale.BaseURL)
	assert.Equal(t, "text", cfg.Settings.OutputFormat)
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed yaml", content: "settings: [", wantErr: errors.ErrConfigParse},
		{name: "bad output format", content: "settings:\n  output_format: xml", wantErr: errors.ErrConfigValidation},
		{name: "bad log level", content: "settings:\n  log_level: loud", wantErr: errors.ErrConfigValidation},
		{name: "negative timeout", content: "settings:\n  http_timeout: -1s", wantErr: errors.ErrConfigValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, errors.ErrConfig)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.HooksDir = "/tmp/hooks"

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.ErrorIs(t, cfg.SaveConfig(""), errors.ErrEmptyConfigPath)
}

func TestGetSetValue(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetValue("http_timeout", "45s"))
	assert.Equal(t, 45*time.Second, cfg.Settings.HTTPTimeout)

	require.NoError(t, cfg.SetValue("curseforge.game_id", "123"))
	v, err := cfg.GetValue("curseforge.game_id")
	require.NoError(t, err)
	assert.Equal(t, "123", v)

	require.NoError(t, cfg.SetValue("modtale.cdn_url", "http://cdn.local"))
	assert.Equal(t, "http://cdn.local", cfg.Providers.Modtale.CDNURL)

	err = cfg.SetValue("output_format", "xml")
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
	assert.Equal(t, "text", cfg.Settings.OutputFormat, "rejected value is rolled back")

	assert.ErrorIs(t, cfg.SetValue("max_concurrent_lookups", "many"), errors.ErrConfigValidation)
	assert.ErrorIs(t, cfg.SetValue("nope", "x"), errors.ErrUnknownConfigKey)
	_, err = cfg.GetValue("nope")
	assert.ErrorIs(t, err, errors.ErrUnknownConfigKey)
}

func TestToMap(t *testing.T) {
	m := DefaultConfig().ToMap()
	assert.Len(t, m, len(Keys))
	assert.Equal(t, "30s", m["http_timeout"])
	assert.Equal(t, "70216", m["curseforge.game_id"])
}

func TestGetSettingsPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.SettingsPath = "/custom/settings.json"
	p, err := cfg.GetSettingsPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/settings.json", p)

	cfg.Settings.HooksDir = "/custom/hooks"
	assert.Equal(t, "/custom/hooks", cfg.GetHooksDir())
}
