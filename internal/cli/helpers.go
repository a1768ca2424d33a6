package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/catalog"
	"github.com/glorpus-work/hymod/pkg/catalog/curseforge"
	"github.com/glorpus-work/hymod/pkg/catalog/modtale"
	"github.com/glorpus-work/hymod/pkg/config"
	"github.com/glorpus-work/hymod/pkg/download"
	"github.com/glorpus-work/hymod/pkg/hooks"
	"github.com/glorpus-work/hymod/pkg/orchestrator"
	"github.com/glorpus-work/hymod/pkg/scan"
	"github.com/glorpus-work/hymod/pkg/settings"
	"github.com/glorpus-work/hymod/pkg/tracker"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration, applies the global flags and
// initialises logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	format := logger.FormatText
	if cfg.Settings.OutputFormat == FormatJSON {
		format = logger.FormatJSON
	}
	logger.InitLogger(cfg.Settings.LogLevel, format)
	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes LoadConfig report a descriptive error.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// app is the wired object graph one command works with.
type app struct {
	cfg      *config.Config
	store    *settings.Store
	registry *catalog.Registry
	orch     *orchestrator.Orchestrator
	scanner  *scan.Scanner
}

func loadApp(out io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	dl := download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent,
		download.WithDownloadTimeout(cfg.Settings.DownloadTimeout))
	registry := catalog.NewRegistry(
		curseforge.New(cfg.Providers.CurseForge.BaseURL, cfg.Providers.CurseForge.GameID, dl),
		modtale.New(cfg.Providers.Modtale.BaseURL, cfg.Providers.Modtale.CDNURL, dl),
	)

	settingsPath, err := cfg.GetSettingsPath()
	if err != nil {
		return nil, err
	}
	store := settings.Load(settingsPath, registry)

	scripts, err := hooks.LoadDir(cfg.GetHooksDir())
	if err != nil {
		return nil, err
	}

	progress := orchestrator.Hooks{}
	if cfg.Settings.OutputFormat == FormatText {
		progress.OnEvent = func(e orchestrator.Event) {
			if e.Phase == "done" || e.Phase == "error" {
				return
			}
			_, _ = fmt.Fprintf(out, "%s: %s (%s)\n", e.Phase, e.Msg, e.ID)
		}
	}

	return &app{
		cfg:      cfg,
		store:    store,
		registry: registry,
		orch:     orchestrator.New(store, registry, scripts, tracker.New(), progress),
		scanner:  &scan.Scanner{Lookup: registry.Lookup, Concurrency: cfg.Settings.MaxConcurrentLookups},
	}, nil
}

// activeClient returns the selected provider's client and hints at a
// missing api key.
func (a *app) activeClient() (catalog.Client, error) {
	client, err := a.registry.Active()
	if err != nil {
		return nil, err
	}
	if a.store.Snapshot().Credential == "" {
		logger.Warn("No API key configured, requests may be rejected", logger.Fields{
			"provider": string(client.Provider()),
			"hint":     "hymod provider set " + string(client.Provider()) + " --key KEY",
		})
	}
	return client, nil
}

func (a *app) structured() bool {
	return a.cfg.Settings.OutputFormat != FormatText
}

// printStructured writes v as JSON or YAML.
func printStructured(w io.Writer, format string, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
