// Package settings provides the JSON-backed store for user settings and the
// installed manifest.
//
// The store is the single owner of settings.json. Every mutation is applied in
// memory and persisted before the call returns, under one mutex, so a
// read-modify-write sequence can never interleave with another.
package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/fsutil"
	"github.com/glorpus-work/hymod/pkg/manifest"
	"github.com/glorpus-work/hymod/pkg/model"
)

// FormatVersion is written to every saved document.
const FormatVersion = "1"

// FileName is the settings file name inside the config directory.
const FileName = "settings.json"

// Settings is the persisted document.
type Settings struct {
	FormatVersion  string         `json:"format_version"`
	Credential     string         `json:"credential,omitempty"`
	GameFolder     string         `json:"game_folder,omitempty"`
	Theme          model.Theme    `json:"theme"`
	ActiveProvider model.Provider `json:"active_provider"`
	Installed      model.Manifest `json:"installed"`
}

// Defaults returns the settings used on first run.
func Defaults() Settings {
	return Settings{
		FormatVersion:  FormatVersion,
		Theme:          model.ThemeDark,
		ActiveProvider: model.ProviderCurseForge,
		Installed:      model.Manifest{},
	}
}

// CredentialSink receives the active provider and credential whenever they
// change. The catalog registry implements it.
type CredentialSink interface {
	Reconfigure(provider model.Provider, credential string)
}

// Store guards the settings document and its file.
type Store struct {
	mu   sync.Mutex
	path string
	data Settings
	sink CredentialSink
}

// DefaultPath returns <UserConfigDir>/hymod/settings.json.
func DefaultPath() (string, error) {
	dir, err := fsutil.ConfigDir()
	if err != nil {
		return "", errors.Kind(errors.ErrConfig, fmt.Errorf("failed to get user config directory: %w", err))
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the settings at path. It never fails: a missing file yields
// defaults which are persisted immediately, and an unreadable or corrupt file
// yields defaults without touching the file on disk. sink may be nil.
func Load(path string, sink CredentialSink) *Store {
	s := &Store{path: path, sink: sink, data: Defaults()}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Debug("settings file not found, writing defaults", logger.Fields{"path": path})
		if err := s.save(); err != nil {
			logger.Warn("failed to persist default settings", logger.Fields{"path": path, "error": err})
		}
	case err != nil:
		logger.Warn("failed to read settings, using defaults", logger.Fields{"path": path, "error": err})
	default:
		parsed, err := parse(data)
		if err != nil {
			logger.Warn("failed to parse settings, using defaults", logger.Fields{"path": path, "error": err})
		} else {
			s.data = parsed
		}
	}

	for id, names := range manifest.Duplicates(s.data.Installed) {
		logger.Warn("manifest holds several entries for one item", logger.Fields{"item": id, "files": names, "using": names[0]})
	}

	s.propagate()
	return s
}

// Decode reads a settings document, filling in defaults for missing fields.
func Decode(r io.Reader) (Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Settings{}, errors.Kind(errors.ErrIO, err)
	}
	return parse(data)
}

func parse(data []byte) (Settings, error) {
	parsed := Defaults()
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Settings{}, errors.Kind(errors.ErrParse, err)
	}
	if parsed.Installed == nil {
		parsed.Installed = model.Manifest{}
	}
	if parsed.Theme != model.ThemeLight {
		parsed.Theme = model.ThemeDark
	}
	if _, err := model.ParseProvider(string(parsed.ActiveProvider)); err != nil {
		parsed.ActiveProvider = model.ProviderCurseForge
	}
	parsed.FormatVersion = FormatVersion
	return parsed, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Save persists the current document.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the document; callers hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Kind(errors.ErrIO, fmt.Errorf("failed to marshal settings: %w", err))
	}
	if err := fsutil.EnsureFileDir(s.path, fsutil.DirModeSecure); err != nil {
		return errors.Kind(errors.ErrIO, fmt.Errorf("failed to create settings directory: %w", err))
	}
	if err := fsutil.WriteFileAtomic(s.path, data, fsutil.FileModeSecure); err != nil {
		return errors.Kind(errors.ErrIO, err)
	}
	return nil
}

// mutate applies fn and persists the result as one step. The in-memory change
// is kept even when persisting fails; the error is returned to the caller.
func (s *Store) mutate(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
	return s.save()
}

func (s *Store) propagate() {
	if s.sink == nil {
		return
	}
	s.sink.Reconfigure(s.data.ActiveProvider, s.data.Credential)
}

// Snapshot returns a copy of the whole document.
func (s *Store) Snapshot() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.data
	out.Installed = manifest.Clone(s.data.Installed)
	return out
}

// Manifest returns a copy of the installed manifest.
func (s *Store) Manifest() model.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return manifest.Clone(s.data.Installed)
}

// ActiveProvider returns the selected catalog provider.
func (s *Store) ActiveProvider() model.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ActiveProvider
}

// InstallRoot returns <game folder>/UserData/Mods, or ErrNoInstallRoot when
// no game folder is configured.
func (s *Store) InstallRoot() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return InstallRootFor(s.data.GameFolder)
}

// InstallRootFor derives the install root from a game folder.
func InstallRootFor(gameFolder string) (string, error) {
	if gameFolder == "" {
		return "", errors.ErrNoInstallRoot
	}
	return filepath.Join(gameFolder, "UserData", "Mods"), nil
}
