package settings

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/manifest"
	"github.com/glorpus-work/hymod/pkg/model"
)

// AddEntry records filename in the manifest, replacing any entry under the
// same filename, and persists.
func (s *Store) AddEntry(filename string, entry model.InstalledEntry) error {
	return s.mutate(func(d *Settings) {
		d.Installed[filename] = entry
	})
}

// RemoveEntry drops filename from the manifest and persists. Removing an
// unknown filename still persists and is not an error.
func (s *Store) RemoveEntry(filename string) error {
	return s.mutate(func(d *Settings) {
		delete(d.Installed, filename)
	})
}

// Prune drops every entry whose file no longer exists under installRoot and
// returns the dropped filenames, sorted. The document is only saved when
// something changed.
func (s *Store) Prune(installRoot string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pruned []string
	for _, filename := range manifest.Filenames(s.data.Installed) {
		_, err := os.Stat(filepath.Join(installRoot, filename))
		if err == nil {
			continue
		}
		if !os.IsNotExist(err) {
			return nil, errors.Kind(errors.ErrIO, err)
		}
		delete(s.data.Installed, filename)
		pruned = append(pruned, filename)
	}

	if len(pruned) == 0 {
		return nil, nil
	}
	logger.Info("pruned manifest entries with missing files", logger.Fields{"count": len(pruned)})
	return pruned, s.save()
}

// SetProvider switches the active provider and credential. The credential
// sink is updated before the document is saved, so no later catalog call can
// run with the previous key.
func (s *Store) SetProvider(provider model.Provider, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.ActiveProvider = provider
	s.data.Credential = credential
	s.propagate()
	return s.save()
}

// SetCredential replaces the credential for the active provider.
func (s *Store) SetCredential(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Credential = credential
	s.propagate()
	return s.save()
}

// SetGameFolder stores the game folder the install root is derived from.
func (s *Store) SetGameFolder(folder string) error {
	return s.mutate(func(d *Settings) {
		d.GameFolder = folder
	})
}

// SetTheme stores the theme preference.
func (s *Store) SetTheme(theme model.Theme) error {
	return s.mutate(func(d *Settings) {
		d.Theme = theme
	})
}

// ToggleTheme flips the theme and returns the new value.
func (s *Store) ToggleTheme() (model.Theme, error) {
	var theme model.Theme
	err := s.mutate(func(d *Settings) {
		d.Theme = d.Theme.Toggle()
		theme = d.Theme
	})
	return theme, err
}
