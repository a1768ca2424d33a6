package model

// InstalledEntry records one mod package the manager placed in the install root.
// Entries are keyed by the installed filename in a Manifest.
type InstalledEntry struct {
	ProviderItemID        string   `json:"provider_item_id"`
	DisplayName           string   `json:"display_name"`
	InstalledVersionID    string   `json:"version_id"`
	InstalledVersionLabel string   `json:"version_label"`
	Provider              Provider `json:"provider"`
}

// Manifest maps installed filename to its entry.
type Manifest map[string]InstalledEntry

// InstallStatus is the reconciled state of a catalog item against the manifest.
type InstallStatus int

// Install statuses.
const (
	NotInstalled InstallStatus = iota
	Installed
	Outdated
)

func (s InstallStatus) String() string {
	switch s {
	case Installed:
		return "installed"
	case Outdated:
		return "outdated"
	default:
		return "not installed"
	}
}

// ResolvedStatus is the outcome of resolving an item against the manifest.
// LocalVersionLabel and LocalFilename are empty for NotInstalled.
type ResolvedStatus struct {
	Status            InstallStatus
	LocalVersionLabel string
	LocalFilename     string
}

// LocalMod is one mod package found on disk during a scan.
type LocalMod struct {
	Filename string
	Size     int64
	// Tracked is true when the filename is a manifest key.
	Tracked bool
	Entry   *InstalledEntry
	Item    CatalogItem
	// Live is true when Item came from a successful catalog lookup.
	Live bool
}

// Theme is the persisted UI theme preference.
type Theme string

// Themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
