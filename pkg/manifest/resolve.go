// Package manifest resolves catalog items against the installed manifest.
//
// Every function here is pure: it reads the manifest passed in and never
// touches the filesystem or the network.
package manifest

import (
	"maps"
	"slices"

	"github.com/glorpus-work/hymod/pkg/model"
)

// Resolve reports whether itemID is installed, outdated or absent given the
// catalog's latest version id. Version ids are compared by equality only.
//
// When several entries share itemID the one with the lexicographically
// smallest filename is used, so the answer never depends on map order.
func Resolve(m model.Manifest, itemID, latestVersionID string) model.ResolvedStatus {
	filename, entry, ok := Lookup(m, itemID)
	if !ok {
		return model.ResolvedStatus{Status: model.NotInstalled}
	}

	status := model.Outdated
	if entry.InstalledVersionID == latestVersionID {
		status = model.Installed
	}
	return model.ResolvedStatus{
		Status:            status,
		LocalVersionLabel: entry.InstalledVersionLabel,
		LocalFilename:     filename,
	}
}

// Lookup returns the entry for itemID and its filename.
func Lookup(m model.Manifest, itemID string) (string, model.InstalledEntry, bool) {
	names := FilenamesFor(m, itemID)
	if len(names) == 0 {
		return "", model.InstalledEntry{}, false
	}
	return names[0], m[names[0]], true
}

// FilenamesFor returns every filename recorded for itemID, sorted.
func FilenamesFor(m model.Manifest, itemID string) []string {
	var names []string
	for filename, entry := range m {
		if entry.ProviderItemID == itemID {
			names = append(names, filename)
		}
	}
	slices.Sort(names)
	return names
}

// Duplicates returns the item ids that own more than one entry, mapped to
// their sorted filenames.
func Duplicates(m model.Manifest) map[string][]string {
	byID := make(map[string][]string)
	for filename, entry := range m {
		byID[entry.ProviderItemID] = append(byID[entry.ProviderItemID], filename)
	}

	dups := make(map[string][]string)
	for id, names := range byID {
		if len(names) > 1 {
			slices.Sort(names)
			dups[id] = names
		}
	}
	return dups
}

// Clone returns an independent copy of m.
func Clone(m model.Manifest) model.Manifest {
	if m == nil {
		return model.Manifest{}
	}
	return maps.Clone(m)
}

// Filenames returns all manifest keys, sorted.
func Filenames(m model.Manifest) []string {
	return slices.Sorted(maps.Keys(m))
}
