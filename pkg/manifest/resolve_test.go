package manifest

import (
	"testing"

	"github.com/glorpus-work/hymod/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(itemID, versionID, label string) model.InstalledEntry {
	return model.InstalledEntry{
		ProviderItemID:        itemID,
		DisplayName:           "Mod " + itemID,
		InstalledVersionID:    versionID,
		InstalledVersionLabel: label,
		Provider:              model.ProviderCurseForge,
	}
}

func TestResolve(t *testing.T) {
	m := model.Manifest{
		"a.jar": entry("1", "v1", "1.0"),
	}

	tests := []struct {
		name     string
		itemID   string
		latestID string
		want     model.ResolvedStatus
	}{
		{
			name:     "same version is installed",
			itemID:   "1",
			latestID: "v1",
			want:     model.ResolvedStatus{Status: model.Installed, LocalVersionLabel: "1.0", LocalFilename: "a.jar"},
		},
		{
			name:     "different version is outdated",
			itemID:   "1",
			latestID: "v2",
			want:     model.ResolvedStatus{Status: model.Outdated, LocalVersionLabel: "1.0", LocalFilename: "a.jar"},
		},
		{
			name:     "unknown item is not installed",
			itemID:   "2",
			latestID: "v1",
			want:     model.ResolvedStatus{Status: model.NotInstalled},
		},
		{
			name:     "empty latest id is outdated",
			itemID:   "1",
			latestID: "",
			want:     model.ResolvedStatus{Status: model.Outdated, LocalVersionLabel: "1.0", LocalFilename: "a.jar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(m, tt.itemID, tt.latestID))
		})
	}
}

func TestResolve_EmptyManifest(t *testing.T) {
	assert.Equal(t, model.NotInstalled, Resolve(nil, "1", "v1").Status)
	assert.Equal(t, model.NotInstalled, Resolve(model.Manifest{}, "1", "v1").Status)
}

func TestResolve_DuplicatesAreDeterministic(t *testing.T) {
	m := model.Manifest{
		"zeta.jar":  entry("7", "v2", "2.0"),
		"alpha.jar": entry("7", "v1", "1.0"),
	}

	for i := 0; i < 20; i++ {
		got := Resolve(m, "7", "v1")
		require.Equal(t, "alpha.jar", got.LocalFilename)
		require.Equal(t, model.Installed, got.Status)
	}

	assert.Equal(t, map[string][]string{"7": {"alpha.jar", "zeta.jar"}}, Duplicates(m))
	assert.Equal(t, []string{"alpha.jar", "zeta.jar"}, FilenamesFor(m, "7"))
}

func TestFilenamesFor_IDsAcrossProviders(t *testing.T) {
	tale := entry("c0ffee00-0000-4000-8000-000000000001", "v1", "1.0")
	tale.Provider = model.ProviderModtale
	m := model.Manifest{
		"cf.jar":   entry("42", "f1", "1.0"),
		"tale.jar": tale,
	}

	// Item ids are matched without the provider; the id formats never overlap.
	assert.Equal(t, []string{"cf.jar"}, FilenamesFor(m, "42"))
	assert.Equal(t, []string{"tale.jar"}, FilenamesFor(m, tale.ProviderItemID))
	assert.Empty(t, FilenamesFor(m, "c0ffee00"))
}

func TestLookup(t *testing.T) {
	m := model.Manifest{"b.zip": entry("9", "f1", "1")}

	filename, e, ok := Lookup(m, "9")
	require.True(t, ok)
	assert.Equal(t, "b.zip", filename)
	assert.Equal(t, "f1", e.InstalledVersionID)

	_, _, ok = Lookup(m, "10")
	assert.False(t, ok)
}

func TestCloneAndFilenames(t *testing.T) {
	m := model.Manifest{"b.jar": entry("2", "x", "x"), "a.jar": entry("1", "y", "y")}

	c := Clone(m)
	delete(c, "a.jar")
	assert.Len(t, m, 2)
	assert.NotNil(t, Clone(nil))
	assert.Equal(t, []string{"a.jar", "b.jar"}, Filenames(m))
	assert.Empty(t, Duplicates(m))
}
