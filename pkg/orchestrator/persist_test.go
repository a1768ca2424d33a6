package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/model"
	"github.com/glorpus-work/hymod/pkg/orchestrator"
	ocmocks "github.com/glorpus-work/hymod/pkg/orchestrator/mocks"
)

func TestInstall_PersistFailureLeavesFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := filepath.Join(t.TempDir(), "UserData", "Mods")

	store := ocmocks.NewMockStore(ctrl)
	fetcher := ocmocks.NewMockFetcher(ctrl)
	store.EXPECT().InstallRoot().Return(root, nil)
	store.EXPECT().Manifest().Return(model.Manifest{}).AnyTimes()
	fetcher.EXPECT().Fetch(gomock.Any(), model.ProviderCurseForge, gomock.Any()).Return([]byte("jar"), nil)
	store.EXPECT().AddEntry("CoolMod-v9.jar", gomock.Any()).Return(errors.Kind(errors.ErrIO, os.ErrPermission))

	orch := orchestrator.New(store, fetcher, nil, nil, orchestrator.Hooks{})
	err := orch.Install(context.Background(), coolMod("v9"), version("v9"))
	assert.ErrorIs(t, err, errors.ErrIO)
	assert.FileExists(t, filepath.Join(root, "CoolMod-v9.jar"))
	assert.Equal(t, model.NotInstalled, orch.View(coolMod("v9")).Status.Status)
}

func TestRemove_DeleteFailureKeepsEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	// a non-empty directory in place of the package cannot be removed
	require.NoError(t, os.MkdirAll(filepath.Join(root, "CoolMod-v9.jar", "inner"), 0o755))

	store := ocmocks.NewMockStore(ctrl)
	store.EXPECT().Manifest().Return(model.Manifest{
		"CoolMod-v9.jar": {ProviderItemID: "42", Provider: model.ProviderCurseForge},
	}).AnyTimes()
	store.EXPECT().InstallRoot().Return(root, nil)

	orch := orchestrator.New(store, ocmocks.NewMockFetcher(ctrl), nil, nil, orchestrator.Hooks{})
	err := orch.Remove(context.Background(), "42")
	assert.ErrorIs(t, err, errors.ErrIO)
	assert.Equal(t, orchestrator.ActionRemove, orch.View(coolMod("v9")).Action)
}

func TestValidFilename(t *testing.T) {
	for name, want := range map[string]bool{
		"CoolMod-1.0.jar": true,
		"":                false,
		".":               false,
		"..":              false,
		"a/b.jar":         false,
		`a\b.jar`:         false,
		"/abs.jar":        false,
	} {
		assert.Equal(t, want, orchestrator.ValidFilename(name), name)
	}
}
