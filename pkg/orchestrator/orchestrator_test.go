package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/hooks"
	"github.com/glorpus-work/hymod/pkg/model"
	"github.com/glorpus-work/hymod/pkg/orchestrator"
	ocmocks "github.com/glorpus-work/hymod/pkg/orchestrator/mocks"
	"github.com/glorpus-work/hymod/pkg/settings"
)

type fixture struct {
	store   *settings.Store
	fetcher *ocmocks.MockFetcher
	orch    *orchestrator.Orchestrator
	root    string
	events  []orchestrator.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	store := settings.Load(filepath.Join(dir, "settings.json"), nil)
	require.NoError(t, store.SetGameFolder(filepath.Join(dir, "Hytale")))
	root, err := store.InstallRoot()
	require.NoError(t, err)

	f := &fixture{store: store, fetcher: ocmocks.NewMockFetcher(ctrl), root: root}
	var mu sync.Mutex
	f.orch = orchestrator.New(store, f.fetcher, nil, nil, orchestrator.Hooks{
		OnEvent: func(e orchestrator.Event) {
			mu.Lock()
			defer mu.Unlock()
			f.events = append(f.events, e)
		},
	})
	return f
}

func coolMod(latest string) model.CatalogItem {
	return model.CatalogItem{
		ID:       "42",
		Provider: model.ProviderCurseForge,
		Name:     "Cool Mod",
		Latest:   version(latest),
	}
}

func version(id string) model.CatalogVersion {
	return model.CatalogVersion{
		ID:          id,
		Label:       "label-" + id,
		Filename:    "CoolMod-" + id + ".jar",
		DownloadURL: "https://cdn.example/CoolMod-" + id + ".jar",
	}
}

func (f *fixture) expectFetch(id string) {
	f.fetcher.EXPECT().
		Fetch(gomock.Any(), model.ProviderCurseForge, "https://cdn.example/CoolMod-"+id+".jar").
		Return([]byte("bytes-"+id), nil)
}

func TestInstallUpdateRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.expectFetch("v9")
	require.NoError(t, f.orch.Install(ctx, coolMod("v9"), version("v9")))

	data, err := os.ReadFile(filepath.Join(f.root, "CoolMod-v9.jar"))
	require.NoError(t, err)
	assert.Equal(t, "bytes-v9", string(data))
	assert.Equal(t, model.Installed, f.orch.Status("42", "v9").Status)

	// a new upstream version makes the item outdated
	view := f.orch.View(coolMod("v10"))
	assert.Equal(t, model.Outdated, view.Status.Status)
	assert.Equal(t, "label-v9", view.Status.LocalVersionLabel)
	assert.Equal(t, orchestrator.ActionUpdate, view.Action)
	assert.Equal(t, orchestrator.LabelUpdate, view.Label)

	f.expectFetch("v10")
	require.NoError(t, f.orch.Update(ctx, coolMod("v10"), version("v10")))
	assert.NoFileExists(t, filepath.Join(f.root, "CoolMod-v9.jar"))
	assert.FileExists(t, filepath.Join(f.root, "CoolMod-v10.jar"))
	assert.Equal(t, model.Manifest{"CoolMod-v10.jar": {
		ProviderItemID:        "42",
		DisplayName:           "Cool Mod",
		InstalledVersionID:    "v10",
		InstalledVersionLabel: "label-v10",
		Provider:              model.ProviderCurseForge,
	}}, f.store.Manifest())

	view = f.orch.View(coolMod("v10"))
	assert.Equal(t, model.Installed, view.Status.Status)
	assert.Equal(t, orchestrator.LabelRemove, view.Label)

	require.NoError(t, f.orch.Remove(ctx, "42"))
	assert.NoFileExists(t, filepath.Join(f.root, "CoolMod-v10.jar"))
	assert.Empty(t, f.store.Manifest())
	cached, ok := f.orch.Cached("42")
	require.True(t, ok)
	assert.Equal(t, model.NotInstalled, cached.Status)

	// the manifest was persisted
	reloaded := settings.Load(f.store.Path(), nil)
	assert.Empty(t, reloaded.Manifest())

	phases := make([]string, 0, len(f.events))
	for _, e := range f.events {
		phases = append(phases, e.Phase)
	}
	assert.Equal(t, []string{
		"downloading", "installing", "done",
		"downloading", "installing", "done",
		"removing", "done",
	}, phases)
}

func TestRemoveTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.expectFetch("v9")
	require.NoError(t, f.orch.Install(ctx, coolMod("v9"), version("v9")))

	require.NoError(t, f.orch.Remove(ctx, "42"))
	err := f.orch.Remove(ctx, "42")
	assert.ErrorIs(t, err, errors.ErrNotLocallyInstalled)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Equal(t, "42", errors.ItemID(err))
}

func TestRemove_MissingFileIsTolerated(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.AddEntry("Gone-1.0.jar", model.InstalledEntry{ProviderItemID: "7", Provider: model.ProviderCurseForge}))

	require.NoError(t, f.orch.Remove(context.Background(), "7"))
	assert.Empty(t, f.store.Manifest())
}

func TestInstall_ReplacesPriorFileOfSameItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.expectFetch("v9")
	require.NoError(t, f.orch.Install(ctx, coolMod("v9"), version("v9")))
	f.expectFetch("v8")
	require.NoError(t, f.orch.Install(ctx, coolMod("v9"), version("v8")))

	assert.NoFileExists(t, filepath.Join(f.root, "CoolMod-v9.jar"))
	assert.Equal(t, []string{"CoolMod-v8.jar"}, keys(f.store.Manifest()))
	assert.Equal(t, model.Outdated, f.orch.Status("42", "v9").Status)
}

func TestInstall_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.CatalogVersion)
		wantErr error
	}{
		{name: "no download url", mutate: func(v *model.CatalogVersion) { v.DownloadURL = "" }, wantErr: errors.ErrNoDownloadURL},
		{name: "empty filename", mutate: func(v *model.CatalogVersion) { v.Filename = "" }, wantErr: errors.ErrInvalidFilename},
		{name: "path traversal", mutate: func(v *model.CatalogVersion) { v.Filename = "../evil.jar" }, wantErr: errors.ErrInvalidFilename},
		{name: "nested path", mutate: func(v *model.CatalogVersion) { v.Filename = "sub/dir.jar" }, wantErr: errors.ErrInvalidFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			v := version("v9")
			tt.mutate(&v)

			err := f.orch.Install(context.Background(), coolMod("v9"), v)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.store.Manifest())
			assert.ErrorIs(t, f.orch.View(coolMod("v9")).LastErr, tt.wantErr)
		})
	}
}

func TestInstall_NoGameFolder(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := settings.Load(filepath.Join(t.TempDir(), "settings.json"), nil)
	orch := orchestrator.New(store, ocmocks.NewMockFetcher(ctrl), nil, nil, orchestrator.Hooks{})

	err := orch.Install(context.Background(), coolMod("v9"), version("v9"))
	assert.ErrorIs(t, err, errors.ErrNoInstallRoot)
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestUpdate_FailedDownloadKeepsOldVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.expectFetch("v9")
	require.NoError(t, f.orch.Install(ctx, coolMod("v9"), version("v9")))

	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &errors.StatusError{StatusCode: 503, URL: "https://cdn.example/CoolMod-v10.jar"})
	err := f.orch.Update(ctx, coolMod("v10"), version("v10"))
	assert.ErrorIs(t, err, errors.ErrTransport)

	assert.FileExists(t, filepath.Join(f.root, "CoolMod-v9.jar"))
	assert.Equal(t, []string{"CoolMod-v9.jar"}, keys(f.store.Manifest()))

	view := f.orch.View(coolMod("v10"))
	assert.Equal(t, orchestrator.LabelRetry, view.Label)
	assert.Equal(t, orchestrator.ActionUpdate, view.Action)

	// retrying through Run clears the error
	f.expectFetch("v10")
	require.NoError(t, f.orch.Run(ctx, view.Action, coolMod("v10"), version("v10")))
	view = f.orch.View(coolMod("v10"))
	assert.NoError(t, view.LastErr)
	assert.Equal(t, orchestrator.LabelRemove, view.Label)
}

func TestUpdate_NotInstalledInstalls(t *testing.T) {
	f := newFixture(t)
	f.expectFetch("v10")

	require.NoError(t, f.orch.Update(context.Background(), coolMod("v10"), version("v10")))
	assert.Equal(t, []string{"CoolMod-v10.jar"}, keys(f.store.Manifest()))
}

func TestBusyRejection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guard, err := f.orch.Tracker.Begin("42")
	require.NoError(t, err)

	view := f.orch.View(coolMod("v9"))
	assert.True(t, view.Busy)
	assert.Equal(t, orchestrator.LabelWorking, view.Label)
	assert.Equal(t, orchestrator.ActionNone, view.Action)

	err = f.orch.Install(ctx, coolMod("v9"), version("v9"))
	assert.ErrorIs(t, err, errors.ErrBusy)
	err = f.orch.Remove(ctx, "42")
	assert.ErrorIs(t, err, errors.ErrBusy)

	assert.Empty(t, f.store.Manifest())
	assert.NoError(t, f.orch.Tracker.LastError("42"), "a rejected operation records nothing")
	assert.Empty(t, f.events)

	guard.Release()
	f.expectFetch("v9")
	require.NoError(t, f.orch.Install(ctx, coolMod("v9"), version("v9")))
}

func TestConcurrentInstallsOfDifferentItems(t *testing.T) {
	f := newFixture(t)
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("x"), nil).Times(8)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := string(rune('a' + i))
			item := model.CatalogItem{ID: id, Provider: model.ProviderCurseForge}
			v := model.CatalogVersion{ID: "1", Filename: id + ".jar", DownloadURL: "https://cdn.example/" + id}
			assert.NoError(t, f.orch.Install(context.Background(), item, v))
		}()
	}
	wg.Wait()

	assert.Len(t, f.store.Manifest(), 8)
	assert.Zero(t, f.orch.Tracker.InFlight())
}

func TestLifecycleScripts(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	scripts := ocmocks.NewMockScriptRunner(ctrl)
	f.orch.Scripts = scripts
	ctx := context.Background()

	want := hooks.Context{
		ItemID:       "42",
		ItemName:     "Cool Mod",
		VersionLabel: "label-v9",
		Filename:     "CoolMod-v9.jar",
		InstallRoot:  f.root,
	}

	// pre-install failure aborts before any download
	scripts.EXPECT().Execute(gomock.Any(), hooks.PreInstall, want).Return(errors.ErrHookScript)
	err := f.orch.Install(ctx, coolMod("v9"), version("v9"))
	assert.ErrorIs(t, err, errors.ErrHookScript)
	assert.Empty(t, f.store.Manifest())

	// post-install failure is only logged
	scripts.EXPECT().Execute(gomock.Any(), hooks.PreInstall, want).Return(nil)
	f.expectFetch("v9")
	scripts.EXPECT().Execute(gomock.Any(), hooks.PostInstall, want).Return(errors.ErrHookExecution)
	require.NoError(t, f.orch.Install(ctx, coolMod("v9"), version("v9")))

	// pre-remove failure keeps the package
	scripts.EXPECT().Execute(gomock.Any(), hooks.PreRemove, want).Return(errors.ErrHookScript)
	assert.ErrorIs(t, f.orch.Remove(ctx, "42"), errors.ErrHookScript)
	assert.FileExists(t, filepath.Join(f.root, "CoolMod-v9.jar"))
	_, cached := f.orch.Cached("42")
	assert.False(t, cached, "a failed remove drops the cached status")

	scripts.EXPECT().Execute(gomock.Any(), hooks.PreRemove, want).Return(nil)
	scripts.EXPECT().Execute(gomock.Any(), hooks.PostRemove, want).Return(nil)
	require.NoError(t, f.orch.Remove(ctx, "42"))
}

func TestRun_UnknownAction(t *testing.T) {
	f := newFixture(t)
	err := f.orch.Run(context.Background(), orchestrator.Action("explode"), coolMod("v9"), version("v9"))
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestObserve(t *testing.T) {
	f := newFixture(t)
	f.expectFetch("v9")
	require.NoError(t, f.orch.Install(context.Background(), coolMod("v9"), version("v9")))

	other := model.CatalogItem{ID: "7", Latest: model.CatalogVersion{ID: "1"}}
	got := f.orch.Observe([]model.CatalogItem{coolMod("v10"), other})
	assert.Equal(t, model.Outdated, got["42"].Status)
	assert.Equal(t, "CoolMod-v9.jar", got["42"].LocalFilename)
	assert.Equal(t, model.NotInstalled, got["7"].Status)
	assert.Equal(t, orchestrator.LabelInstall, f.orch.View(other).Label)
}

func keys(m model.Manifest) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
