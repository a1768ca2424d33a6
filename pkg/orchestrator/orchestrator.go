// Package orchestrator runs install, update and remove operations against the
// install root and the manifest, one operation per item at a time.
package orchestrator

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/fsutil"
	"github.com/glorpus-work/hymod/pkg/hooks"
	"github.com/glorpus-work/hymod/pkg/manifest"
	"github.com/glorpus-work/hymod/pkg/model"
	"github.com/glorpus-work/hymod/pkg/tracker"
)

// Orchestrator ties the settings store, the catalog and the lifecycle hooks
// together. Operations on different items run in parallel; a second
// operation on a busy item fails with ErrBusy.
type Orchestrator struct {
	Store   Store
	Fetcher Fetcher
	Scripts ScriptRunner // optional
	Tracker *tracker.Tracker
	Hooks   Hooks // Hooks for progress and event notifications
}

// New constructs an Orchestrator. A nil tracker gets a fresh one; scripts
// may be nil.
func New(store Store, fetcher Fetcher, scripts ScriptRunner, tr *tracker.Tracker, h Hooks) *Orchestrator {
	if tr == nil {
		tr = tracker.New()
	}
	return &Orchestrator{
		Store:   store,
		Fetcher: fetcher,
		Scripts: scripts,
		Tracker: tr,
		Hooks:   h,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Install downloads version and places it in the install root, replacing
// any other file recorded for the same item.
func (o *Orchestrator) Install(ctx context.Context, item model.CatalogItem, version model.CatalogVersion) (err error) {
	guard, err := o.Tracker.Begin(item.ID)
	if err != nil {
		return err
	}
	defer guard.Release()
	defer o.finish(ActionInstall, item.ID, latestID(item, version), &err)

	root, err := o.preflight(item, version)
	if err != nil {
		return err
	}
	if err := o.runPre(ctx, hooks.PreInstall, hookContext(item, version, root)); err != nil {
		return err
	}

	data, err := o.download(ctx, item, version)
	if err != nil {
		return err
	}
	if err := o.place(root, item, version, data, manifest.FilenamesFor(o.Store.Manifest(), item.ID)); err != nil {
		return err
	}

	o.runPost(ctx, hooks.PostInstall, hookContext(item, version, root))
	logger.Info("Installed", logger.Fields{"item": item.ID, "version": version.Label, "file": version.Filename})
	return nil
}

// Update replaces the installed version of item with version. The new
// package is downloaded before the old one is deleted, so a failed download
// leaves the installation untouched. Without an existing entry it installs.
func (o *Orchestrator) Update(ctx context.Context, item model.CatalogItem, version model.CatalogVersion) (err error) {
	guard, err := o.Tracker.Begin(item.ID)
	if err != nil {
		return err
	}
	defer guard.Release()
	defer o.finish(ActionUpdate, item.ID, latestID(item, version), &err)

	root, err := o.preflight(item, version)
	if err != nil {
		return err
	}
	old := manifest.FilenamesFor(o.Store.Manifest(), item.ID)
	if err := o.runPre(ctx, hooks.PreInstall, hookContext(item, version, root)); err != nil {
		return err
	}

	data, err := o.download(ctx, item, version)
	if err != nil {
		return err
	}
	for _, filename := range old {
		if err := o.discard(root, item.ID, filename); err != nil {
			return err
		}
	}
	if err := o.place(root, item, version, data, nil); err != nil {
		return err
	}

	o.runPost(ctx, hooks.PostInstall, hookContext(item, version, root))
	logger.Info("Updated", logger.Fields{"item": item.ID, "version": version.Label, "replaced": strings.Join(old, ",")})
	return nil
}

// Remove deletes every file recorded for itemID and its manifest entries.
// A file that is already gone is not an error.
func (o *Orchestrator) Remove(ctx context.Context, itemID string) (err error) {
	guard, err := o.Tracker.Begin(itemID)
	if err != nil {
		return err
	}
	defer guard.Release()
	defer o.finish(ActionRemove, itemID, "", &err)

	m := o.Store.Manifest()
	names := manifest.FilenamesFor(m, itemID)
	if len(names) == 0 {
		return errors.ErrNotLocallyInstalled
	}
	root, err := o.Store.InstallRoot()
	if err != nil {
		return err
	}

	entry := m[names[0]]
	hc := hooks.Context{
		ItemID:       itemID,
		ItemName:     entry.DisplayName,
		VersionLabel: entry.InstalledVersionLabel,
		Filename:     names[0],
		InstallRoot:  root,
	}
	if err := o.runPre(ctx, hooks.PreRemove, hc); err != nil {
		return err
	}

	emit(o.Hooks, Event{Phase: "removing", ID: itemID, Msg: strings.Join(names, ", ")})
	for _, filename := range names {
		if err := o.discard(root, itemID, filename); err != nil {
			return err
		}
	}

	o.runPost(ctx, hooks.PostRemove, hc)
	logger.Info("Removed", logger.Fields{"item": itemID, "files": strings.Join(names, ",")})
	return nil
}

// Run dispatches action. Front ends call it for the button of an item and
// to retry a failed operation.
func (o *Orchestrator) Run(ctx context.Context, action Action, item model.CatalogItem, version model.CatalogVersion) error {
	switch action {
	case ActionInstall:
		return o.Install(ctx, item, version)
	case ActionUpdate:
		return o.Update(ctx, item, version)
	case ActionRemove:
		return o.Remove(ctx, item.ID)
	default:
		return errors.Op("run", item.ID, errors.Wrapf(errors.ErrConfig, "unknown action %q", action))
	}
}

// preflight checks everything that can be checked before the network.
func (o *Orchestrator) preflight(item model.CatalogItem, version model.CatalogVersion) (string, error) {
	root, err := o.Store.InstallRoot()
	if err != nil {
		return "", err
	}
	if !version.HasDownload() {
		return "", errors.ErrNoDownloadURL
	}
	if !ValidFilename(version.Filename) {
		return "", errors.Wrapf(errors.ErrInvalidFilename, "%q", version.Filename)
	}
	if item.ID == "" {
		return "", errors.Wrap(errors.ErrInvalidIdentifier, "empty item id")
	}
	return root, nil
}

// ValidFilename reports whether name can be written directly inside the
// install root.
func ValidFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func (o *Orchestrator) download(ctx context.Context, item model.CatalogItem, version model.CatalogVersion) ([]byte, error) {
	emit(o.Hooks, Event{Phase: "downloading", ID: item.ID, Msg: version.Filename})
	data, err := o.Fetcher.Fetch(ctx, item.Provider, version.DownloadURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("Fetched package", logger.Fields{"item": item.ID, "bytes": len(data)})
	return data, nil
}

// place writes data as version.Filename after discarding the stale files
// listed in replace, then records the entry.
func (o *Orchestrator) place(root string, item model.CatalogItem, version model.CatalogVersion, data []byte, replace []string) error {
	emit(o.Hooks, Event{Phase: "installing", ID: item.ID, Msg: version.Filename})
	if err := fsutil.EnsureDir(root); err != nil {
		return errors.Kind(errors.ErrIO, errors.Wrapf(err, "failed to create install root %s", root))
	}
	for _, filename := range replace {
		if filename == version.Filename {
			continue
		}
		if err := o.discard(root, item.ID, filename); err != nil {
			return err
		}
	}

	target := filepath.Join(root, version.Filename)
	if err := fsutil.WriteFileAtomic(target, data, fsutil.FileModeDefault); err != nil {
		return errors.Kind(errors.ErrIO, errors.Wrapf(err, "failed to write %s", target))
	}

	return o.Store.AddEntry(version.Filename, model.InstalledEntry{
		ProviderItemID:        item.ID,
		DisplayName:           item.Name,
		InstalledVersionID:    version.ID,
		InstalledVersionLabel: version.Label,
		Provider:              item.Provider,
	})
}

// discard deletes filename from the install root and the manifest.
func (o *Orchestrator) discard(root, itemID, filename string) error {
	removed, err := fsutil.RemoveIfExists(filepath.Join(root, filename))
	if err != nil {
		return errors.Kind(errors.ErrIO, errors.Wrapf(err, "failed to delete %s", filename))
	}
	if !removed {
		logger.Warn("Package file already gone", logger.Fields{"item": itemID, "file": filename})
	}
	return o.Store.RemoveEntry(filename)
}

func (o *Orchestrator) runPre(ctx context.Context, hookType hooks.HookType, hc hooks.Context) error {
	if o.Scripts == nil {
		return nil
	}
	return o.Scripts.Execute(ctx, hookType, hc)
}

func (o *Orchestrator) runPost(ctx context.Context, hookType hooks.HookType, hc hooks.Context) {
	if o.Scripts == nil {
		return
	}
	if err := o.Scripts.Execute(ctx, hookType, hc); err != nil {
		logger.Warn("Hook failed", logger.Fields{"hook": string(hookType), "item": hc.ItemID, "error": err.Error()})
	}
}

// finish records the outcome of an operation. It runs before the guard is
// released so nobody observes a free item with a stale status.
func (o *Orchestrator) finish(action Action, itemID, latest string, errp *error) {
	if *errp != nil {
		*errp = errors.Op(string(action), itemID, *errp)
		emit(o.Hooks, Event{Phase: "error", ID: itemID, Msg: (*errp).Error()})
	} else {
		emit(o.Hooks, Event{Phase: "done", ID: itemID})
	}
	o.Tracker.SetError(itemID, *errp)

	if latest == "" && *errp != nil {
		o.Tracker.Invalidate(itemID)
		return
	}
	o.Tracker.Store(itemID, manifest.Resolve(o.Store.Manifest(), itemID, latest))
}

func latestID(item model.CatalogItem, version model.CatalogVersion) string {
	if item.Latest.ID != "" {
		return item.Latest.ID
	}
	return version.ID
}

func hookContext(item model.CatalogItem, version model.CatalogVersion, root string) hooks.Context {
	return hooks.Context{
		ItemID:       item.ID,
		ItemName:     item.Name,
		VersionLabel: version.Label,
		Filename:     version.Filename,
		InstallRoot:  root,
	}
}
