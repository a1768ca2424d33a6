// Package scan enumerates the mod packages present in the install root and
// reconciles them with the manifest and the catalog.
package scan

import (
	"context"
	"os"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/fsutil"
	"github.com/glorpus-work/hymod/pkg/model"
)

// DefaultConcurrency bounds catalog lookups when none is configured.
const DefaultConcurrency = 4

// Lookup fetches the live catalog record of a tracked item.
type Lookup func(ctx context.Context, provider model.Provider, itemID string) (model.CatalogItem, error)

// Scanner lists the install root.
type Scanner struct {
	// Lookup is optional; without it tracked files keep their manifest record.
	Lookup      Lookup
	Concurrency int
}

// Scan creates root when absent and returns one record per package file
// directly inside it, sorted by display name. A failed lookup is logged and
// the manifest record is used instead.
func (s *Scanner) Scan(ctx context.Context, root string, m model.Manifest) ([]model.LocalMod, error) {
	if err := fsutil.EnsureDir(root); err != nil {
		return nil, errors.Kind(errors.ErrIO, errors.Wrapf(err, "failed to create install root %s", root))
	}
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Kind(errors.ErrIO, errors.Wrapf(err, "failed to read install root %s", root))
	}

	var mods []model.LocalMod
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !IsPackage(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// removed between listing and stat
			continue
		}
		mods = append(mods, record(de.Name(), info.Size(), m))
	}

	s.refresh(ctx, mods)

	sort.SliceStable(mods, func(i, j int) bool {
		a, b := strings.ToLower(mods[i].Item.Name), strings.ToLower(mods[j].Item.Name)
		if a != b {
			return a < b
		}
		return mods[i].Filename < mods[j].Filename
	})
	return mods, nil
}

func record(filename string, size int64, m model.Manifest) model.LocalMod {
	mod := model.LocalMod{Filename: filename, Size: size}
	if entry, ok := m[filename]; ok {
		mod.Tracked = true
		mod.Entry = &entry
		mod.Item = model.CatalogItem{
			ID:       entry.ProviderItemID,
			Provider: entry.Provider,
			Name:     entry.DisplayName,
			Latest: model.CatalogVersion{
				ID:       entry.InstalledVersionID,
				Label:    entry.InstalledVersionLabel,
				Filename: filename,
			},
		}
		return mod
	}

	name, version := SplitName(filename)
	mod.Item = model.CatalogItem{
		Name:   name,
		Latest: model.CatalogVersion{Label: version, Filename: filename},
	}
	return mod
}

func (s *Scanner) refresh(ctx context.Context, mods []model.LocalMod) {
	if s.Lookup == nil {
		return
	}
	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range mods {
		if !mods[i].Tracked {
			continue
		}
		mod := &mods[i]
		g.Go(func() error {
			item, err := s.Lookup(gctx, mod.Entry.Provider, mod.Entry.ProviderItemID)
			if err != nil {
				logger.Warn("Catalog lookup failed, using cached record", logger.Fields{
					"file":  mod.Filename,
					"item":  mod.Entry.ProviderItemID,
					"error": err.Error(),
				})
				return nil
			}
			mod.Item = item
			mod.Live = true
			return nil
		})
	}
	_ = g.Wait()
}
