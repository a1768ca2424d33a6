// Package archive inspects mod packages. Hytale mods ship as zip archives
// (.jar or .zip) that usually embed a manifest.json.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mholt/archives"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/fsutil"
)

// ManifestName is the package manifest's path inside the archive.
const ManifestName = "manifest.json"

// Author is one credited author of a package.
type Author struct {
	Name  string `json:"Name"`
	Email string `json:"Email,omitempty"`
	URL   string `json:"Url,omitempty"`
}

// PackageManifest is the subset of manifest.json the manager displays.
type PackageManifest struct {
	Group         string   `json:"Group,omitempty"`
	Name          string   `json:"Name"`
	Version       string   `json:"Version"`
	Description   string   `json:"Description,omitempty"`
	Authors       []Author `json:"Authors,omitempty"`
	Main          string   `json:"Main,omitempty"`
	ServerVersion string   `json:"ServerVersion,omitempty"`
}

// Entry is one file inside a package.
type Entry struct {
	Name string
	Size int64
}

// Info describes a package.
type Info struct {
	Path    string
	Entries []Entry
	// Manifest is nil when the package has no readable manifest.json.
	Manifest *PackageManifest
}

// TotalSize sums the uncompressed size of every entry.
func (i *Info) TotalSize() uint64 {
	var total uint64
	for _, e := range i.Entries {
		total += uint64(max(e.Size, 0))
	}
	return total
}

// Manager opens mod packages.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

func (am *Manager) open(ctx context.Context, path string) (fs.FS, func(), error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, errors.Kind(errors.ErrIO, fmt.Errorf("failed to open package: %w", err))
	}
	fsys, err := archives.FileSystem(ctx, path, nil)
	if err != nil {
		return nil, nil, errors.Kind(errors.ErrParse, fmt.Errorf("failed to open package %s: %w", path, err))
	}
	closeFn := func() {
		if closer, ok := fsys.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	if _, ok := fsys.(*archives.ArchiveFS); !ok {
		closeFn()
		return nil, nil, errors.Wrapf(errors.ErrParse, "%s is not an archive", path)
	}
	return fsys, closeFn, nil
}

// Inspect lists the files of the package at path and decodes its manifest.
func (am *Manager) Inspect(ctx context.Context, path string) (*Info, error) {
	fsys, closeFn, err := am.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	info := &Info{Path: path}
	walkFn := func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info for %s: %w", name, err)
		}
		info.Entries = append(info.Entries, Entry{Name: name, Size: fi.Size()})
		return nil
	}
	if err := fs.WalkDir(fsys, ".", walkFn); err != nil {
		return nil, errors.Kind(errors.ErrParse, fmt.Errorf("failed to read package %s: %w", path, err))
	}
	sort.Slice(info.Entries, func(i, j int) bool { return info.Entries[i].Name < info.Entries[j].Name })

	if data, err := fs.ReadFile(fsys, ManifestName); err == nil {
		var m PackageManifest
		if err := json.Unmarshal(data, &m); err == nil {
			info.Manifest = &m
		}
	}
	return info, nil
}

// ExtractFile copies one entry of the package at path to destPath.
func (am *Manager) ExtractFile(ctx context.Context, path, entry, destPath string) error {
	fsys, closeFn, err := am.open(ctx, path)
	if err != nil {
		return err
	}
	defer closeFn()

	srcFile, err := fsys.Open(entry)
	if err != nil {
		return errors.Kind(errors.ErrNotFound, fmt.Errorf("failed to open %s in %s: %w", entry, path, err))
	}
	defer func() { _ = srcFile.Close() }()

	data, err := io.ReadAll(srcFile)
	if err != nil {
		return errors.Kind(errors.ErrParse, fmt.Errorf("failed to read %s: %w", entry, err))
	}
	if err := fsutil.EnsureFileDir(destPath, fsutil.DirModeDefault); err != nil {
		return errors.Kind(errors.ErrIO, err)
	}
	if err := fsutil.WriteFileAtomic(filepath.Clean(destPath), data, fsutil.FileModeDefault); err != nil {
		return errors.Kind(errors.ErrIO, err)
	}
	return nil
}
