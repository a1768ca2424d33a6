// Package fsutil provides file system helpers and permission constants.
package fsutil

import (
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all missing parents with DirModeDefault.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of filePath with the given mode.
func EnsureFileDir(filePath string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(filePath), perm)
}
