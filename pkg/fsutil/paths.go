package fsutil

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the platform config directory.
const AppName = "hymod"

// ConfigDir returns <UserConfigDir>/hymod.
// On Linux: ~/.config/hymod
// On macOS: ~/Library/Application Support/hymod
// On Windows: %AppData%\hymod
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}
