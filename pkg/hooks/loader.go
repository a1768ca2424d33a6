package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/fsutil"
)

// FileExtension is the extension hook scripts must carry.
const FileExtension = ".tengo"

// LoadDir builds an executor from the <hook-type>.tengo files in dir. A
// missing dir yields an executor without scripts; unknown file names are skipped.
func LoadDir(dir string) (*TengoExecutor, error) {
	executor := NewTengoExecutor()
	if dir == "" {
		return executor, nil
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return executor, nil
	}
	if err != nil {
		return nil, errors.Kind(errors.ErrHookLoad, errors.Wrapf(err, "failed to read hooks directory %s", dir))
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != FileExtension {
			continue
		}
		hookType := HookType(strings.TrimSuffix(entry.Name(), FileExtension))
		if !hookType.Valid() {
			continue
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return nil, errors.Kind(errors.ErrHookLoad, errors.Wrapf(err, "error reading hook file %s", hookPath))
		}
		executor.AddScript(hookType, string(content))
	}

	return executor, nil
}

// Path returns where the script for hookType lives inside dir.
func Path(dir string, hookType HookType) string {
	return filepath.Join(dir, string(hookType)+FileExtension)
}

// WriteTemplate creates a commented starter script for hookType in dir. It
// refuses to overwrite an existing script.
func WriteTemplate(dir string, hookType HookType) (string, error) {
	if !hookType.Valid() {
		return "", errors.Wrapf(errors.ErrHookLoad, "unknown hook type %q", hookType)
	}
	path := Path(dir, hookType)
	if _, err := os.Stat(path); err == nil {
		return "", errors.Wrapf(errors.ErrHookLoad, "hook %s already exists", path)
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return "", errors.Kind(errors.ErrIO, err)
	}
	if err := fsutil.WriteFileAtomic(path, []byte(Template(hookType)), fsutil.FileModeDefault); err != nil {
		return "", errors.Kind(errors.ErrIO, err)
	}
	return path, nil
}

// Template generates a template for a hook script.
func Template(hookType HookType) string {
	const vars = `// Available variables:
// - itemID: string - catalog id of the mod
// - itemName: string - display name of the mod
// - versionLabel: string - version being installed or removed
// - filename: string - package file name inside the install root
// - installRoot: string - the game's mods directory
// Assign a non-empty string to err to fail the hook.`

	switch hookType {
	case PreInstall:
		return `// Pre-install hook
// Runs before the package is written. Failing here aborts the install.
` + vars + `

/*
fmt := import("fmt")
if itemName == "" {
    err = "refusing to install an unnamed mod"
}
fmt.println("installing " + filename)
*/
`
	case PostInstall:
		return `// Post-install hook
// Runs after the package is written and recorded.
` + vars + `

/*
fmt := import("fmt")
fmt.println(itemName + " " + versionLabel + " installed into " + installRoot)
*/
`
	case PreRemove:
		return `// Pre-remove hook
// Runs before the package is deleted. Failing here aborts the removal.
` + vars + `
`
	case PostRemove:
		return `// Post-remove hook
// Runs after the package is deleted.
` + vars + `

/*
os := import("os")
os.remove_all(installRoot + "/" + itemName + "-data")
*/
`
	default:
		return "// Unknown hook type: " + string(hookType) + "\n"
	}
}
