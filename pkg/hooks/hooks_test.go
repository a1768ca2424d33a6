package hooks_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hc = hooks.Context{
	ItemID:       "42",
	ItemName:     "Cool Mod",
	VersionLabel: "1.9",
	Filename:     "CoolMod-1.9.jar",
	InstallRoot:  "/games/hytale/UserData/Mods",
}

func TestTengoExecutor(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{
			name:   "empty script",
			script: `// nothing to do`,
		},
		{
			name: "context variables are visible",
			script: `
				if itemID != "42" || itemName != "Cool Mod" || versionLabel != "1.9" {
					err = "unexpected context"
				}
				if filename != "CoolMod-1.9.jar" || installRoot == "" {
					err = "unexpected paths"
				}
			`,
		},
		{
			name: "stdlib modules are importable",
			script: `
				text := import("text")
				if !text.has_suffix(filename, ".jar") {
					err = "not a jar"
				}
			`,
		},
		{
			name:    "script reports failure through err",
			script:  `err = "blocked by policy"`,
			wantErr: errors.ErrHookScript,
		},
		{
			name:    "compile error",
			script:  `non_existent_function()`,
			wantErr: errors.ErrHookExecution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := hooks.NewTengoExecutor()
			executor.AddScript(hooks.PreInstall, tt.script)

			err := executor.Execute(context.Background(), hooks.PreInstall, hc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTengoExecutor_MissingScript(t *testing.T) {
	executor := hooks.NewTengoExecutor()
	assert.False(t, executor.HasScript(hooks.PostRemove))
	assert.NoError(t, executor.Execute(context.Background(), hooks.PostRemove, hc))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre-install.tengo"), []byte(`err = "no"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post-remove.tengo"), []byte(`x := 1`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cleanup.tengo"), []byte(`x := 1`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post-install.txt"), []byte(`x := 1`), 0o644))

	executor, err := hooks.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []hooks.HookType{hooks.PreInstall, hooks.PostRemove}, executor.Loaded())
	assert.ErrorIs(t, executor.Execute(context.Background(), hooks.PreInstall, hc), errors.ErrHookScript)
}

func TestLoadDir_Missing(t *testing.T) {
	executor, err := hooks.LoadDir(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, executor.Loaded())

	executor, err = hooks.LoadDir("")
	require.NoError(t, err)
	assert.Empty(t, executor.Loaded())
}

func TestWriteTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hooks")

	path, err := hooks.WriteTemplate(dir, hooks.PostInstall)
	require.NoError(t, err)
	assert.Equal(t, hooks.Path(dir, hooks.PostInstall), path)

	executor, err := hooks.LoadDir(dir)
	require.NoError(t, err)
	require.True(t, executor.HasScript(hooks.PostInstall))
	assert.NoError(t, executor.Execute(context.Background(), hooks.PostInstall, hc), "templates must run as-is")

	_, err = hooks.WriteTemplate(dir, hooks.PostInstall)
	assert.ErrorIs(t, err, errors.ErrHookLoad)

	_, err = hooks.WriteTemplate(dir, "on-boot")
	assert.ErrorIs(t, err, errors.ErrHookLoad)
}
