//go:build integration

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/hymod/pkg/config"
	"github.com/glorpus-work/hymod/test/testutil"
)

const (
	coolModID   = "42"
	modtaleID   = "c0ffee00-0000-4000-8000-000000000001"
	curseKey    = "secret"
	modtaleKey  = "mt-secret"
	coolModFile = "CoolMod-1.0.jar"
)

// env is one isolated hymod installation talking to a fake catalog.
type env struct {
	cfgPath    string
	gameFolder string
	hooksDir   string
	api        *testutil.CatalogServer
}

func (e *env) modsDir() string {
	return filepath.Join(e.gameFolder, "UserData", "Mods")
}

func (e *env) modPath(filename string) string {
	return filepath.Join(e.modsDir(), filename)
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{
		cfgPath:    filepath.Join(root, "config.yaml"),
		gameFolder: filepath.Join(root, "Hytale"),
		hooksDir:   filepath.Join(root, "hooks"),
		api:        testutil.NewCatalogServer(t),
	}
	e.api.AddMod(testutil.Mod{ID: coolModID, Name: "Cool Mod", Author: "alice", Downloads: 1234, Version: "1.0"})
	e.api.AddMod(testutil.Mod{ID: modtaleID, Name: "Tale Tweaks", Author: "bob", Downloads: 56, Version: "2.1"})
	e.api.RequireKey("x-api-key", curseKey)
	e.api.RequireKey("X-MODTALE-KEY", modtaleKey)

	cfg := config.DefaultConfig()
	cfg.Settings.SettingsPath = filepath.Join(root, "settings.json")
	cfg.Settings.HooksDir = e.hooksDir
	cfg.Providers.CurseForge.BaseURL = e.api.CurseForgeURL()
	cfg.Providers.Modtale.BaseURL = e.api.ModtaleURL()
	cfg.Providers.Modtale.CDNURL = e.api.URL
	require.NoError(t, cfg.SaveConfig(e.cfgPath))
	return e
}

// ready points hymod at the game folder and the CurseForge key.
func (e *env) ready(t *testing.T) {
	t.Helper()
	e.mustRun(t, "folder", "set", e.gameFolder)
	e.mustRun(t, "provider", "set", "curseforge", "--key", curseKey)
}

// run executes hymod in process and returns its standard output.
func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func (e *env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "hymod %v", args)
	return out
}
