// Package hooks runs user supplied Tengo scripts around install and remove
// operations.
package hooks

import (
	"context"
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/glorpus-work/hymod/pkg/errors"
)

// TengoExecutor handles the execution of Tengo scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the script registered for hookType, if any.
func (e *TengoExecutor) Execute(ctx context.Context, hookType HookType, hc Context) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times", "json"))

	vars := map[string]string{
		"itemID":       hc.ItemID,
		"itemName":     hc.ItemName,
		"versionLabel": hc.VersionLabel,
		"filename":     hc.Filename,
		"installRoot":  hc.InstallRoot,
	}
	for name, value := range vars {
		if err := scriptInstance.Add(name, value); err != nil {
			return fmt.Errorf("%w: failed to add %s to script: %w", errors.ErrHookExecution, name, err)
		}
	}
	if err := scriptInstance.Add("err", ""); err != nil {
		return fmt.Errorf("%w: failed to add err to script: %w", errors.ErrHookExecution, err)
	}

	compiled, err := scriptInstance.RunContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, errors.ErrHookExecution, err)
	}

	// A script signals failure by assigning err.
	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%s: %w: %w", hookType, errors.ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%s: %w: %s", hookType, errors.ErrHookScript, v)
			}
		}
	}

	return nil
}

// AddScript adds or replaces the script for hookType.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}

// Loaded returns the hook types that have a script, in lifecycle order.
func (e *TengoExecutor) Loaded() []HookType {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	var loaded []HookType
	for _, t := range HookTypes {
		if _, ok := e.scripts[t]; ok {
			loaded = append(loaded, t)
		}
	}
	return loaded
}
