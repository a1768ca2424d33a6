package hooks

import "context"

// HookType represents the type of hook.
type HookType string

// Supported hook types.
const (
	PreInstall  HookType = "pre-install"
	PostInstall HookType = "post-install"
	PreRemove   HookType = "pre-remove"
	PostRemove  HookType = "post-remove"
)

// HookTypes lists every supported hook type in lifecycle order.
var HookTypes = []HookType{PreInstall, PostInstall, PreRemove, PostRemove}

// Valid reports whether t is a supported hook type.
func (t HookType) Valid() bool {
	switch t {
	case PreInstall, PostInstall, PreRemove, PostRemove:
		return true
	default:
		return false
	}
}

// Context contains the values exposed to a hook script.
type Context struct {
	ItemID       string
	ItemName     string
	VersionLabel string
	Filename     string
	InstallRoot  string
}

// Runner executes lifecycle hooks. A missing script is not an error.
type Runner interface {
	Execute(ctx context.Context, hookType HookType, hc Context) error
}
