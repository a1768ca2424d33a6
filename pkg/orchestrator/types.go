//go:generate mockgen -destination=./mocks/orchestrator.go . Store,Fetcher,ScriptRunner

package orchestrator

import (
	"context"
	"strings"

	"github.com/glorpus-work/hymod/pkg/hooks"
	"github.com/glorpus-work/hymod/pkg/model"
)

// Store is the subset of the settings store used by the orchestrator.
type Store interface {
	InstallRoot() (string, error)
	Manifest() model.Manifest
	AddEntry(filename string, entry model.InstalledEntry) error
	RemoveEntry(filename string) error
}

// Fetcher downloads package bytes through the provider that listed them.
type Fetcher interface {
	Fetch(ctx context.Context, provider model.Provider, url string) ([]byte, error)
}

// ScriptRunner executes lifecycle hooks.
type ScriptRunner interface {
	Execute(ctx context.Context, hookType hooks.HookType, hc hooks.Context) error
}

// Action is an operation the orchestrator can run on an item.
type Action string

// Actions.
const (
	ActionNone    Action = ""
	ActionInstall Action = "install"
	ActionUpdate  Action = "update"
	ActionRemove  Action = "remove"
)

// ParseAction maps an action name back to its Action.
func ParseAction(s string) (Action, bool) {
	switch Action(strings.ToLower(s)) {
	case ActionInstall:
		return ActionInstall, true
	case ActionUpdate:
		return ActionUpdate, true
	case ActionRemove:
		return ActionRemove, true
	default:
		return ActionNone, false
	}
}

// Button labels offered by View.
const (
	LabelInstall = "INSTALL"
	LabelUpdate  = "UPDATE"
	LabelRemove  = "REMOVE"
	LabelWorking = "WORKING..."
	LabelRetry   = "RETRY"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string // downloading|installing|removing|done|error
	ID    string // item id
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// ItemView is everything a front end needs to render one item's controls.
type ItemView struct {
	Status model.ResolvedStatus
	Busy   bool
	// LastErr is the error the last operation ended with; nil after a success.
	LastErr error
	// Action is what pressing the item's button does; ActionNone while busy.
	Action Action
	Label  string
}
