package orchestrator

import (
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/manifest"
	"github.com/glorpus-work/hymod/pkg/model"
)

// Status resolves itemID against the current manifest and caches the result.
func (o *Orchestrator) Status(itemID, latestVersionID string) model.ResolvedStatus {
	status := manifest.Resolve(o.Store.Manifest(), itemID, latestVersionID)
	o.Tracker.Store(itemID, status)
	return status
}

// Cached returns the last status computed for itemID.
func (o *Orchestrator) Cached(itemID string) (model.ResolvedStatus, bool) {
	return o.Tracker.Status(itemID)
}

// Observe resolves every item against one manifest snapshot.
func (o *Orchestrator) Observe(items []model.CatalogItem) map[string]model.ResolvedStatus {
	m := o.Store.Manifest()
	out := make(map[string]model.ResolvedStatus, len(items))
	for _, item := range items {
		status := manifest.Resolve(m, item.ID, item.Latest.ID)
		o.Tracker.Store(item.ID, status)
		out[item.ID] = status
	}
	return out
}

// View combines status, busy flag and last error into the control an item
// should show.
func (o *Orchestrator) View(item model.CatalogItem) ItemView {
	v := ItemView{
		Status:  o.Status(item.ID, item.Latest.ID),
		Busy:    o.Tracker.Busy(item.ID),
		LastErr: o.Tracker.LastError(item.ID),
	}

	switch {
	case v.Busy:
		v.Action, v.Label = ActionNone, LabelWorking
	case v.LastErr != nil:
		v.Action, v.Label = failedAction(v.LastErr, v.Status), LabelRetry
	default:
		v.Action, v.Label = nextAction(v.Status)
	}
	return v
}

func nextAction(s model.ResolvedStatus) (Action, string) {
	switch s.Status {
	case model.Installed:
		return ActionRemove, LabelRemove
	case model.Outdated:
		return ActionUpdate, LabelUpdate
	default:
		return ActionInstall, LabelInstall
	}
}

// failedAction recovers the action a recorded error came from.
func failedAction(err error, s model.ResolvedStatus) Action {
	var opErr *errors.OpError
	if errors.As(err, &opErr) {
		if action, ok := ParseAction(opErr.Op); ok {
			return action
		}
	}
	action, _ := nextAction(s)
	return action
}
