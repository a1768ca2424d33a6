// Package tracker holds the process-wide runtime view of every item the user
// has looked at: its last resolved status, whether an operation is in flight
// for it, and the error that operation last ended with.
//
// None of this state is persisted.
package tracker

import (
	"sync"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/model"
)

// Tracker is safe for concurrent use. The zero value is not usable; call New.
type Tracker struct {
	mu       sync.Mutex
	statuses map[string]model.ResolvedStatus
	inFlight map[string]struct{}
	lastErr  map[string]error
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{
		statuses: make(map[string]model.ResolvedStatus),
		inFlight: make(map[string]struct{}),
		lastErr:  make(map[string]error),
	}
}

// Guard marks one item as in flight until Release is called.
type Guard struct {
	t      *Tracker
	itemID string
	once   sync.Once
}

// Begin marks itemID as in flight. It fails with ErrBusy, without waiting,
// when another operation already holds the item.
func (t *Tracker) Begin(itemID string) (*Guard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, busy := t.inFlight[itemID]; busy {
		return nil, errors.Op("begin", itemID, errors.ErrBusy)
	}
	t.inFlight[itemID] = struct{}{}
	return &Guard{t: t, itemID: itemID}, nil
}

// ItemID returns the guarded item id.
func (g *Guard) ItemID() string { return g.itemID }

// Release clears the in-flight flag. Calling it more than once is a no-op.
func (g *Guard) Release() {
	g.once.Do(func() {
		g.t.mu.Lock()
		delete(g.t.inFlight, g.itemID)
		g.t.mu.Unlock()
	})
}

// Busy reports whether an operation is in flight for itemID.
func (t *Tracker) Busy(itemID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, busy := t.inFlight[itemID]
	return busy
}

// InFlight returns how many items are currently locked.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inFlight)
}

// Status returns the cached status for itemID.
func (t *Tracker) Status(itemID string) (model.ResolvedStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.statuses[itemID]
	return s, ok
}

// Store overwrites the cached status for itemID.
func (t *Tracker) Store(itemID string, status model.ResolvedStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses[itemID] = status
}

// Invalidate drops the cached status for itemID.
func (t *Tracker) Invalidate(itemID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.statuses, itemID)
}

// SetError records the outcome of the last operation on itemID. A nil err
// clears it.
func (t *Tracker) SetError(itemID string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err == nil {
		delete(t.lastErr, itemID)
		return
	}
	t.lastErr[itemID] = err
}

// LastError returns the error the last operation on itemID ended with.
func (t *Tracker) LastError(itemID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr[itemID]
}

// Reset forgets cached statuses and errors. In-flight flags are kept.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.statuses)
	clear(t.lastErr)
}
