// Package snapshot implements the immutable forwarding-table generation and
// the single atomic pointer that publishes it.
package snapshot

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/zalando/routecore/changesignal"
	"github.com/zalando/routecore/clusterstate"
	"github.com/zalando/routecore/endpoint"
)

// Snapshot is one successfully applied configuration generation: the
// compiled endpoints, the live cluster registry view at that generation,
// and a change signal scoped to this specific generation.
type Snapshot struct {
	// GenerationID identifies this published generation in logs and
	// diagnostics; it has no bearing on routing behavior.
	GenerationID string

	Endpoints    []*endpoint.Endpoint
	Clusters     map[string]*clusterstate.ClusterState
	ChangeSignal *changesignal.Signal
}

// Empty returns a valid, zero-endpoint Snapshot with a fresh, unfired
// change signal — the result of loading an empty (or nil) configuration.
func Empty() *Snapshot {
	return &Snapshot{
		GenerationID: uuid.NewString(),
		Endpoints:    nil,
		Clusters:     map[string]*clusterstate.ClusterState{},
		ChangeSignal: changesignal.New(),
	}
}

// Holder publishes a single current Snapshot behind an atomic pointer:
// readers call Load with acquire semantics, the writer calls Publish with
// release semantics. The zero value is not ready; use NewHolder.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder returns a Holder initialized to an empty Snapshot.
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(Empty())
	return h
}

// Load returns the current Snapshot. Never nil.
func (h *Holder) Load() *Snapshot {
	return h.current.Load()
}

// Publish atomically replaces the current Snapshot with next and fires the
// change signal of the generation being replaced. It does not fire next's
// own signal.
func (h *Holder) Publish(next *Snapshot) {
	old := h.current.Swap(next)
	if old != nil {
		old.ChangeSignal.Fire()
	}
}
