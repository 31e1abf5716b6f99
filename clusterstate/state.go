// Package clusterstate owns the live cluster runtime registry: one
// identity-stable ClusterState per cluster_id, its destinations, their
// health, a structural-equality-keyed HTTP transport handle, and a
// per-cluster change signal, reconciled against successive ClusterSpec
// generations without ever replacing a ClusterState object that is still
// referenced.
package clusterstate

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zalando/routecore/changesignal"
	"github.com/zalando/routecore/routespec"
	"github.com/zalando/routecore/transport"
)

// ClusterState is the live, identity-stable runtime object for one cluster.
// Holders of a *ClusterState reference keep seeing it updated in place
// across reloads as long as its cluster id keeps reappearing.
type ClusterState struct {
	clusterID string

	mu           sync.Mutex
	spec         routespec.ClusterSpec
	destinations map[string]*DestinationState // keyed by lower-cased id
	httpHandle   *transport.Handle
	changeSignal *changesignal.Signal

	dynamicState atomic.Pointer[DynamicState]
}

// ClusterID returns the immutable cluster id.
func (c *ClusterState) ClusterID() string {
	return c.clusterID
}

// Spec returns the last applied ClusterSpec.
func (c *ClusterState) Spec() routespec.ClusterSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec
}

// DynamicState returns the current immutable destination snapshot. Safe to
// call concurrently with reconciliation; returns a consistent, fully-built
// value.
func (c *ClusterState) DynamicState() *DynamicState {
	return c.dynamicState.Load()
}

// HTTPHandle returns the cluster's current transport handle.
func (c *ClusterState) HTTPHandle() *transport.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.httpHandle
}

// ChangeSignal returns the signal that fires the next time this cluster's
// DynamicState changes. Each generation of DynamicState has its own signal;
// call ChangeSignal again after it fires to get the next one.
func (c *ClusterState) ChangeSignal() *changesignal.Signal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changeSignal
}

// Destination looks up a destination by id, case-insensitively.
func (c *ClusterState) Destination(id string) (*DestinationState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.destinations[strings.ToLower(id)]
	return d, ok
}

func newClusterState(spec routespec.ClusterSpec, handle *transport.Handle) *ClusterState {
	c := &ClusterState{
		clusterID:    spec.ClusterID,
		spec:         spec,
		changeSignal: changesignal.New(),
		httpHandle:   handle,
	}
	c.destinations = reconcileDestinations(nil, spec.Destinations)
	c.dynamicState.Store(buildDynamicState(c.destinations))
	return c
}

// update applies a new spec to an existing ClusterState in place,
// preserving destination identity and health where the destination id and
// address are unchanged.
func (c *ClusterState) update(spec routespec.ClusterSpec, handle *transport.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.spec.Fingerprint() == spec.Fingerprint() {
		// Structurally identical generation: nothing to diff, no
		// change signal fires.
		c.spec = spec
		return
	}

	c.destinations = reconcileDestinations(c.destinations, spec.Destinations)
	c.spec = spec
	c.httpHandle = handle
	c.dynamicState.Store(buildDynamicState(c.destinations))

	old := c.changeSignal
	c.changeSignal = changesignal.New()
	old.Fire()
}

// reconcileDestinations diffs the previous destination map (may be nil)
// against the new ClusterSpec's destinations, preserving DestinationState
// identity (and thus health) for ids that reappear with an unchanged
// address, and resetting health to Unknown for ids whose address changed
// or that are new.
func reconcileDestinations(previous map[string]*DestinationState, next map[string]routespec.DestinationSpec) map[string]*DestinationState {
	result := make(map[string]*DestinationState, len(next))
	for id, spec := range next {
		norm := strings.ToLower(id)
		if prev, ok := previous[norm]; ok && prev.Spec().Address == spec.Address {
			prev.setSpec(spec)
			result[norm] = prev
			continue
		}
		result[norm] = newDestinationState(id, spec)
	}
	return result
}
