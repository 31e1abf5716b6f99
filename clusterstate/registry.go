package clusterstate

import (
	"sync"

	"github.com/zalando/routecore/routespec"
	"github.com/zalando/routecore/transport"
)

// ReconcileResult reports which cluster ids were added, updated in place,
// or removed by a call to Registry.Reconcile.
type ReconcileResult struct {
	Added   []string
	Updated []string
	Removed []string
}

// Registry owns the live set of ClusterState objects, keyed by cluster id.
type Registry struct {
	factory *transport.Factory

	mu     sync.Mutex
	states map[string]*ClusterState
}

// NewRegistry returns an empty Registry that acquires transports from
// factory.
func NewRegistry(factory *transport.Factory) *Registry {
	return &Registry{factory: factory, states: make(map[string]*ClusterState)}
}

// Get returns the live ClusterState for id, if any.
func (r *Registry) Get(id string) (*ClusterState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[id]
	return s, ok
}

// Reconcile diffs specs (already validated and filtered) against the
// current live set by cluster_id. For cluster ids that disappear,
// the ClusterState is retired: removed from the registry and its
// transport handle released. In-flight holders of the retired
// *ClusterState keep a valid, just-no-longer-reachable-via-the-registry
// reference, per the identity preservation invariant.
func (r *Registry) Reconcile(specs []routespec.ClusterSpec) ReconcileResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result ReconcileResult
	seen := make(map[string]bool, len(specs))

	for _, spec := range specs {
		seen[spec.ClusterID] = true
		existing, ok := r.states[spec.ClusterID]
		if !ok {
			handle := r.factory.Acquire(spec.ClusterID, clientOptions(spec), nil)
			r.states[spec.ClusterID] = newClusterState(spec, handle)
			result.Added = append(result.Added, spec.ClusterID)
			continue
		}

		newHandle := r.factory.Acquire(spec.ClusterID, clientOptions(spec), existing.HTTPHandle())
		existing.update(spec, newHandle)
		result.Updated = append(result.Updated, spec.ClusterID)
	}

	for id, state := range r.states {
		if seen[id] {
			continue
		}
		if handle := state.HTTPHandle(); handle != nil {
			r.factory.Release(handle)
		}
		delete(r.states, id)
		result.Removed = append(result.Removed, id)
	}

	return result
}

// Snapshot returns every live ClusterState, for building a routing
// snapshot's cluster-registry view.
func (r *Registry) Snapshot() map[string]*ClusterState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*ClusterState, len(r.states))
	for id, s := range r.states {
		out[id] = s
	}
	return out
}

func clientOptions(spec routespec.ClusterSpec) routespec.HttpClientOptions {
	if spec.HttpClient != nil {
		return *spec.HttpClient
	}
	return routespec.HttpClientOptions{}
}
