package manager

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zalando/routecore/changesignal"
	"github.com/zalando/routecore/clusterstate"
	"github.com/zalando/routecore/endpoint"
	"github.com/zalando/routecore/routespec"
	"github.com/zalando/routecore/snapshot"
	"github.com/zalando/routecore/validation"
)

// runReload drives one pass of the reload state machine. It serializes
// with any other concurrently triggered reload via reloadMu: at most one
// reload is Filtering/Validating/Reconciling/Compiling/Publishing at a
// time. On success it returns nil and the new snapshot is already
// published. On failure it returns a *ReloadFailure and leaves the
// currently published snapshot untouched.
func (m *Manager) runReload(ctx context.Context, routes []routespec.RouteSpec, clusters []routespec.ClusterSpec) error {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	m.state.set(StateFiltering)
	filteredRoutes, routeFilterFailures := m.chain.ApplyRoutes(ctx, routes)
	filteredClusters, clusterFilterFailures := m.chain.ApplyClusters(ctx, clusters)

	m.state.set(StateValidating)
	failure := newReloadFailure()
	for _, ferr := range routeFilterFailures {
		failure.add(ferr)
	}
	for _, ferr := range clusterFilterFailures {
		failure.add(ferr)
	}
	for _, r := range filteredRoutes {
		for _, verr := range validation.ValidateRoute(r, m.policy) {
			failure.add(verr)
		}
	}
	for _, c := range filteredClusters {
		for _, verr := range validation.ValidateCluster(c, m.policy) {
			failure.add(verr)
		}
	}
	for _, verr := range checkDuplicateRouteIDs(filteredRoutes) {
		failure.add(verr)
	}

	if !failure.isEmpty() {
		m.state.set(StateFailed)
		m.state.set(StateIdle)
		return failure
	}

	m.state.set(StateReconciling)
	m.registry.Reconcile(filteredClusters)

	m.state.set(StateCompiling)
	endpoints := m.compileEndpoints(filteredRoutes)

	m.state.set(StatePublishing)
	next := &snapshot.Snapshot{
		GenerationID: uuid.NewString(),
		Endpoints:    endpoints,
		Clusters:     m.registry.Snapshot(),
		ChangeSignal: changesignal.New(),
	}
	m.holder.Publish(next)
	m.state.set(StateIdle)

	m.log.WithField("generation", next.GenerationID).
		WithField("routes", len(endpoints)).
		WithField("clusters", len(filteredClusters)).
		Info("reload published a new snapshot")
	return nil
}

func (m *Manager) compileEndpoints(routes []routespec.RouteSpec) []*endpoint.Endpoint {
	endpoints := make([]*endpoint.Endpoint, 0, len(routes))
	for _, r := range routes {
		var cluster *clusterstate.ClusterState
		if r.ClusterID != "" {
			if c, ok := m.registry.Get(r.ClusterID); ok {
				cluster = c
			}
		}
		endpoints = append(endpoints, m.compiler.Compile(r, cluster))
	}
	return endpoints
}

func checkDuplicateRouteIDs(routes []routespec.RouteSpec) []error {
	seen := make(map[string]bool, len(routes))
	var errs []error
	for _, r := range routes {
		if r.RouteID == "" {
			continue
		}
		if seen[r.RouteID] {
			errs = append(errs, fmt.Errorf("duplicate route id '%s'", r.RouteID))
			continue
		}
		seen[r.RouteID] = true
	}
	return errs
}
