// Package filterchain implements an ordered, user-pluggable transform
// pipeline over route and cluster records. Filters run in registration
// order, each seeing the previous filter's output; a failure on one record
// does not stop the pipeline from processing the others.
package filterchain

import (
	"context"

	"github.com/zalando/routecore/routespec"
)

// Filter is one pipeline stage. Implementations that only care about routes
// or only about clusters can embed NoopRouteFilter / NoopClusterFilter to
// satisfy the other method.
type Filter interface {
	Name() string
	ConfigureRoute(ctx context.Context, route routespec.RouteSpec) (routespec.RouteSpec, error)
	ConfigureCluster(ctx context.Context, cluster routespec.ClusterSpec) (routespec.ClusterSpec, error)
}

// NoopRouteFilter can be embedded by a Filter that never touches routes.
type NoopRouteFilter struct{}

func (NoopRouteFilter) ConfigureRoute(_ context.Context, route routespec.RouteSpec) (routespec.RouteSpec, error) {
	return route, nil
}

// NoopClusterFilter can be embedded by a Filter that never touches clusters.
type NoopClusterFilter struct{}

func (NoopClusterFilter) ConfigureCluster(_ context.Context, cluster routespec.ClusterSpec) (routespec.ClusterSpec, error) {
	return cluster, nil
}

// FilterError wraps the error a Filter returned while processing one named
// record.
type FilterError struct {
	FilterName string
	RecordID   string
	Err        error
}

func (e *FilterError) Error() string {
	return "filter '" + e.FilterName + "' failed for '" + e.RecordID + "': " + e.Err.Error()
}

func (e *FilterError) Unwrap() error {
	return e.Err
}
