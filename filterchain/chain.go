package filterchain

import (
	"context"

	"github.com/zalando/routecore/routespec"
)

// Chain runs a fixed, ordered list of Filter stages over route and cluster
// records.
type Chain struct {
	filters []Filter
}

// New builds a Chain that applies filters in the given order.
func New(filters ...Filter) *Chain {
	return &Chain{filters: append([]Filter(nil), filters...)}
}

// ApplyRoutes runs every route through the chain. Routes that fail a filter
// are dropped from the returned slice but recorded in the returned failure
// list; routes that never hit a failing filter are returned transformed.
func (c *Chain) ApplyRoutes(ctx context.Context, routes []routespec.RouteSpec) ([]routespec.RouteSpec, []*FilterError) {
	out := make([]routespec.RouteSpec, 0, len(routes))
	var failures []*FilterError

	for _, route := range routes {
		cur := route
		failed := false
		for _, f := range c.filters {
			next, err := f.ConfigureRoute(ctx, cur)
			if err != nil {
				failures = append(failures, &FilterError{FilterName: f.Name(), RecordID: route.RouteID, Err: err})
				failed = true
				break
			}
			cur = next
		}
		if !failed {
			out = append(out, cur)
		}
	}

	return out, failures
}

// ApplyClusters runs every cluster through the chain, with the same
// per-record failure isolation as ApplyRoutes.
func (c *Chain) ApplyClusters(ctx context.Context, clusters []routespec.ClusterSpec) ([]routespec.ClusterSpec, []*FilterError) {
	out := make([]routespec.ClusterSpec, 0, len(clusters))
	var failures []*FilterError

	for _, cluster := range clusters {
		cur := cluster
		failed := false
		for _, f := range c.filters {
			next, err := f.ConfigureCluster(ctx, cur)
			if err != nil {
				failures = append(failures, &FilterError{FilterName: f.Name(), RecordID: cluster.ClusterID, Err: err})
				failed = true
				break
			}
			cur = next
		}
		if !failed {
			out = append(out, cur)
		}
	}

	return out, failures
}
