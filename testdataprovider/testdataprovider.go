// Package testdataprovider is a scripted configprovider.Provider for tests,
// grounded on skipper's routing/testdataclient test double.
package testdataprovider

import (
	"context"
	"sync"

	"github.com/zalando/routecore/configprovider"
	"github.com/zalando/routecore/routespec"
)

// Provider is a configprovider.Provider whose Initial result and
// subsequent pushes are set programmatically by a test.
type Provider struct {
	mu       sync.Mutex
	routes   []routespec.RouteSpec
	clusters []routespec.ClusterSpec

	updates chan configprovider.Update
}

// New returns a Provider whose Initial call returns routes/clusters.
func New(routes []routespec.RouteSpec, clusters []routespec.ClusterSpec) *Provider {
	return &Provider{
		routes:   routes,
		clusters: clusters,
		updates:  make(chan configprovider.Update, 16),
	}
}

func (p *Provider) Initial(_ context.Context) ([]routespec.RouteSpec, []routespec.ClusterSpec, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.routes, p.clusters, nil
}

func (p *Provider) Subscribe(_ context.Context) (<-chan configprovider.Update, error) {
	return p.updates, nil
}

// Push sends a new full (routes, clusters) generation to any active
// subscription.
func (p *Provider) Push(routes []routespec.RouteSpec, clusters []routespec.ClusterSpec) {
	p.updates <- configprovider.Update{Routes: routes, Clusters: clusters}
}

// PushError sends an Update carrying a provider-side error, simulating a
// transient upstream failure.
func (p *Provider) PushError(err error) {
	p.updates <- configprovider.Update{Err: err}
}
