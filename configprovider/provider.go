// Package configprovider declares the inbound config-provider contract:
// something outside the core produces (routes, clusters) and notifies the
// manager of later changes. The wire format and storage are entirely the
// provider's concern.
package configprovider

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/zalando/routecore/routespec"
)

// Update is one push from a Provider's subscription: a full replacement set
// of routes and clusters, or a non-nil Err if the provider hit a transient
// problem producing this generation (the manager logs it and keeps serving
// the previous snapshot).
type Update struct {
	Routes   []routespec.RouteSpec
	Clusters []routespec.ClusterSpec
	Err      error
}

// Provider is the inbound contract a config source implements.
type Provider interface {
	// Initial returns the current (routes, clusters) synchronously, for
	// Manager.InitialLoad.
	Initial(ctx context.Context) ([]routespec.RouteSpec, []routespec.ClusterSpec, error)

	// Subscribe returns a channel of subsequent Updates. The channel is
	// closed when ctx is done or the provider has no more updates to
	// send.
	Subscribe(ctx context.Context) (<-chan Update, error)
}

// SubscribeWithBackoff calls p.Subscribe, retrying with an exponential
// backoff if the initial subscribe call itself fails (as opposed to an
// Update carrying an error, which the manager handles directly). This
// generalizes the hand-rolled retry-with-sleep loop commonly built around
// an initial data fetch into a reusable helper for re-arming a lost
// subscription.
func SubscribeWithBackoff(ctx context.Context, p Provider) (<-chan Update, error) {
	return backoff.Retry(ctx, func() (<-chan Update, error) {
		ch, err := p.Subscribe(ctx)
		if err != nil {
			return nil, err
		}
		return ch, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5))
}

// FetchInitialWithBackoff retries p.Initial with an exponential backoff,
// for callers that want resilience against a transient provider outage at
// startup rather than failing immediately. Manager.InitialLoad itself does
// not use this — a failed initial fetch there is a hard failure — but an
// embedder wiring its own startup sequence may.
func FetchInitialWithBackoff(ctx context.Context, p Provider, maxElapsed time.Duration) ([]routespec.RouteSpec, []routespec.ClusterSpec, error) {
	type result struct {
		routes   []routespec.RouteSpec
		clusters []routespec.ClusterSpec
	}

	b := backoff.NewExponentialBackOff()
	r, err := backoff.Retry(ctx, func() (result, error) {
		routes, clusters, err := p.Initial(ctx)
		if err != nil {
			return result{}, err
		}
		return result{routes, clusters}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(maxElapsed))
	if err != nil {
		return nil, nil, err
	}
	return r.routes, r.clusters, nil
}
