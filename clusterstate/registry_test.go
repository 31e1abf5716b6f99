package clusterstate

import (
	"testing"

	"github.com/zalando/routecore/routespec"
	"github.com/zalando/routecore/transport"
)

func TestReconcileAddsUpdatesAndRemoves(t *testing.T) {
	r := NewRegistry(transport.New(nil))

	res1 := r.Reconcile([]routespec.ClusterSpec{
		{ClusterID: "c1", Destinations: map[string]routespec.DestinationSpec{"d1": {Address: "https://h1/"}}},
		{ClusterID: "c2", Destinations: map[string]routespec.DestinationSpec{"d1": {Address: "https://h2/"}}},
	})
	if len(res1.Added) != 2 || len(res1.Updated) != 0 || len(res1.Removed) != 0 {
		t.Fatalf("unexpected first reconcile result: %+v", res1)
	}

	c1Before, ok := r.Get("c1")
	if !ok {
		t.Fatalf("expected c1 to be registered")
	}

	res2 := r.Reconcile([]routespec.ClusterSpec{
		{ClusterID: "c1", Destinations: map[string]routespec.DestinationSpec{"d1": {Address: "https://h1-new/"}}},
	})
	if len(res2.Added) != 0 || len(res2.Updated) != 1 || len(res2.Removed) != 1 {
		t.Fatalf("unexpected second reconcile result: %+v", res2)
	}
	if res2.Removed[0] != "c2" {
		t.Fatalf("expected c2 to be removed, got %v", res2.Removed)
	}

	c1After, ok := r.Get("c1")
	if !ok {
		t.Fatalf("expected c1 to still be registered")
	}
	if c1Before != c1After {
		t.Fatalf("expected c1's ClusterState identity to survive reconciliation")
	}

	if _, ok := r.Get("c2"); ok {
		t.Fatalf("expected c2 to no longer be registered")
	}
}

func TestReconcileEmptyInEmptyOut(t *testing.T) {
	r := NewRegistry(transport.New(nil))
	res := r.Reconcile(nil)
	if len(res.Added)+len(res.Updated)+len(res.Removed) != 0 {
		t.Fatalf("expected no-op reconcile for empty input, got %+v", res)
	}
	if len(r.Snapshot()) != 0 {
		t.Fatalf("expected empty snapshot")
	}
}

func TestReconcileReusesTransportHandleWhenOptionsUnchanged(t *testing.T) {
	r := NewRegistry(transport.New(nil))
	spec := routespec.ClusterSpec{
		ClusterID:    "c1",
		Destinations: map[string]routespec.DestinationSpec{"d1": {Address: "https://h1/"}},
		HttpClient:   &routespec.HttpClientOptions{MaxIdleConnsPerHost: 10},
	}

	r.Reconcile([]routespec.ClusterSpec{spec})
	c1, _ := r.Get("c1")
	handleBefore := c1.HTTPHandle()

	r.Reconcile([]routespec.ClusterSpec{spec})
	handleAfter := c1.HTTPHandle()

	if handleBefore != handleAfter {
		t.Fatalf("expected the same transport handle to be reused when client options are unchanged")
	}
}
