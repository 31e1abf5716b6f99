package validation

import (
	"strings"
	"testing"

	"github.com/zalando/routecore/policytest"
	"github.com/zalando/routecore/routespec"
)

func TestValidateClusterUnsupportedHttpVersion(t *testing.T) {
	cluster := routespec.ClusterSpec{
		ClusterID: "c1",
		Destinations: map[string]routespec.DestinationSpec{
			"d1": {Address: "https://host/"},
		},
		HttpRequest: &routespec.HttpRequestOptions{Version: &routespec.HttpVersion{Major: 1, Minor: 2}},
	}
	errs := ValidateCluster(cluster, &policytest.Registry{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
	}
	if !strings.HasPrefix(errs[0].Message, "Outgoing request version") {
		t.Fatalf("message = %q, want prefix %q", errs[0].Message, "Outgoing request version")
	}
}

func TestValidateClusterHappyPath(t *testing.T) {
	cluster := routespec.ClusterSpec{
		ClusterID: "c1",
		Destinations: map[string]routespec.DestinationSpec{
			"d1": {Address: "https://host/"},
		},
	}
	errs := ValidateCluster(cluster, &policytest.Registry{})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateClusterUnregisteredLoadBalancingPolicy(t *testing.T) {
	cluster := routespec.ClusterSpec{ClusterID: "c1", LoadBalancingPolicy: "custom"}
	errs := ValidateCluster(cluster, &policytest.Registry{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
}

func TestValidateClusterNegativeHealthCheckIntervalsRejected(t *testing.T) {
	cluster := routespec.ClusterSpec{
		ClusterID: "c1",
		HealthCheck: &routespec.HealthCheckOptions{
			Active: routespec.ActiveHealthCheckOptions{Enabled: true, Interval: -1},
		},
	}
	errs := ValidateCluster(cluster, &policytest.Registry{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error for negative interval, got %v", errs)
	}
}

func TestValidateClusterDuplicateDestinationIDsCaseInsensitive(t *testing.T) {
	cluster := routespec.ClusterSpec{
		ClusterID: "c1",
		Destinations: map[string]routespec.DestinationSpec{
			"D1": {Address: "https://host:1/"},
			"d1": {Address: "https://host:2/"},
		},
	}
	errs := ValidateCluster(cluster, &policytest.Registry{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one duplicate-destination error, got %v", errs)
	}
}

func TestValidateClusterTotalityNeverPanics(t *testing.T) {
	cluster := routespec.ClusterSpec{}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("ValidateCluster panicked: %v", r)
		}
	}()
	ValidateCluster(cluster, &policytest.Registry{})
}
