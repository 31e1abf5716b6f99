package validation

import (
	"testing"

	"github.com/zalando/routecore/policytest"
	"github.com/zalando/routecore/routespec"
)

func TestValidateRouteMissingHostsAndPath(t *testing.T) {
	route := routespec.RouteSpec{RouteID: "route1"}
	errs := ValidateRoute(route, &policytest.Registry{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
	}
	want := "Route 'route1' requires Hosts or Path specified. Set the Path to '/{**catchall}' to match all requests."
	if errs[0].Message != want {
		t.Fatalf("message = %q, want %q", errs[0].Message, want)
	}
}

func TestValidateRouteHappyPath(t *testing.T) {
	route := routespec.RouteSpec{RouteID: "r1", ClusterID: "c1", Match: routespec.RouteMatch{Path: "/"}}
	errs := ValidateRoute(route, &policytest.Registry{})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRouteRejectsIDNALabel(t *testing.T) {
	route := routespec.RouteSpec{RouteID: "r1", Match: routespec.RouteMatch{Hosts: []string{"xn--caf-dma.example.com"}}}
	errs := ValidateRoute(route, &policytest.Registry{})
	if len(errs) == 0 {
		t.Fatalf("expected IDN A-label host to be rejected")
	}
}

func TestValidateRouteWildcardHost(t *testing.T) {
	route := routespec.RouteSpec{RouteID: "r1", Match: routespec.RouteMatch{Hosts: []string{"*.example.com:8080"}}}
	errs := ValidateRoute(route, &policytest.Registry{})
	if len(errs) != 0 {
		t.Fatalf("expected valid wildcard host with port, got %v", errs)
	}
}

func TestValidateRouteBadPort(t *testing.T) {
	route := routespec.RouteSpec{RouteID: "r1", Match: routespec.RouteMatch{Hosts: []string{"example.com:99999"}}}
	errs := ValidateRoute(route, &policytest.Registry{})
	if len(errs) == 0 {
		t.Fatalf("expected invalid port to be rejected")
	}
}

func TestValidateRouteDuplicateMethods(t *testing.T) {
	route := routespec.RouteSpec{
		RouteID: "r1",
		Match:   routespec.RouteMatch{Path: "/", Methods: []string{"get", "GET"}},
	}
	errs := ValidateRoute(route, &policytest.Registry{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one duplicate-method error, got %v", errs)
	}
}

func TestValidateRouteReservedAuthorizationConflict(t *testing.T) {
	registry := &policytest.Registry{Authorization: map[string]bool{"default": true}}
	route := routespec.RouteSpec{RouteID: "r1", Match: routespec.RouteMatch{Path: "/"}, AuthorizationPolicy: "default"}
	errs := ValidateRoute(route, registry)
	if len(errs) != 1 {
		t.Fatalf("expected a reserved-name conflict error, got %v", errs)
	}
}

func TestValidateRouteUnregisteredNamedPolicy(t *testing.T) {
	route := routespec.RouteSpec{RouteID: "r1", Match: routespec.RouteMatch{Path: "/"}, AuthorizationPolicy: "custom"}
	errs := ValidateRoute(route, &policytest.Registry{})
	if len(errs) != 1 {
		t.Fatalf("expected a not-found error for unregistered policy, got %v", errs)
	}
}

func TestValidateRouteRegisteredNamedPolicy(t *testing.T) {
	registry := &policytest.Registry{Authorization: map[string]bool{"custom": true}}
	route := routespec.RouteSpec{RouteID: "r1", Match: routespec.RouteMatch{Path: "/"}, AuthorizationPolicy: "custom"}
	errs := ValidateRoute(route, registry)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRouteHeaderExistsMustNotHaveValues(t *testing.T) {
	route := routespec.RouteSpec{
		RouteID: "r1",
		Match: routespec.RouteMatch{
			Path:    "/",
			Headers: []routespec.HeaderMatch{{Name: "X", Mode: routespec.Exists, Values: []string{"1"}}},
		},
	}
	errs := ValidateRoute(route, &policytest.Registry{})
	if len(errs) != 1 {
		t.Fatalf("expected an error for Exists mode with values, got %v", errs)
	}
}

func TestValidateRouteTotalityNeverPanics(t *testing.T) {
	route := routespec.RouteSpec{}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("ValidateRoute panicked: %v", r)
		}
	}()
	ValidateRoute(route, &policytest.Registry{})
}
