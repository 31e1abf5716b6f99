package endpoint

import (
	"testing"

	"github.com/zalando/routecore/pathtemplate"
	"github.com/zalando/routecore/routespec"
)

func TestCompileDefaultsPatternToCatchAll(t *testing.T) {
	c := NewCompiler()
	e := c.Compile(routespec.RouteSpec{RouteID: "r1"}, nil)
	if e.Pattern != pathtemplate.CatchAll {
		t.Fatalf("Pattern = %q, want %q", e.Pattern, pathtemplate.CatchAll)
	}
	if e.Cluster != nil {
		t.Fatalf("expected nil Cluster when unresolved")
	}
	if e.AcceptsCorsPreflight {
		t.Fatalf("expected no CORS preflight acceptance without a CorsPolicy")
	}
}

func TestCompileUsesExplicitPath(t *testing.T) {
	c := NewCompiler()
	e := c.Compile(routespec.RouteSpec{RouteID: "r1", Match: routespec.RouteMatch{Path: "/orders/{id}"}}, nil)
	if e.Pattern != "/orders/{id}" {
		t.Fatalf("Pattern = %q", e.Pattern)
	}
}

func TestCompileClassifiesReservedAuthorizationNames(t *testing.T) {
	c := NewCompiler()

	e := c.Compile(routespec.RouteSpec{RouteID: "r1", AuthorizationPolicy: "default"}, nil)
	if e.AuthorizationMarker != PolicyReservedDefault || e.AuthorizationPolicyName != "" {
		t.Fatalf("expected reserved default marker, got %v/%q", e.AuthorizationMarker, e.AuthorizationPolicyName)
	}

	e = c.Compile(routespec.RouteSpec{RouteID: "r1", AuthorizationPolicy: "Anonymous"}, nil)
	if e.AuthorizationMarker != PolicyReservedAnonymous {
		t.Fatalf("expected reserved anonymous marker, got %v", e.AuthorizationMarker)
	}

	e = c.Compile(routespec.RouteSpec{RouteID: "r1", AuthorizationPolicy: "custom-policy"}, nil)
	if e.AuthorizationMarker != PolicyNamed || e.AuthorizationPolicyName != "custom-policy" {
		t.Fatalf("expected named marker, got %v/%q", e.AuthorizationMarker, e.AuthorizationPolicyName)
	}
}

func TestCompileCorsPreflightOnlyWhenCorsPolicyPresent(t *testing.T) {
	c := NewCompiler()

	e := c.Compile(routespec.RouteSpec{
		RouteID:    "r1",
		CorsPolicy: "disable",
		Match:      routespec.RouteMatch{Methods: []string{"GET", "POST"}},
	}, nil)
	if !e.AcceptsCorsPreflight {
		t.Fatalf("expected AcceptsCorsPreflight for an explicit Disable policy")
	}
	if e.CorsMarker != PolicyReservedDisable {
		t.Fatalf("expected reserved disable marker, got %v", e.CorsMarker)
	}
	if len(e.PreflightMethods) != 2 {
		t.Fatalf("expected preflight methods to mirror Match.Methods, got %v", e.PreflightMethods)
	}
}

func TestCompileRunsConventionsLast(t *testing.T) {
	seen := ""
	convention := func(e *Endpoint) {
		seen = e.DisplayName
		if e.Metadata == nil {
			e.Metadata = map[string]any{}
		}
		e.Metadata["touched"] = true
	}
	c := NewCompiler(convention)
	e := c.Compile(routespec.RouteSpec{RouteID: "r1"}, nil)

	if seen != "r1" {
		t.Fatalf("expected convention to observe the compiled endpoint, got %q", seen)
	}
	if e.Metadata["touched"] != true {
		t.Fatalf("expected convention's metadata to survive")
	}
}

func TestCompileCopiesHostsAndHeadersDefensively(t *testing.T) {
	c := NewCompiler()
	route := routespec.RouteSpec{
		RouteID: "r1",
		Match: routespec.RouteMatch{
			Hosts:   []string{"example.com"},
			Headers: []routespec.HeaderMatch{{Name: "X", Mode: routespec.Exists}},
		},
	}
	e := c.Compile(route, nil)
	e.Hosts[0] = "mutated.example.com"

	if route.Match.Hosts[0] != "example.com" {
		t.Fatalf("expected compiling to copy Hosts rather than alias the route's slice")
	}
}
