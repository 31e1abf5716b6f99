// Package endpoint implements the compiler that turns one validated,
// filtered RouteSpec plus its resolved (possibly nil)
// *clusterstate.ClusterState into an opaque Endpoint record for the
// external request matcher to consume.
package endpoint

import (
	"github.com/zalando/routecore/clusterstate"
	"github.com/zalando/routecore/pathtemplate"
	"github.com/zalando/routecore/routespec"
)

// PolicyMarker classifies how a route's authorization/CORS policy
// reference resolved during compilation.
type PolicyMarker int

const (
	// PolicyAbsent means the route specified no policy name at all.
	PolicyAbsent PolicyMarker = iota
	// PolicyReservedDefault marks the reserved "Default" name.
	PolicyReservedDefault
	// PolicyReservedAnonymous marks the reserved "Anonymous" authorization
	// name (meaningless for CORS, where it never appears).
	PolicyReservedAnonymous
	// PolicyReservedDisable marks the reserved "Disable" CORS name
	// (meaningless for authorization, where it never appears).
	PolicyReservedDisable
	// PolicyNamed marks a host-registered policy referenced by name.
	PolicyNamed
)

// Endpoint is the opaque record the core emits for each compiled route. The
// external matcher reads Pattern/Order/DisplayName to build its lookup
// structure and treats everything else as attached metadata.
type Endpoint struct {
	// Pattern is the route-pattern-grammar path this endpoint matches;
	// defaults to pathtemplate.CatchAll when the route specified none.
	Pattern string

	// Order controls matcher precedence; nil means unspecified.
	Order *int

	// DisplayName equals the originating RouteSpec.RouteID.
	DisplayName string

	// Route is the original, validated, filtered RouteSpec this endpoint
	// was compiled from.
	Route routespec.RouteSpec

	// Hosts mirrors Route.Match.Hosts; nil when empty.
	Hosts []string

	// Headers mirrors Route.Match.Headers; nil when empty.
	Headers []routespec.HeaderMatch

	// Cluster is the resolved cluster runtime state, or nil if Route's
	// cluster_id did not resolve to a live cluster: the forwarding engine
	// is responsible for failing such requests with 503.
	Cluster *clusterstate.ClusterState

	AuthorizationMarker     PolicyMarker
	AuthorizationPolicyName string

	CorsMarker     PolicyMarker
	CorsPolicyName string

	// AcceptsCorsPreflight is true iff CorsMarker != PolicyAbsent: even an
	// explicit "Disable" still marks the route as CORS-aware so the
	// external matcher can short-circuit preflight requests for it.
	AcceptsCorsPreflight bool

	// PreflightMethods is the set of methods that should be advertised in
	// a CORS preflight response for this route; populated only when
	// AcceptsCorsPreflight is true.
	PreflightMethods []string

	// Metadata carries convention-attached extras; nil until a Convention
	// adds something.
	Metadata map[string]any
}

func defaultPattern(path string) string {
	if path == "" {
		return pathtemplate.CatchAll
	}
	return path
}
