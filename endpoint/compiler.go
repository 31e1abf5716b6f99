package endpoint

import (
	"strings"

	"github.com/zalando/routecore/clusterstate"
	"github.com/zalando/routecore/routespec"
)

// Convention is a user hook that runs after the core has built an Endpoint,
// in registration order, and may attach further Metadata.
type Convention func(*Endpoint)

// Compiler compiles RouteSpecs into Endpoints, running Conventions last.
type Compiler struct {
	conventions []Convention
}

// NewCompiler returns a Compiler that runs conventions, in order, after
// building each Endpoint's core fields.
func NewCompiler(conventions ...Convention) *Compiler {
	return &Compiler{conventions: append([]Convention(nil), conventions...)}
}

// Compile builds one Endpoint from route and its resolved cluster (nil if
// unresolved).
func (c *Compiler) Compile(route routespec.RouteSpec, cluster *clusterstate.ClusterState) *Endpoint {
	e := &Endpoint{
		Pattern:     defaultPattern(route.Match.Path),
		Order:       route.Order,
		DisplayName: route.RouteID,
		Route:       route,
		Cluster:     cluster,
	}

	if len(route.Match.Hosts) > 0 {
		e.Hosts = append([]string(nil), route.Match.Hosts...)
	}
	if len(route.Match.Headers) > 0 {
		e.Headers = append([]routespec.HeaderMatch(nil), route.Match.Headers...)
	}

	e.AuthorizationMarker, e.AuthorizationPolicyName = classifyPolicy(route.AuthorizationPolicy,
		routespec.PolicyDefault, PolicyReservedDefault,
		routespec.PolicyAnonymous, PolicyReservedAnonymous)

	e.CorsMarker, e.CorsPolicyName = classifyPolicy(route.CorsPolicy,
		routespec.PolicyDefault, PolicyReservedDefault,
		routespec.PolicyDisable, PolicyReservedDisable)

	e.AcceptsCorsPreflight = e.CorsMarker != PolicyAbsent
	if e.AcceptsCorsPreflight {
		e.PreflightMethods = append([]string(nil), route.Match.Methods...)
	}

	for _, convention := range c.conventions {
		convention(e)
	}

	return e
}

func classifyPolicy(name, reservedA string, markerA PolicyMarker, reservedB string, markerB PolicyMarker) (PolicyMarker, string) {
	if name == "" {
		return PolicyAbsent, ""
	}
	if strings.EqualFold(name, reservedA) {
		return markerA, ""
	}
	if strings.EqualFold(name, reservedB) {
		return markerB, ""
	}
	return PolicyNamed, name
}
