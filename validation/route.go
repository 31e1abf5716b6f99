package validation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/zalando/routecore/pathtemplate"
	"github.com/zalando/routecore/policy"
	"github.com/zalando/routecore/routespec"
)

var (
	errEmptyHost   = errors.New("host must not be empty")
	errWildcardDot = errors.New("wildcard prefix '*.' must not be followed by another '.'")
	errBadPort     = errors.New("port must be between 1 and 65535")
	errIDNALabel   = errors.New("IDN A-label hosts are not accepted; convert to U-label first")
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var validMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"HEAD": true, "OPTIONS": true, "PATCH": true, "TRACE": true,
}

// ValidateRoute checks route against the route grammar and the reserved and
// host-registered policy names, accumulating every failure it finds.
func ValidateRoute(route routespec.RouteSpec, registry policy.Registry) []*ValidationError {
	var errs []*ValidationError

	if route.RouteID == "" {
		errs = append(errs, routeErr("", "Route id must not be empty."))
	}

	errs = append(errs, validateMatch(route, registry)...)
	errs = append(errs, validateMethods(route)...)
	errs = append(errs, validateHeaders(route)...)
	errs = append(errs, validatePolicyRef(route.RouteID, "authorization", route.AuthorizationPolicy,
		[]string{routespec.PolicyDefault, routespec.PolicyAnonymous}, registry.IsAuthorizationPolicyRegistered)...)
	errs = append(errs, validatePolicyRef(route.RouteID, "CORS", route.CorsPolicy,
		[]string{routespec.PolicyDefault, routespec.PolicyDisable}, registry.IsCorsPolicyRegistered)...)
	errs = append(errs, validateTransforms(route, registry)...)

	return errs
}

func validateMatch(route routespec.RouteSpec, _ policy.Registry) []*ValidationError {
	var errs []*ValidationError

	nonEmptyHosts := 0
	for _, h := range route.Match.Hosts {
		if strings.TrimSpace(h) != "" {
			nonEmptyHosts++
		}
	}

	if nonEmptyHosts == 0 && route.Match.Path == "" {
		errs = append(errs, routeErr(route.RouteID,
			"Route '%s' requires Hosts or Path specified. Set the Path to '%s' to match all requests.",
			route.RouteID, pathtemplate.CatchAll))
	}

	for _, h := range route.Match.Hosts {
		if err := validateHost(h); err != nil {
			errs = append(errs, routeErr(route.RouteID, "Invalid host '%s' for route '%s': %s", h, route.RouteID, err))
		}
	}

	if route.Match.Path != "" {
		if err := pathtemplate.Validate(route.Match.Path); err != nil {
			errs = append(errs, routeErr(route.RouteID, "Invalid path '%s' for route '%s'", route.Match.Path, route.RouteID))
		}
	}

	return errs
}

func validateHost(host string) error {
	if strings.TrimSpace(host) == "" {
		return errEmptyHost
	}

	h := host
	if strings.HasPrefix(h, "*.") {
		rest := h[2:]
		if strings.HasPrefix(rest, ".") {
			return errWildcardDot
		}
		h = rest
	}

	if idx := strings.LastIndex(h, ":"); idx >= 0 {
		portStr := h[idx+1:]
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return errBadPort
		}
		h = h[:idx]
	}

	if h == "" {
		return errEmptyHost
	}

	for _, label := range strings.Split(h, ".") {
		if strings.HasPrefix(strings.ToLower(label), "xn--") {
			return errIDNALabel
		}
	}

	return nil
}

func validateMethods(route routespec.RouteSpec) []*ValidationError {
	var errs []*ValidationError
	seen := make(map[string]bool, len(route.Match.Methods))
	for _, m := range route.Match.Methods {
		norm := strings.ToUpper(m)
		if !validMethods[norm] {
			errs = append(errs, routeErr(route.RouteID, "Unsupported HTTP method '%s' for route '%s'.", m, route.RouteID))
			continue
		}
		if seen[norm] {
			errs = append(errs, routeErr(route.RouteID, "Duplicate HTTP method '%s' for route '%s'.", norm, route.RouteID))
			continue
		}
		seen[norm] = true
	}
	return errs
}

func validateHeaders(route routespec.RouteSpec) []*ValidationError {
	var errs []*ValidationError
	for _, h := range route.Match.Headers {
		if h.Name == "" {
			errs = append(errs, routeErr(route.RouteID, "Header match on route '%s' requires a non-empty name.", route.RouteID))
			continue
		}
		if h.Mode == routespec.Exists {
			if len(h.Values) != 0 {
				errs = append(errs, routeErr(route.RouteID, "Header match '%s' on route '%s' using Exists must not specify values.", h.Name, route.RouteID))
			}
		} else if len(h.Values) == 0 {
			errs = append(errs, routeErr(route.RouteID, "Header match '%s' on route '%s' requires at least one value.", h.Name, route.RouteID))
		}
	}
	return errs
}

func validatePolicyRef(routeID, kind, name string, reserved []string, isRegistered func(string) bool) []*ValidationError {
	if name == "" {
		return nil
	}

	for _, r := range reserved {
		if strings.EqualFold(name, r) {
			if isRegistered(name) {
				return []*ValidationError{routeErr(routeID,
					"The route '%s' has a reserved %s policy name '%s' that conflicts with a registered policy.",
					routeID, kind, name)}
			}
			return nil
		}
	}

	if !isRegistered(name) {
		return []*ValidationError{routeErr(routeID, "%s policy '%s' not found for route '%s'.", capitalize(kind), name, routeID)}
	}

	return nil
}

func validateTransforms(route routespec.RouteSpec, registry policy.Registry) []*ValidationError {
	var errs []*ValidationError
	for _, t := range route.Transforms {
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		if !registry.IsTransformFactoryFor(keys) {
			errs = append(errs, routeErr(route.RouteID, "No transform factory registered for route '%s' with keys %v.", route.RouteID, keys))
		}
	}
	return errs
}
