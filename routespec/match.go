package routespec

// HeaderMatchMode is the comparison a HeaderMatch performs against an
// incoming request header.
type HeaderMatchMode string

const (
	ExactHeader  HeaderMatchMode = "ExactHeader"
	HeaderPrefix HeaderMatchMode = "HeaderPrefix"
	Exists       HeaderMatchMode = "Exists"
	Contains     HeaderMatchMode = "Contains"
	NotContains  HeaderMatchMode = "NotContains"
)

// HeaderMatch is a single header condition attached to a RouteMatch.
//
// Values is required to be non-empty for every Mode except Exists, where it
// must be empty.
type HeaderMatch struct {
	Name            string
	Mode            HeaderMatchMode
	Values          []string
	IsCaseSensitive bool
}

func (h HeaderMatch) equal(o HeaderMatch) bool {
	if h.Name != o.Name || h.Mode != o.Mode || h.IsCaseSensitive != o.IsCaseSensitive {
		return false
	}
	return stringSliceEqual(h.Values, o.Values)
}

// RouteMatch describes the conditions under which a route applies to an
// incoming request. Hosts and Path conditions are ORed with the respective
// wildcard/prefix semantics; Methods and Headers are ANDed.
type RouteMatch struct {
	// Hosts are host patterns, each an ASCII hostname optionally prefixed
	// with "*." and optionally suffixed with ":port". May be empty.
	Hosts []string

	// Path is a route-pattern-grammar template, e.g. "/orders/{id}". Empty
	// means unspecified; the endpoint compiler substitutes the catch-all
	// pattern in that case.
	Path string

	// Methods are uppercase HTTP verbs. May be empty (matches any method).
	Methods []string

	Headers []HeaderMatch
}

func (m RouteMatch) equal(o RouteMatch) bool {
	if m.Path != o.Path || !stringSliceEqual(m.Hosts, o.Hosts) || !stringSliceEqual(m.Methods, o.Methods) {
		return false
	}
	if len(m.Headers) != len(o.Headers) {
		return false
	}
	for i := range m.Headers {
		if !m.Headers[i].equal(o.Headers[i]) {
			return false
		}
	}
	return true
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
