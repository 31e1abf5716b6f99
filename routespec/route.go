package routespec

// Reserved policy names the core interprets specially. A host may not also
// register an authorization or CORS policy under these names without the
// validator flagging a conflict.
const (
	PolicyDefault   = "Default"
	PolicyAnonymous = "Anonymous"
	PolicyDisable   = "Disable"
)

// RouteSpec is an immutable description of one routable path, as supplied by
// a config provider. Two RouteSpec values compare equal (Equal) when every
// field matches; callers must not mutate a RouteSpec in place once it has
// been handed to a Chain or Validator.
type RouteSpec struct {
	// RouteID is non-empty and unique within one configuration generation.
	RouteID string

	// ClusterID names the cluster this route forwards to. May be empty,
	// in which case the compiled endpoint carries no cluster reference.
	ClusterID string

	Match RouteMatch

	// Order controls matcher precedence among overlapping routes. Absent
	// is represented by a nil pointer.
	Order *int

	// AuthorizationPolicy, if set, is either a reserved name (PolicyDefault,
	// PolicyAnonymous, case-insensitive) or a name registered with the
	// host's policy.Registry.
	AuthorizationPolicy string

	// CorsPolicy, if set, is either a reserved name (PolicyDefault,
	// PolicyDisable, case-insensitive) or a registered name.
	CorsPolicy string

	Metadata map[string]string

	// Transforms is an ordered sequence of transform-factory argument
	// maps, validated against the host's transform-factory registry but
	// otherwise opaque to the core.
	Transforms []map[string]string
}

// Equal reports whether r and o describe the same route, field for field.
func (r RouteSpec) Equal(o RouteSpec) bool {
	if r.RouteID != o.RouteID || r.ClusterID != o.ClusterID ||
		r.AuthorizationPolicy != o.AuthorizationPolicy || r.CorsPolicy != o.CorsPolicy {
		return false
	}
	if !intPtrEqual(r.Order, o.Order) {
		return false
	}
	if !r.Match.equal(o.Match) {
		return false
	}
	if !stringMapEqual(r.Metadata, o.Metadata) {
		return false
	}
	if len(r.Transforms) != len(o.Transforms) {
		return false
	}
	for i := range r.Transforms {
		if !stringMapEqual(r.Transforms[i], o.Transforms[i]) {
			return false
		}
	}
	return true
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringMapEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
