// Package policy declares the boolean lookup contract the validator queries
// when it encounters a named policy or transform factory reference. The
// host implements Registry; the core never evaluates a policy itself.
package policy

// Registry answers whether a named policy of a given kind is registered with
// the host. All methods are synchronous.
type Registry interface {
	IsAuthorizationPolicyRegistered(name string) bool
	IsCorsPolicyRegistered(name string) bool
	IsLoadBalancingPolicyRegistered(name string) bool
	IsActiveHealthPolicyRegistered(name string) bool
	IsPassiveHealthPolicyRegistered(name string) bool
	IsAffinityFailurePolicyRegistered(name string) bool

	// IsTransformFactoryFor reports whether a transform factory exists
	// that can handle a transform described by the given argument keys.
	IsTransformFactoryFor(keys []string) bool
}
