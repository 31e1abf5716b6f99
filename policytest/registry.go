// Package policytest provides a scriptable policy.Registry for tests,
// following the filtertest/loggingtest/proxytest naming convention used
// for test-helper packages elsewhere in this module.
package policytest

import "sort"

// Registry is a policy.Registry whose registered names are set up by a
// test. The zero value has nothing registered.
type Registry struct {
	Authorization      map[string]bool
	Cors               map[string]bool
	LoadBalancing      map[string]bool
	ActiveHealth       map[string]bool
	PassiveHealth      map[string]bool
	AffinityFailure    map[string]bool
	TransformFactories map[string]bool // keyed by a canonical join of sorted arg keys
}

func (r *Registry) IsAuthorizationPolicyRegistered(name string) bool { return r.Authorization[name] }
func (r *Registry) IsCorsPolicyRegistered(name string) bool          { return r.Cors[name] }
func (r *Registry) IsLoadBalancingPolicyRegistered(name string) bool { return r.LoadBalancing[name] }
func (r *Registry) IsActiveHealthPolicyRegistered(name string) bool  { return r.ActiveHealth[name] }
func (r *Registry) IsPassiveHealthPolicyRegistered(name string) bool { return r.PassiveHealth[name] }
func (r *Registry) IsAffinityFailurePolicyRegistered(name string) bool {
	return r.AffinityFailure[name]
}

func (r *Registry) IsTransformFactoryFor(keys []string) bool {
	if len(r.TransformFactories) == 0 {
		// By default any transform is accepted so tests that don't care
		// about transform validation don't need to wire this up.
		return true
	}
	return r.TransformFactories[joinKeys(keys)]
}

func joinKeys(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	out := ""
	for i, k := range sorted {
		if i > 0 {
			out += ","
		}
		out += k
	}
	return out
}
