package validation

import (
	"strings"

	"github.com/zalando/routecore/policy"
	"github.com/zalando/routecore/routespec"
)

// ValidateCluster checks cluster against the policy registry and internal
// consistency rules, accumulating every failure it finds.
func ValidateCluster(cluster routespec.ClusterSpec, registry policy.Registry) []*ValidationError {
	var errs []*ValidationError

	if cluster.ClusterID == "" {
		errs = append(errs, clusterErr("", "Cluster id must not be empty."))
	}

	if cluster.LoadBalancingPolicy != "" && !registry.IsLoadBalancingPolicyRegistered(cluster.LoadBalancingPolicy) {
		errs = append(errs, clusterErr(cluster.ClusterID,
			"Load balancing policy '%s' not found for cluster '%s'.", cluster.LoadBalancingPolicy, cluster.ClusterID))
	}

	if aff := cluster.SessionAffinity; aff != nil && aff.Enabled && aff.FailurePolicy != "" {
		if !registry.IsAffinityFailurePolicyRegistered(aff.FailurePolicy) {
			errs = append(errs, clusterErr(cluster.ClusterID,
				"Affinity failure policy '%s' not found for cluster '%s'.", aff.FailurePolicy, cluster.ClusterID))
		}
	}

	if hc := cluster.HealthCheck; hc != nil {
		errs = append(errs, validateHealthCheck(cluster.ClusterID, hc, registry)...)
	}

	if req := cluster.HttpRequest; req != nil && req.Version != nil {
		if !req.Version.IsSupported() {
			errs = append(errs, clusterErr(cluster.ClusterID,
				"Outgoing request version '%s' is not any of supported HTTP versions (1.0, 1.1 and 2).", req.Version.String()))
		}
	}

	errs = append(errs, validateDestinationIDs(cluster)...)

	return errs
}

func validateHealthCheck(clusterID string, hc *routespec.HealthCheckOptions, registry policy.Registry) []*ValidationError {
	var errs []*ValidationError

	if hc.Active.Interval < 0 {
		errs = append(errs, clusterErr(clusterID, "Active health check interval for cluster '%s' must be >= 0.", clusterID))
	}
	if hc.Active.Timeout < 0 {
		errs = append(errs, clusterErr(clusterID, "Active health check timeout for cluster '%s' must be >= 0.", clusterID))
	}
	if hc.Active.Enabled && hc.Active.Policy != "" && !registry.IsActiveHealthPolicyRegistered(hc.Active.Policy) {
		errs = append(errs, clusterErr(clusterID, "Active health check policy '%s' not found for cluster '%s'.", hc.Active.Policy, clusterID))
	}

	if hc.Passive.ReactivationPeriod < 0 {
		errs = append(errs, clusterErr(clusterID, "Passive health check reactivation period for cluster '%s' must be >= 0.", clusterID))
	}
	if hc.Passive.Enabled && hc.Passive.Policy != "" && !registry.IsPassiveHealthPolicyRegistered(hc.Passive.Policy) {
		errs = append(errs, clusterErr(clusterID, "Passive health check policy '%s' not found for cluster '%s'.", hc.Passive.Policy, clusterID))
	}

	return errs
}

func validateDestinationIDs(cluster routespec.ClusterSpec) []*ValidationError {
	var errs []*ValidationError
	seen := make(map[string]bool, len(cluster.Destinations))
	for id := range cluster.Destinations {
		norm := strings.ToLower(id)
		if seen[norm] {
			errs = append(errs, clusterErr(cluster.ClusterID,
				"Duplicate destination id '%s' (case-insensitive) in cluster '%s'.", id, cluster.ClusterID))
			continue
		}
		seen[norm] = true
	}
	return errs
}
