package clusterstate

import "sort"

// DynamicState is an immutable per-cluster snapshot of destinations and
// their health, replaced atomically whenever reconciliation applies a
// changed ClusterSpec. AvailableDestinations reflects health as it was when
// the snapshot was built; DestinationState.SetHealth does not rebuild it.
type DynamicState struct {
	AllDestinations       []*DestinationState
	AvailableDestinations []*DestinationState
}

// buildDynamicState produces a DynamicState from the current destination
// map, sorted by lower-cased id for deterministic output across reloads
// that don't otherwise change anything.
func buildDynamicState(byNormalizedID map[string]*DestinationState) *DynamicState {
	ids := make([]string, 0, len(byNormalizedID))
	for id := range byNormalizedID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]*DestinationState, 0, len(ids))
	available := make([]*DestinationState, 0, len(ids))
	for _, id := range ids {
		d := byNormalizedID[id]
		all = append(all, d)
		if d.Health() != HealthUnhealthy {
			available = append(available, d)
		}
	}

	return &DynamicState{AllDestinations: all, AvailableDestinations: available}
}
