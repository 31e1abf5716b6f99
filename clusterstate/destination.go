package clusterstate

import (
	"sync/atomic"
	"time"

	"github.com/zalando/routecore/routespec"
)

// Health is the current health status of one destination.
type Health int32

const (
	HealthUnknown Health = iota
	HealthHealthy
	HealthUnhealthy
)

func (h Health) String() string {
	switch h {
	case HealthHealthy:
		return "Healthy"
	case HealthUnhealthy:
		return "Unhealthy"
	default:
		return "Unknown"
	}
}

// DestinationState is the live runtime record for one destination within a
// ClusterState. Its Health and LastProbeTime are mutated concurrently by
// active/passive health trackers (external to the core) and read by the
// load balancer on every decision, hence the atomics.
type DestinationState struct {
	id   string
	spec atomic.Pointer[routespec.DestinationSpec]

	health    atomic.Int32
	lastProbe atomic.Int64 // unix nanos; 0 means never probed
}

func newDestinationState(id string, spec routespec.DestinationSpec) *DestinationState {
	d := &DestinationState{id: id}
	d.spec.Store(&spec)
	d.health.Store(int32(HealthUnknown))
	return d
}

// ID returns the destination id this state was constructed with (original
// casing, not normalized).
func (d *DestinationState) ID() string {
	return d.id
}

// Spec returns the currently applied DestinationSpec. The address never
// changes without the DestinationState itself being replaced; the other
// fields (metadata, health-probe URL) can be refreshed in place.
func (d *DestinationState) Spec() routespec.DestinationSpec {
	return *d.spec.Load()
}

func (d *DestinationState) setSpec(spec routespec.DestinationSpec) {
	d.spec.Store(&spec)
}

func (d *DestinationState) Health() Health {
	return Health(d.health.Load())
}

func (d *DestinationState) SetHealth(h Health) {
	d.health.Store(int32(h))
}

func (d *DestinationState) LastProbeTime() time.Time {
	ns := d.lastProbe.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (d *DestinationState) SetLastProbeTime(t time.Time) {
	d.lastProbe.Store(t.UnixNano())
}
