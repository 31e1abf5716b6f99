package manager

import "sync/atomic"

// State is a value of the per-reload state machine.
type State int32

const (
	StateIdle State = iota
	StateFetching
	StateFiltering
	StateValidating
	StateFailed
	StateReconciling
	StateCompiling
	StatePublishing
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "Fetching"
	case StateFiltering:
		return "Filtering"
	case StateValidating:
		return "Validating"
	case StateFailed:
		return "Failed"
	case StateReconciling:
		return "Reconciling"
	case StateCompiling:
		return "Compiling"
	case StatePublishing:
		return "Publishing"
	default:
		return "Idle"
	}
}

type stateHolder struct {
	v atomic.Int32
}

func (h *stateHolder) set(s State) {
	h.v.Store(int32(s))
}

func (h *stateHolder) get() State {
	return State(h.v.Load())
}
