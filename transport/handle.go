package transport

import (
	"net/http"
	"sync"
	"sync/atomic"
)

// Handle is a reference-counted HTTP transport. A ClusterState holds one
// owning reference (acquired from Factory.Acquire); request-handling code
// borrows it per in-flight request via Borrow/release so that a handle
// retired by Factory.Release can wait out in-flight work before the
// underlying *http.Transport's idle connections are closed.
type Handle struct {
	RoundTripper http.RoundTripper

	fingerprint uint64
	inflight    atomic.Int64

	mu      sync.Mutex
	retired bool
}

func newHandle(fingerprint uint64, rt http.RoundTripper) *Handle {
	return &Handle{RoundTripper: rt, fingerprint: fingerprint}
}

// Fingerprint returns the structural fingerprint this handle was built
// from, for Factory.Acquire's reuse check.
func (h *Handle) Fingerprint() uint64 {
	return h.fingerprint
}

// Borrow registers one in-flight use of the handle. It returns false if the
// handle has already been retired; callers must not round-trip in that
// case. Every successful Borrow must be matched with exactly one call to
// the returned release function.
func (h *Handle) Borrow() (release func(), ok bool) {
	h.mu.Lock()
	if h.retired {
		h.mu.Unlock()
		return nil, false
	}
	h.mu.Unlock()

	h.inflight.Add(1)
	return func() { h.inflight.Add(-1) }, true
}

func (h *Handle) markRetired() {
	h.mu.Lock()
	h.retired = true
	h.mu.Unlock()
}

func (h *Handle) idle() bool {
	return h.inflight.Load() == 0
}

func (h *Handle) closeIdleConnections() {
	if t, ok := h.RoundTripper.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}
