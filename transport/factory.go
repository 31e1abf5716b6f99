// Package transport implements an HTTP client factory and cache:
// transports are built from routespec.HttpClientOptions and keyed on the
// structural fingerprint of (cluster_id, options), so that reloads with
// unchanged options reuse the existing transport and reloads with
// changed options retire the old one only after a drain period.
package transport

import (
	"crypto/tls"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zalando/routecore/routespec"
)

// DrainPeriod is the delay between a handle being retired and its
// underlying connections being closed, giving in-flight requests a chance
// to finish.
var DrainPeriod = 5 * time.Second

type cacheEntry struct {
	handle   *Handle
	refCount int
}

// Factory builds and caches Handles. It is safe for concurrent use.
type Factory struct {
	log *logrus.Entry

	mu   sync.Mutex
	byFP map[uint64]*cacheEntry
}

// New returns a Factory. log may be nil, in which case an entry on the
// standard logrus logger is used.
func New(log *logrus.Entry) *Factory {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Factory{log: log, byFP: make(map[uint64]*cacheEntry)}
}

// Acquire returns a Handle for clusterID/options. If previous is non-nil
// and its fingerprint matches the new options, previous is returned
// unchanged (no new transport is built, no disposal is scheduled). If
// previous is non-nil but its fingerprint does not match, a new handle is
// constructed and previous is scheduled for drained disposal via Release.
func (f *Factory) Acquire(clusterID string, options routespec.HttpClientOptions, previous *Handle) *Handle {
	fp := options.Fingerprint(clusterID)

	if previous != nil && previous.Fingerprint() == fp {
		return previous
	}

	f.mu.Lock()
	entry, ok := f.byFP[fp]
	if !ok {
		entry = &cacheEntry{handle: newHandle(fp, buildRoundTripper(options))}
		f.byFP[fp] = entry
	}
	entry.refCount++
	f.mu.Unlock()

	if previous != nil {
		f.Release(previous)
	}

	return entry.handle
}

// Release drops one reference to handle. When the last reference is
// dropped, the handle is removed from the cache and retired at once: no
// new Borrow succeeds, and once in-flight borrows drain (checked every
// DrainPeriod, starting one DrainPeriod after retirement), its idle
// connections are closed.
func (f *Factory) Release(handle *Handle) {
	f.mu.Lock()
	entry, ok := f.byFP[handle.fingerprint]
	if !ok {
		f.mu.Unlock()
		return
	}
	entry.refCount--
	drop := entry.refCount <= 0
	if drop {
		delete(f.byFP, handle.fingerprint)
	}
	f.mu.Unlock()

	if drop {
		handle.markRetired()
		go f.drain(handle)
	}
}

func (f *Factory) drain(handle *Handle) {
	for {
		time.Sleep(DrainPeriod)
		if handle.idle() {
			break
		}
	}
	handle.closeIdleConnections()
	f.log.WithField("fingerprint", handle.fingerprint).Debug("transport handle disposed")
}

func buildRoundTripper(o routespec.HttpClientOptions) http.RoundTripper {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: o.DangerousAcceptAnyServerCertificate,
		MinVersion:         minTLSVersion(o.SSLProtocols),
	}
	if o.ClientCertificate != nil {
		// The certificate material itself is resolved by the host; the
		// core only threads the opaque handle's identity through so the
		// fingerprint reflects it. A real deployment would populate
		// tlsConfig.Certificates here via a host-supplied loader.
		_ = o.ClientCertificate.ID
	}

	maxConnsPerHost := 0
	if o.MaxConnectionsPerServer != nil {
		maxConnsPerHost = *o.MaxConnectionsPerServer
	}

	connectTimeout := 30 * time.Second
	if o.ConnectTimeoutMs > 0 {
		connectTimeout = time.Duration(o.ConnectTimeoutMs) * time.Millisecond
	}

	return &http.Transport{
		TLSClientConfig:     tlsConfig,
		MaxConnsPerHost:     maxConnsPerHost,
		MaxIdleConnsPerHost: o.MaxIdleConnsPerHost,
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
	}
}

func minTLSVersion(protocols routespec.SSLProtocols) uint16 {
	switch {
	case protocols&routespec.SSLProtocolTLS10 != 0:
		return tls.VersionTLS10
	case protocols&routespec.SSLProtocolTLS11 != 0:
		return tls.VersionTLS11
	case protocols&routespec.SSLProtocolTLS13 != 0 && protocols&routespec.SSLProtocolTLS12 == 0:
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
