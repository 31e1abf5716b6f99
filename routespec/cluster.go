package routespec

import (
	"strconv"
	"strings"
)

// DestinationSpec is one forwarding target within a cluster.
type DestinationSpec struct {
	// Address is the absolute URL requests are forwarded to.
	Address string

	// Health is an optional explicit health-probe URL; when empty, an
	// active health checker falls back to Address.
	Health string

	Metadata map[string]string
}

func (d DestinationSpec) equal(o DestinationSpec) bool {
	return d.Address == o.Address && d.Health == o.Health && stringMapEqual(d.Metadata, o.Metadata)
}

// ActiveHealthCheckOptions configures the active health-probe scheduler
// (the scheduler itself lives outside the core; this only carries its
// configuration).
type ActiveHealthCheckOptions struct {
	Enabled  bool
	Interval float64 // seconds, >= 0
	Timeout  float64 // seconds, >= 0
	Policy   string
	Path     string
}

// PassiveHealthCheckOptions configures passive (request-outcome-driven)
// health tracking.
type PassiveHealthCheckOptions struct {
	Enabled            bool
	Policy             string
	ReactivationPeriod float64 // seconds, >= 0
}

// HealthCheckOptions bundles the active and passive health-check
// configuration for a cluster.
type HealthCheckOptions struct {
	Active  ActiveHealthCheckOptions
	Passive PassiveHealthCheckOptions
}

// SessionAffinityOptions configures sticky-session routing for a cluster.
type SessionAffinityOptions struct {
	Enabled bool
	// Policy names the affinity implementation (e.g. cookie-based).
	Policy string
	// FailurePolicy, if Enabled, must be registered as an affinity
	// failure policy.
	FailurePolicy string
	AffinityKeyName string
}

// ClientCertificate is an opaque handle to a client certificate used for
// mutual TLS to destinations. Equality is by ID; the core never inspects
// the certificate material itself.
type ClientCertificate struct {
	ID string
}

// SSLProtocols is a bitset of permitted TLS protocol versions.
type SSLProtocols uint

const (
	SSLProtocolTLS10 SSLProtocols = 1 << iota
	SSLProtocolTLS11
	SSLProtocolTLS12
	SSLProtocolTLS13
)

// RequestHeaderEncoding names how outgoing request header values are
// encoded on the wire (e.g. "Latin1", "UTF8"). Absent means the transport's
// default.
type RequestHeaderEncoding string

// HttpClientOptions configures the transport used to reach a cluster's
// destinations. Structural equality (Fingerprint) defines the transport
// cache key.
type HttpClientOptions struct {
	SSLProtocols                        SSLProtocols
	MaxConnectionsPerServer             *int
	ClientCertificate                   *ClientCertificate
	DangerousAcceptAnyServerCertificate bool
	RequestHeaderEncoding               RequestHeaderEncoding

	// Additional transport knobs mirroring net/http.Transport fields the
	// corpus commonly exposes.
	MaxIdleConnsPerHost int
	ConnectTimeoutMs    int
}

func (o HttpClientOptions) equal(p HttpClientOptions) bool {
	if o.SSLProtocols != p.SSLProtocols || o.DangerousAcceptAnyServerCertificate != p.DangerousAcceptAnyServerCertificate {
		return false
	}
	if o.RequestHeaderEncoding != p.RequestHeaderEncoding {
		return false
	}
	if o.MaxIdleConnsPerHost != p.MaxIdleConnsPerHost || o.ConnectTimeoutMs != p.ConnectTimeoutMs {
		return false
	}
	if !intPtrEqual(o.MaxConnectionsPerServer, p.MaxConnectionsPerServer) {
		return false
	}
	switch {
	case o.ClientCertificate == nil && p.ClientCertificate == nil:
	case o.ClientCertificate == nil || p.ClientCertificate == nil:
		return false
	default:
		if o.ClientCertificate.ID != p.ClientCertificate.ID {
			return false
		}
	}
	return true
}

// HttpVersion is a permitted outgoing request HTTP version.
type HttpVersion struct {
	Major int
	Minor int
}

func (v HttpVersion) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

var SupportedHttpVersions = []HttpVersion{{1, 0}, {1, 1}, {2, 0}}

func (v HttpVersion) IsSupported() bool {
	for _, s := range SupportedHttpVersions {
		if s == v {
			return true
		}
	}
	return false
}

// HttpRequestOptions configures how outgoing requests to a cluster's
// destinations are made.
type HttpRequestOptions struct {
	Version        *HttpVersion
	ActivityTimeoutMs *int64
	VersionPolicy  string
}

// ClusterSpec is an immutable description of one cluster (a named group of
// destinations sharing load-balancing, affinity, health-check and transport
// configuration).
type ClusterSpec struct {
	ClusterID string

	// Destinations is keyed by destination id; ids compare
	// case-insensitively.
	Destinations map[string]DestinationSpec

	LoadBalancingPolicy string
	SessionAffinity     *SessionAffinityOptions
	HealthCheck         *HealthCheckOptions
	HttpClient          *HttpClientOptions
	HttpRequest         *HttpRequestOptions
	Metadata            map[string]string
}

// Equal reports whether c and o describe the same cluster, field for field,
// with destination ids compared case-insensitively.
func (c ClusterSpec) Equal(o ClusterSpec) bool {
	if c.ClusterID != o.ClusterID || c.LoadBalancingPolicy != o.LoadBalancingPolicy {
		return false
	}
	if !stringMapEqual(c.Metadata, o.Metadata) {
		return false
	}
	if !destinationsEqual(c.Destinations, o.Destinations) {
		return false
	}
	if !sessionAffinityEqual(c.SessionAffinity, o.SessionAffinity) {
		return false
	}
	if !healthCheckEqual(c.HealthCheck, o.HealthCheck) {
		return false
	}
	if !httpClientEqual(c.HttpClient, o.HttpClient) {
		return false
	}
	if !httpRequestEqual(c.HttpRequest, o.HttpRequest) {
		return false
	}
	return true
}

func destinationsEqual(a, b map[string]DestinationSpec) bool {
	if len(a) != len(b) {
		return false
	}
	normA := normalizeDestKeys(a)
	normB := normalizeDestKeys(b)
	if len(normA) != len(normB) {
		return false
	}
	for k, v := range normA {
		bv, ok := normB[k]
		if !ok || !v.equal(bv) {
			return false
		}
	}
	return true
}

func normalizeDestKeys(m map[string]DestinationSpec) map[string]DestinationSpec {
	out := make(map[string]DestinationSpec, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

func sessionAffinityEqual(a, b *SessionAffinityOptions) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func healthCheckEqual(a, b *HealthCheckOptions) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func httpClientEqual(a, b *HttpClientOptions) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.equal(*b)
}

func httpRequestEqual(a, b *HttpRequestOptions) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.VersionPolicy != b.VersionPolicy {
		return false
	}
	if (a.Version == nil) != (b.Version == nil) {
		return false
	}
	if a.Version != nil && *a.Version != *b.Version {
		return false
	}
	if (a.ActivityTimeoutMs == nil) != (b.ActivityTimeoutMs == nil) {
		return false
	}
	if a.ActivityTimeoutMs != nil && *a.ActivityTimeoutMs != *b.ActivityTimeoutMs {
		return false
	}
	return true
}
