package routespec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable structural hash of the client transport
// options, scoped to clusterID. It is the cache key the transport factory
// uses to decide whether an existing handle can be reused; clusterID is
// folded in deliberately, since two clusters with byte-identical options
// (e.g. the same client certificate) must not share a transport.
func (o HttpClientOptions) Fingerprint(clusterID string) uint64 {
	var b strings.Builder
	fmt.Fprintf(&b, "cluster=%s;ssl=%d;maxconn=", clusterID, o.SSLProtocols)
	if o.MaxConnectionsPerServer != nil {
		fmt.Fprintf(&b, "%d", *o.MaxConnectionsPerServer)
	} else {
		b.WriteString("-")
	}
	b.WriteString(";cert=")
	if o.ClientCertificate != nil {
		b.WriteString(o.ClientCertificate.ID)
	}
	fmt.Fprintf(&b, ";dangerous=%t;enc=%s;idle=%d;connect=%d",
		o.DangerousAcceptAnyServerCertificate, o.RequestHeaderEncoding,
		o.MaxIdleConnsPerHost, o.ConnectTimeoutMs)
	return xxhash.Sum64String(b.String())
}

// Fingerprint returns a stable structural hash of the cluster spec,
// including its destinations and their metadata. Two ClusterSpec values
// with equal fingerprints are Equal; callers use this as a fast-path
// short-circuit before the full field-wise diff during reconciliation.
func (c ClusterSpec) Fingerprint() uint64 {
	var b strings.Builder
	fmt.Fprintf(&b, "id=%s;lb=%s;", c.ClusterID, c.LoadBalancingPolicy)

	dests := normalizeDestKeys(c.Destinations)
	destIDs := make([]string, 0, len(dests))
	for id := range dests {
		destIDs = append(destIDs, id)
	}
	sort.Strings(destIDs)
	for _, id := range destIDs {
		d := dests[id]
		fmt.Fprintf(&b, "d:%s=%s|%s", id, d.Address, d.Health)
		destMetaKeys := make([]string, 0, len(d.Metadata))
		for k := range d.Metadata {
			destMetaKeys = append(destMetaKeys, k)
		}
		sort.Strings(destMetaKeys)
		for _, k := range destMetaKeys {
			fmt.Fprintf(&b, "|dm:%s=%s", k, d.Metadata[k])
		}
		b.WriteByte(';')
	}

	metaKeys := make([]string, 0, len(c.Metadata))
	for k := range c.Metadata {
		metaKeys = append(metaKeys, k)
	}
	sort.Strings(metaKeys)
	for _, k := range metaKeys {
		fmt.Fprintf(&b, "m:%s=%s;", k, c.Metadata[k])
	}

	if c.SessionAffinity != nil {
		fmt.Fprintf(&b, "affinity=%+v;", *c.SessionAffinity)
	}
	if c.HealthCheck != nil {
		fmt.Fprintf(&b, "health=%+v;", *c.HealthCheck)
	}
	if c.HttpClient != nil {
		fmt.Fprintf(&b, "client=%d;", c.HttpClient.Fingerprint(c.ClusterID))
	}
	if req := c.HttpRequest; req != nil {
		b.WriteString("request=")
		if req.Version != nil {
			b.WriteString(req.Version.String())
		}
		b.WriteByte('|')
		if req.ActivityTimeoutMs != nil {
			fmt.Fprintf(&b, "%d", *req.ActivityTimeoutMs)
		}
		fmt.Fprintf(&b, "|%s;", req.VersionPolicy)
	}

	return xxhash.Sum64String(b.String())
}
