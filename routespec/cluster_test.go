package routespec

import "testing"

func TestClusterSpecEqualCaseInsensitiveDestinationIDs(t *testing.T) {
	a := ClusterSpec{
		ClusterID: "c1",
		Destinations: map[string]DestinationSpec{
			"D1": {Address: "https://host:123/"},
		},
	}
	b := ClusterSpec{
		ClusterID: "c1",
		Destinations: map[string]DestinationSpec{
			"d1": {Address: "https://host:123/"},
		},
	}
	if !a.Equal(b) {
		t.Fatalf("expected equal clusters with case-differing destination ids")
	}
}

func TestClusterSpecFingerprintStable(t *testing.T) {
	c := ClusterSpec{
		ClusterID: "c1",
		Destinations: map[string]DestinationSpec{
			"d1": {Address: "https://host:123/"},
			"d2": {Address: "https://host:124/"},
		},
	}
	if c.Fingerprint() != c.Fingerprint() {
		t.Fatalf("fingerprint must be deterministic")
	}

	other := c
	other.Destinations = map[string]DestinationSpec{
		"d2": {Address: "https://host:124/"},
		"d1": {Address: "https://host:123/"},
	}
	if c.Fingerprint() != other.Fingerprint() {
		t.Fatalf("fingerprint must not depend on map iteration order")
	}
}

func TestHttpVersionIsSupported(t *testing.T) {
	if !(HttpVersion{1, 1}).IsSupported() {
		t.Fatalf("1.1 must be supported")
	}
	if (HttpVersion{1, 2}).IsSupported() {
		t.Fatalf("1.2 must not be supported")
	}
}

func TestHttpClientOptionsFingerprintScopedByCluster(t *testing.T) {
	opts := HttpClientOptions{DangerousAcceptAnyServerCertificate: true}
	if opts.Fingerprint("c1") == opts.Fingerprint("c2") {
		t.Fatalf("fingerprint must be scoped by cluster id")
	}
}
