package routespec

import "testing"

func TestRouteSpecEqual(t *testing.T) {
	a := RouteSpec{RouteID: "r1", ClusterID: "c1", Match: RouteMatch{Path: "/"}}
	b := RouteSpec{RouteID: "r1", ClusterID: "c1", Match: RouteMatch{Path: "/"}}
	if !a.Equal(b) {
		t.Fatalf("expected equal routes")
	}

	c := b
	c.ClusterID = "c2"
	if a.Equal(c) {
		t.Fatalf("expected unequal routes")
	}
}

func TestRouteSpecEqualOrderPointers(t *testing.T) {
	o1, o2 := 1, 1
	a := RouteSpec{RouteID: "r1", Order: &o1}
	b := RouteSpec{RouteID: "r1", Order: &o2}
	if !a.Equal(b) {
		t.Fatalf("expected equal order values through distinct pointers")
	}

	c := RouteSpec{RouteID: "r1"}
	if a.Equal(c) {
		t.Fatalf("nil vs non-nil Order must not be equal")
	}
}

func TestHeaderMatchEqual(t *testing.T) {
	a := HeaderMatch{Name: "X", Mode: ExactHeader, Values: []string{"1"}}
	b := HeaderMatch{Name: "X", Mode: ExactHeader, Values: []string{"1"}}
	if !a.equal(b) {
		t.Fatalf("expected equal header matches")
	}
}
