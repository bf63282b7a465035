package radar

import (
	"math"
	"testing"
)

func TestQxCircThroughCenterAndMiss(t *testing.T) {
	center := station{lon: 0, lat: 0}
	r := 5.0

	// y = 0 passes through the center: intersections at +-r.
	result := qxCirc(center, r, 0)
	if !result.ok {
		t.Fatalf("expected a real intersection at y=0")
	}
	hi, lo := math.Max(result.x1, result.x2), math.Min(result.x1, result.x2)
	if math.Abs(hi-r) > 1e-9 || math.Abs(lo+r) > 1e-9 {
		t.Fatalf("qxCirc(0) = (%v, %v), want (+-%v)", result.x1, result.x2, r)
	}

	// y beyond the radius never intersects.
	if (qxCirc(center, r, 10)).ok {
		t.Fatalf("expected no intersection for y beyond the radius")
	}
}

func TestQInsideSignsBySide(t *testing.T) {
	center := station{lon: 0, lat: 0}
	r := 5.0

	if qInside(center, r, 0, 0) >= 0 {
		t.Fatalf("expected the circle's center to be strictly inside (negative)")
	}
	if qInside(center, r, 100, 100) <= 0 {
		t.Fatalf("expected a far point to be strictly outside (positive)")
	}
}

func TestMinQ1Q2IgnoresLowerPriorityNeighbors(t *testing.T) {
	self := station{lon: 0, lat: 0, radiusDeg: 5, priority: 2}
	lowerPriority := station{lon: 3, lat: 0, radiusDeg: 5, priority: 1}

	// With no overlapping stations at >= priority, the bound is -Inf
	// (unconstrained); a lower-priority neighbor must not tighten it.
	unconstrained := minQ1Q2(self, nil, 1, 1)
	withLowerPriority := minQ1Q2(self, []station{lowerPriority}, 1, 1)

	if unconstrained != withLowerPriority {
		t.Fatalf("a lower-priority overlapping station should not affect the bound: %v vs %v", unconstrained, withLowerPriority)
	}
}
