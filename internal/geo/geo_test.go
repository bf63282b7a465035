package geo

import "testing"

func TestDistanceKMToDegrees(t *testing.T) {
	got := KM(180.0).ToDegrees()
	want := 1.6169681846537741
	if got != want {
		t.Fatalf("KM(180).ToDegrees() = %v, want %v", got, want)
	}
}

func TestDistanceDegToKM(t *testing.T) {
	d := Deg(1.6169681846537741)
	got := d.ToKM()
	want := 180.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Deg(...).ToKM() = %v, want ~%v", got, want)
	}
}

func TestConsiderateFloor(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{9.999999999999998, 10},
		{9.5, 9},
		{-0.0000000001, -1},
		{3.2, 3},
	}
	for _, c := range cases {
		got := ConsiderateFloor(c.in)
		if got != c.want {
			t.Fatalf("ConsiderateFloor(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBBoxOverlaps(t *testing.T) {
	a := BBox{NW: Coordinate{Lat: -6.0, Lon: 106.0}, SE: Coordinate{Lat: -7.0, Lon: 107.0}}
	overlapping := BBox{NW: Coordinate{Lat: -6.5, Lon: 106.5}, SE: Coordinate{Lat: -7.5, Lon: 107.5}}
	distant := BBox{NW: Coordinate{Lat: 10.0, Lon: 10.0}, SE: Coordinate{Lat: 9.0, Lon: 11.0}}

	if !a.Overlaps(overlapping) {
		t.Fatalf("expected overlap between %v and %v", a, overlapping)
	}
	if a.Overlaps(distant) {
		t.Fatalf("expected no overlap between %v and %v", a, distant)
	}
}
