package radarcatalog

import (
	"testing"
	"time"

	"github.com/walkthru-earth/radarcast/internal/geo"
)

func TestIsOverlapping(t *testing.T) {
	a := Station{Code: "AAA", Center: geo.Coordinate{Lat: -6.2, Lon: 106.8}, Range: geo.KM(240)}
	b := Station{Code: "BBB", Center: geo.Coordinate{Lat: -6.3, Lon: 106.9}, Range: geo.KM(240)}
	c := Station{Code: "CCC", Center: geo.Coordinate{Lat: 10.0, Lon: 50.0}, Range: geo.KM(240)}

	if !IsOverlapping(a, b) {
		t.Fatalf("expected %s and %s to overlap", a.Code, b.Code)
	}
	if IsOverlapping(a, c) {
		t.Fatalf("expected %s and %s not to overlap", a.Code, c.Code)
	}
	if IsOverlapping(a, a) {
		t.Fatalf("a station should never overlap itself")
	}
}

func TestParseDetailTimestamp(t *testing.T) {
	got, ok := parseDetailTimestamp("2024-05-01 12:30 UTC")
	if !ok {
		t.Fatalf("expected a valid timestamp to parse")
	}
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parsed %v, want %v", got, want)
	}

	if _, ok := parseDetailTimestamp("No Data"); ok {
		t.Fatalf("expected literal \"No Data\" to be dropped silently")
	}
	if _, ok := parseDetailTimestamp(""); ok {
		t.Fatalf("expected empty timestamp to be dropped silently")
	}
	if _, ok := parseDetailTimestamp("garbage"); ok {
		t.Fatalf("expected unparseable timestamp to be dropped silently")
	}
}

func TestDefaultOverrides(t *testing.T) {
	if priorityFor("PWK") == DefaultPriority {
		t.Fatalf("expected PWK to carry a non-default priority override")
	}
	if priorityFor("unlisted-code") != DefaultPriority {
		t.Fatalf("expected an unlisted station code to fall back to the default priority")
	}
}
