package maptiles

import (
	"testing"

	"github.com/walkthru-earth/radarcast/internal/geo"
)

func TestCoordToTile(t *testing.T) {
	c := geo.Coordinate{Lat: 5.98, Lon: 2.33}
	pos := coordToTile(c, 13)

	wantX, wantY := 4149.0204444, 3959.6740473
	if diff := pos.X - wantX; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("x = %v, want %v", pos.X, wantX)
	}
	if diff := pos.Y - wantY; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("y = %v, want %v", pos.Y, wantY)
	}
}

func TestAutoZoomLevel(t *testing.T) {
	small := geo.BBox{
		NW: geo.Coordinate{Lat: -6.890, Lon: 107.600},
		SE: geo.Coordinate{Lat: -6.900, Lon: 107.610},
	}
	large := geo.BBox{
		NW: geo.Coordinate{Lat: -5.0, Lon: 105.0},
		SE: geo.Coordinate{Lat: -8.0, Lon: 112.0},
	}

	for _, b := range []geo.BBox{small, large} {
		if got := autoZoomLevel(b, DefaultMaxTiles); got < 0 {
			t.Fatalf("autoZoomLevel returned negative zoom %d", got)
		}
	}

	if autoZoomLevel(small, DefaultMaxTiles) <= autoZoomLevel(large, DefaultMaxTiles) {
		t.Fatalf("expected smaller viewport to resolve to a higher zoom level")
	}
}

func TestCanvasMetaAnteMeridian(t *testing.T) {
	bounds := geo.BBox{
		NW: geo.Coordinate{Lat: 1.0, Lon: 179.0},
		SE: geo.Coordinate{Lat: -1.0, Lon: -179.0},
	}
	meta := NewCanvasMeta(bounds, 5)

	if meta.SETile.X <= meta.NWTile.X {
		t.Fatalf("expected normalized SE tile X (%v) > NW tile X (%v) across ante-meridian", meta.SETile.X, meta.NWTile.X)
	}

	tiles := meta.Tiles()
	maxTile := 1 << 5
	for _, tile := range tiles {
		if tile.X < 0 || tile.X >= maxTile {
			t.Fatalf("wrapped tile X %d out of range [0,%d)", tile.X, maxTile)
		}
	}
}

func TestTileBoundsCropDimensions(t *testing.T) {
	bounds := geo.BBox{
		NW: geo.Coordinate{Lat: -6.0, Lon: 106.0},
		SE: geo.Coordinate{Lat: -7.0, Lon: 108.0},
	}
	meta := NewCanvasMeta(bounds, 10)
	w, h := meta.PixelDimensions()
	if w <= 0 || h <= 0 {
		t.Fatalf("expected positive canvas dimensions, got %dx%d", w, h)
	}
}
