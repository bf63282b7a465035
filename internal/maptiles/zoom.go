package maptiles

import (
	"math"

	"github.com/walkthru-earth/radarcast/internal/geo"
)

// DefaultMaxTiles bounds automatic zoom selection when the caller asks
// for "as much detail as fits in roughly this many tiles" rather than
// naming an exact zoom level.
const DefaultMaxTiles = 50

// ZoomSetting is either an explicit zoom level or a tile-count budget
// that autoZoomLevel converts into the zoom level whose tile count
// is nearest it (rounded on a log scale, so it can exceed the budget).
type ZoomSetting struct {
	maxTiles  int
	zoomLevel int
	isExplicit bool
}

// MaxTiles builds a ZoomSetting that auto-selects a zoom level so the
// rendered viewport uses roughly n tiles; the count is not capped at n.
func MaxTiles(n int) ZoomSetting { return ZoomSetting{maxTiles: n} }

// ZoomLevel builds a ZoomSetting pinned to an explicit zoom level.
func ZoomLevel(z int) ZoomSetting { return ZoomSetting{zoomLevel: z, isExplicit: true} }

func (z ZoomSetting) resolve(bounds geo.BBox) int {
	if z.isExplicit {
		return z.zoomLevel
	}
	return autoZoomLevel(bounds, z.maxTiles)
}

// coordToTileNoPow converts a coordinate to fractional Web Mercator
// tile coordinates at zoom 0, i.e. values in [0,1).
func coordToTileNoPow(c geo.Coordinate) geo.Position {
	x := (c.Lon + 180.0) / 360.0
	latRad := c.Lat * math.Pi / 180.0
	y := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2
	return geo.Position{X: x, Y: y}
}

// coordToTile converts a coordinate to tile coordinates at zoom z.
func coordToTile(c geo.Coordinate, z int) geo.Position {
	p := coordToTileNoPow(c)
	scale := math.Pow(2, float64(z))
	return geo.Position{X: p.X * scale, Y: p.Y * scale}
}

// autoZoomLevel picks the zoom level at which the viewport's tile
// count is nearest maxTiles, using the each-axis-doubles-per-zoom
// relationship: tile count scales with 4^z.
func autoZoomLevel(bounds geo.BBox, maxTiles int) int {
	start := coordToTileNoPow(bounds.NW)
	end := coordToTileNoPow(geo.Coordinate{Lat: bounds.SE.Lat, Lon: bounds.SE.Lon})

	dx := end.X - start.X
	if dx < 0 {
		dx += 1.0
	}
	dy := end.Y - start.Y

	area := dx * dy
	if area <= 0 {
		return 0
	}

	z := math.Floor(math.Log(float64(maxTiles)/area)/math.Log(4)+0.5)
	if z < 0 {
		z = 0
	}
	return int(z)
}
