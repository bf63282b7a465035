package maptiles

import (
	"math"

	"github.com/walkthru-earth/radarcast/internal/geo"
)

// TileDimension is the pixel width/height of a single upstream tile.
const TileDimension = 256

// TilePos identifies a single map tile to fetch. X is wrapped into
// [0, 2^Z) for use in the tile URL; Col is the unwrapped column index
// (which may be >= 2^Z for tiles east of the ante-meridian) used to
// place the fetched tile in the stitched grid.
type TilePos struct {
	Z, X, Y, Col int
}

// crop is the fractional pixel crop to trim from each edge of the
// stitched tile grid so the result matches the requested bounds
// exactly rather than rounding out to whole tiles.
type crop struct {
	top, left, bottom, right float64
}

// approxInt rounds a crop down to whole pixels, nudging up by one pixel
// when the fractional remainder is close enough to a whole pixel that
// floating point noise would otherwise drop it. Same reasoning as
// geo.ConsiderateFloor but against a fixed 0.999999999 tolerance
// rather than the float epsilon.
func (c crop) approxInt() (top, left, bottom, right int) {
	round := func(v float64) int {
		f := math.Floor(v)
		if v-f > 0.999999999 {
			f++
		}
		return int(f)
	}
	return round(c.top), round(c.left), round(c.bottom), round(c.right)
}

// CanvasMeta describes the tile grid a bounding box at a given zoom
// level spans: the fractional tile-space position of each corner,
// normalized so an ante-meridian-crossing viewport still has
// SETile.X > NWTile.X.
type CanvasMeta struct {
	Z      int
	NWTile geo.Position
	SETile geo.Position
}

// NewCanvasMeta projects bounds into tile space at zoom z and
// normalizes ante-meridian crossings (east < west after projection)
// by adding a full world-width of tiles to the east edge.
func NewCanvasMeta(bounds geo.BBox, z int) CanvasMeta {
	nw := coordToTile(bounds.NW, z)
	se := coordToTile(bounds.SE, z)

	maxTile := math.Pow(2, float64(z))
	if se.X < nw.X {
		se.X += maxTile
	}

	return CanvasMeta{Z: z, NWTile: nw, SETile: se}
}

// tileBounds is the integer tile range covering the canvas, with the
// north/west edge floored and the south/east edge ceiled so the grid
// fully contains the requested bounds.
type tileBounds struct {
	minCol, maxCol, minRow, maxRow int
}

func (m CanvasMeta) tileBounds() tileBounds {
	return tileBounds{
		minCol: int(math.Floor(m.NWTile.X)),
		maxCol: int(math.Ceil(m.SETile.X)),
		minRow: int(math.Floor(m.NWTile.Y)),
		maxRow: int(math.Ceil(m.SETile.Y)),
	}
}

// Cols returns the number of tile columns spanned.
func (b tileBounds) Cols() int { return b.maxCol - b.minCol }

// Rows returns the number of tile rows spanned.
func (b tileBounds) Rows() int { return b.maxRow - b.minRow }

// edgeCrop returns the fractional-pixel trim needed on each edge of
// the stitched tile grid to exactly match the requested bounds.
func (m CanvasMeta) edgeCrop() crop {
	b := m.tileBounds()
	return crop{
		top:    (m.NWTile.Y - float64(b.minRow)) * TileDimension,
		left:   (m.NWTile.X - float64(b.minCol)) * TileDimension,
		bottom: (float64(b.maxRow) - m.SETile.Y) * TileDimension,
		right:  (float64(b.maxCol) - m.SETile.X) * TileDimension,
	}
}

// PixelDimensions returns the final stitched-and-cropped canvas size
// in pixels.
func (m CanvasMeta) PixelDimensions() (width, height int) {
	b := m.tileBounds()
	c := m.edgeCrop()
	top, left, bottom, right := c.approxInt()
	return b.Cols()*TileDimension - left - right, b.Rows()*TileDimension - top - bottom
}

// Tiles enumerates the TilePos values the canvas needs, wrapping
// column indices that cross the ante-meridian back into [0, 2^z).
func (m CanvasMeta) Tiles() []TilePos {
	b := m.tileBounds()
	maxTile := int(math.Pow(2, float64(m.Z)))

	tiles := make([]TilePos, 0, b.Cols()*b.Rows())
	for row := b.minRow; row < b.maxRow; row++ {
		for col := b.minCol; col < b.maxCol; col++ {
			wrapped := col
			if wrapped >= maxTile {
				wrapped -= maxTile
			}
			if wrapped < 0 {
				wrapped += maxTile
			}
			tiles = append(tiles, TilePos{Z: m.Z, X: wrapped, Y: row, Col: col})
		}
	}
	return tiles
}

// GridOrigin returns the (minCol, minRow) of the tile grid, the
// reference point for stitching fetched tiles into the output canvas.
func (m CanvasMeta) GridOrigin() (minCol, minRow int) {
	b := m.tileBounds()
	return b.minCol, b.minRow
}

// CropPixels returns the whole-pixel crop to trim from the stitched
// grid's top/left/bottom/right edges.
func (m CanvasMeta) CropPixels() (top, left, bottom, right int) {
	return m.edgeCrop().approxInt()
}
