package radar

import (
	"image"

	"github.com/walkthru-earth/radarcast/internal/geo"
	"github.com/walkthru-earth/radarcast/internal/radarcatalog"
)

// station is the render engine's working copy of a radarcatalog
// station: its catalog data plus the decoded source frame, with the
// coverage radius pre-converted to degrees since every formula in
// this package works in lon/lat space.
type station struct {
	code       string
	lon, lat   float64
	radiusDeg  float64
	priority   int
	striped    bool
	overlayNW  geo.Coordinate
	overlaySE  geo.Coordinate
	legends    radarcatalog.Legends
	image      image.Image
}

func newStation(cat radarcatalog.Station, img image.Image) station {
	return station{
		code:      cat.Code,
		lon:       cat.Center.Lon,
		lat:       cat.Center.Lat,
		radiusDeg: cat.Range.ToDegrees(),
		priority:  cat.Priority,
		striped:   cat.Striped,
		overlayNW: cat.OverlayNW,
		overlaySE: cat.OverlaySE,
		legends:   cat.Legends,
		image:     img,
	}
}
