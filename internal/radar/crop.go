package radar

import (
	"math"

	"github.com/walkthru-earth/radarcast/internal/geo"
)

// imageBounds is the lat/lon extent of a station's source frame that
// actually falls inside the requested render bounds: the geographic
// intersection of the station's overlay rectangle and the canvas
// viewport, used to keep the per-row scan from reading or writing
// outside either.
type imageBounds struct {
	nw, se geo.Coordinate
}

// cropToBounds intersects a station's overlay rectangle with the
// render viewport. ok is false when the station's frame doesn't
// actually fall inside the viewport (can happen at the edge of a
// viewport even though the station passed the coarser catalog-level
// overlap check).
func cropToBounds(st station, bounds geo.BBox) (imageBounds, bool) {
	nwLon := math.Max(st.overlayNW.Lon, bounds.NW.Lon)
	seLon := math.Min(st.overlaySE.Lon, bounds.SE.Lon)
	nwLat := math.Min(st.overlayNW.Lat, bounds.NW.Lat)
	seLat := math.Max(st.overlaySE.Lat, bounds.SE.Lat)

	if nwLon >= seLon || seLat >= nwLat {
		return imageBounds{}, false
	}

	return imageBounds{
		nw: geo.Coordinate{Lat: nwLat, Lon: nwLon},
		se: geo.Coordinate{Lat: seLat, Lon: seLon},
	}, true
}
