// Package radarcatalog builds the list of BMKG weather radar stations
// relevant to a viewport: fetching the station catalog, fetching each
// station's detail record (legend and latest frame URL), and applying the range/priority/staleness
// rules that decide which stations actually get rendered.
package radarcatalog

import (
	"math"
	"time"

	"github.com/walkthru-earth/radarcast/internal/geo"
)

// rawRadarListEntry mirrors one entry of BMKG's /radarlist response.
type rawRadarListEntry struct {
	ID         string   `json:"_id"`
	City       string   `json:"Kota"`
	Station    string   `json:"Stasiun"`
	Code       string   `json:"kode"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	OverlayTLC []string `json:"overlayTLC"`
	OverlayBRC []string `json:"overlayBRC"`
}

type rawRadarList struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    []rawRadarListEntry `json:"data"`
}

// rawLegends mirrors BMKG's legend block: parallel arrays of dBZ
// levels and their hex colors.
type rawLegends struct {
	Levels []int    `json:"levels"`
	Colors []string `json:"colors"`
}

type rawLatest struct {
	TimeUTC string `json:"time_utc"`
	File    string `json:"file"`
}

type rawLastOneHour struct {
	TimeUTC []string `json:"time_utc"`
	File    []string `json:"file"`
}

type rawDetail struct {
	ChangeStatus string         `json:"change_status"`
	Legends      rawLegends     `json:"legends"`
	Latest       rawLatest      `json:"latest"`
	LastOneHour  rawLastOneHour `json:"last_one_hour"`
}

// Legends is a station's dBZ-level-to-color lookup table, used to
// remap its source PNG's palette into the unified color scheme.
type Legends struct {
	Levels []int
	Colors []string
}

// Station is one processed, render-ready radar station: its
// geographic footprint, calibration knobs, and latest available
// frame.
type Station struct {
	Code    string
	City    string
	Name    string
	Center  geo.Coordinate
	Range   geo.Distance
	Priority int

	// OverlayNW/OverlaySE are the corners of the image this station's
	// PNG frame overlays, in lat/lon — distinct from Range, which is
	// the circular radius used for station-to-station ownership.
	OverlayNW geo.Coordinate
	OverlaySE geo.Coordinate

	Legends Legends

	FrameURL  string
	FrameTime time.Time

	// Striped marks a station whose latest frame is older than the
	// configured age threshold, whether or not age enforcement is on;
	// render.go uses it to apply a dithered
	// "stale" pattern instead of silently passing off old data as
	// current.
	Striped bool
}

// IsOverlapping reports whether two stations' coverage circles are
// close enough to need priority arbitration where they overlap.
func IsOverlapping(a, b Station) bool {
	if a.Code == b.Code {
		return false
	}
	dlat := a.Center.Lat - b.Center.Lat
	dlon := a.Center.Lon - b.Center.Lon
	distDeg := math.Sqrt(dlat*dlat + dlon*dlon)
	return distDeg < a.Range.ToDegrees()+b.Range.ToDegrees()
}
