package radarcatalog

import (
	"time"

	"github.com/walkthru-earth/radarcast/internal/geo"
)

// DefaultAgeThreshold is how old a station's latest frame can be
// before it's considered stale.
const DefaultAgeThreshold = 20 * time.Minute

// DefaultRange is the coverage radius assigned to a station with no
// explicit override.
var DefaultRange = geo.KM(240.0)

// DefaultPriority is the ownership priority assigned to a station
// with no explicit override. Higher wins; stations sharing a priority
// split the overlap down the perpendicular bisector of their centers.
const DefaultPriority = 0

// stationOverride holds the non-default range/priority for a handful
// of stations whose real-world coverage or authoritativeness differs
// from the rest of the network.
type stationOverride struct {
	Range    geo.Distance
	Priority int
}

// defaultOverrides are the calibration adjustments baked into this
// renderer, keyed by station code, matching BMKG station codes for
// Pangkal Pinang (PWK), Ngurah Rai/Denpasar (NGW), Soekarno-Hatta/
// Jakarta (CGK), Tanjung Priok-area Jakarta (JAK), Iswahyudi (IWJ),
// and the Jakarta metro composite site (MCRC).
var defaultOverrides = map[string]stationOverride{
	"PWK":  {Range: geo.KM(120.0), Priority: 1},
	"NGW":  {Range: geo.KM(120.0), Priority: 1},
	"CGK":  {Range: geo.KM(85.0), Priority: 1},
	"JAK":  {Range: geo.KM(240.0), Priority: 0},
	"IWJ":  {Range: geo.KM(160.0), Priority: 0},
	"MCRC": {Range: geo.KM(120.0), Priority: 1},
}

func rangeFor(code string) geo.Distance {
	if o, ok := defaultOverrides[code]; ok {
		return o.Range
	}
	return DefaultRange
}

func priorityFor(code string) int {
	if o, ok := defaultOverrides[code]; ok {
		return o.Priority
	}
	return DefaultPriority
}
