package maptiles

import (
	"fmt"
	"os"
)

// MapStyle selects one of Thunderforest's published map styles. Each
// variant maps to a fixed URL path segment.
type MapStyle int

const (
	StyleCycle MapStyle = iota
	StyleTransport
	StyleLandscape
	StyleOutdoors
	StyleAtlas
	StyleTransportDark
	StyleSpinalMap
	StylePioneer
	StyleNeighbourhood
	StyleMobileAtlas
)

func (s MapStyle) pathSegment() string {
	switch s {
	case StyleCycle:
		return "cycle"
	case StyleTransport:
		return "transport"
	case StyleLandscape:
		return "landscape"
	case StyleOutdoors:
		return "outdoors"
	case StyleAtlas:
		return "atlas"
	case StyleTransportDark:
		return "transport-dark"
	case StyleSpinalMap:
		return "spinal-map"
	case StylePioneer:
		return "pioneer"
	case StyleNeighbourhood:
		return "neighbourhood"
	case StyleMobileAtlas:
		return "mobile-atlas"
	default:
		return "cycle"
	}
}

// tileURL builds the Thunderforest tile URL for (z, x, y) under this
// style, reading the API key from THUNDERFOREST_APIKEY.
func (s MapStyle) tileURL(z, x, y int) string {
	apikey := os.Getenv("THUNDERFOREST_APIKEY")
	return fmt.Sprintf("https://tile.thunderforest.com/%s/%d/%d/%d.png?apikey=%s", s.pathSegment(), z, x, y, apikey)
}
