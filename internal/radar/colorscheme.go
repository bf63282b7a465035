package radar

import (
	"fmt"
	"image/color"

	"github.com/walkthru-earth/radarcast/internal/radarcatalog"
)

// unifiedColorScheme is the 14-entry palette every station's
// reflectivity levels are remapped into, so two overlapping stations
// that ship slightly different source palettes still render a
// consistent color for the same dBZ band.
var unifiedColorScheme = [14]color.NRGBA{
	{R: 173, G: 216, B: 230, A: 255}, // Light Blue
	{R: 0, G: 0, B: 255, A: 255},     // Medium Blue
	{R: 0, G: 0, B: 139, A: 255},     // Dark Blue
	{R: 0, G: 255, B: 0, A: 255},     // Green
	{R: 50, G: 205, B: 50, A: 255},   // Lime Green
	{R: 255, G: 255, B: 0, A: 255},   // Yellow
	{R: 255, G: 215, B: 0, A: 255},   // Gold
	{R: 255, G: 165, B: 0, A: 255},   // Orange
	{R: 255, G: 140, B: 0, A: 255},   // Dark Orange
	{R: 255, G: 0, B: 0, A: 255},     // Red
	{R: 139, G: 0, B: 0, A: 255},     // Dark Red
	{R: 255, G: 0, B: 255, A: 255},   // Magenta
	{R: 128, G: 0, B: 128, A: 255},   // Purple
	{R: 0, G: 0, B: 0, A: 255},       // Black
}

func hexToRGB(hex string) (color.NRGBA, bool) {
	if len(hex) != 6 && len(hex) != 7 {
		return color.NRGBA{}, false
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, true
}

// remapToUnifiedScheme looks up px against legends' station-specific
// palette and returns the matching unified-scheme color. Matching is
// by full RGBA, and the last matching legend entry wins. A legend
// index of 14 or higher is the "no data"/background sentinel band and
// maps to fully transparent. A pixel that doesn't match any legend
// color passes through unchanged.
func remapToUnifiedScheme(px color.NRGBA, legends radarcatalog.Legends) color.NRGBA {
	matched := false
	result := px
	for i, hex := range legends.Colors {
		legendColor, ok := hexToRGB(hex)
		if !ok {
			continue
		}
		if legendColor == px {
			matched = true
			if i < len(unifiedColorScheme) {
				result = unifiedColorScheme[i]
			} else {
				result = color.NRGBA{}
			}
		}
	}
	if matched {
		return result
	}
	return px
}
