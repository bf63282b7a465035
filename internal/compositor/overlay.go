// Package compositor alpha-blends the radar overlay onto the map
// background, the final step before encoding the output PNG.
package compositor

import (
	"fmt"
	"image"
	"image/color"
)

// Overlay draws top onto base at the given opacity (0..1) and returns
// a new image the size of base. Per-pixel alpha blending truncates
// deliberately rather than rounds: truncation is cheaper and the
// error it introduces is sub-pixel.
func Overlay(base, top image.Image, opacity float64) (image.Image, error) {
	if opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("opacity must be in [0,1], got %v", opacity)
	}

	bb := base.Bounds()
	tb := top.Bounds()
	if bb.Dx() != tb.Dx() || bb.Dy() != tb.Dy() {
		return nil, fmt.Errorf("overlay dimensions mismatch: base %dx%d, top %dx%d", bb.Dx(), bb.Dy(), tb.Dx(), tb.Dy())
	}

	out := image.NewNRGBA(bb)
	for y := 0; y < bb.Dy(); y++ {
		for x := 0; x < bb.Dx(); x++ {
			baseColor := color.NRGBAModel.Convert(base.At(bb.Min.X+x, bb.Min.Y+y)).(color.NRGBA)
			topColor := color.NRGBAModel.Convert(top.At(tb.Min.X+x, tb.Min.Y+y)).(color.NRGBA)

			if topColor.A == 0 {
				out.SetNRGBA(bb.Min.X+x, bb.Min.Y+y, baseColor)
				continue
			}

			var o float64
			switch topColor.A {
			case 255:
				o = opacity
			default:
				o = float64(topColor.A) / 255.0 * opacity
			}

			blended := color.NRGBA{
				R: blendChannel(baseColor.R, topColor.R, o),
				G: blendChannel(baseColor.G, topColor.G, o),
				B: blendChannel(baseColor.B, topColor.B, o),
				A: 255,
			}
			out.SetNRGBA(bb.Min.X+x, bb.Min.Y+y, blended)
		}
	}
	return out, nil
}

// blendChannel truncates rather than rounds, a deliberate performance
// tradeoff over correctly-rounded blending.
func blendChannel(base, top uint8, o float64) uint8 {
	diff := int16(top) - int16(base)
	blended := int16(base) + int16(float64(diff)*o)
	if blended < 0 {
		blended = 0
	}
	if blended > 255 {
		blended = 255
	}
	return uint8(blended)
}
