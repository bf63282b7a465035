package compositor

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestOverlayFullyTransparentTopLeavesBaseUnchanged(t *testing.T) {
	base := solid(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	top := solid(2, 2, color.NRGBA{R: 200, G: 200, B: 200, A: 0})

	out, err := Overlay(base, top, 0.5)
	if err != nil {
		t.Fatalf("Overlay returned error: %v", err)
	}
	got := color.NRGBAModel.Convert(out.At(0, 0)).(color.NRGBA)
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Fatalf("got %v, want base color unchanged", got)
	}
}

func TestOverlayFullyOpaqueTopUsesOpacity(t *testing.T) {
	base := solid(1, 1, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	top := solid(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out, err := Overlay(base, top, 0.5)
	if err != nil {
		t.Fatalf("Overlay returned error: %v", err)
	}
	got := color.NRGBAModel.Convert(out.At(0, 0)).(color.NRGBA)
	if got.R < 120 || got.R > 130 {
		t.Fatalf("got R=%d, want ~127 for a 50%% blend of black and white", got.R)
	}
}

func TestOverlayDimensionMismatchErrors(t *testing.T) {
	base := solid(2, 2, color.NRGBA{A: 255})
	top := solid(3, 3, color.NRGBA{A: 255})
	if _, err := Overlay(base, top, 0.5); err == nil {
		t.Fatalf("expected a dimension mismatch error")
	}
}

func TestOverlayRejectsOutOfRangeOpacity(t *testing.T) {
	base := solid(1, 1, color.NRGBA{A: 255})
	top := solid(1, 1, color.NRGBA{A: 255})
	if _, err := Overlay(base, top, 1.5); err == nil {
		t.Fatalf("expected an opacity range error")
	}
}
