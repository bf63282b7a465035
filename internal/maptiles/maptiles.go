// Package maptiles fetches and stitches Thunderforest map tiles into
// a single background image matching an arbitrary bounding box.
package maptiles

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/walkthru-earth/radarcast/internal/geo"
)

// DefaultTimeout bounds each tile fetch through the HTTP client's
// timeout; the context passed to Render is not bounded by it.
const DefaultTimeout = 15 * time.Second

// MapImagery configures and renders a stitched map background.
type MapImagery struct {
	bounds  geo.BBox
	style   MapStyle
	zoom    ZoomSetting
	timeout time.Duration
}

// NewMapImagery starts a builder with sensible defaults: the cycle
// style, auto zoom capped at DefaultMaxTiles, and a 15s per-tile
// timeout.
func NewMapImagery(bounds geo.BBox) *MapImagery {
	return &MapImagery{
		bounds:  bounds,
		style:   StyleCycle,
		zoom:    MaxTiles(DefaultMaxTiles),
		timeout: DefaultTimeout,
	}
}

// WithStyle sets the Thunderforest style.
func (m *MapImagery) WithStyle(style MapStyle) *MapImagery {
	m.style = style
	return m
}

// WithZoom overrides the zoom selection (auto or explicit).
func (m *MapImagery) WithZoom(z ZoomSetting) *MapImagery {
	m.zoom = z
	return m
}

// WithTimeout overrides the per-tile fetch timeout.
func (m *MapImagery) WithTimeout(d time.Duration) *MapImagery {
	m.timeout = d
	return m
}

// Render fetches, stitches, and crops the tile grid into an image
// exactly matching m's bounding box.
func (m *MapImagery) Render(ctx context.Context) (image.Image, error) {
	z := m.zoom.resolve(m.bounds)
	meta := NewCanvasMeta(m.bounds, z)

	f := newFetcher(m.style, m.timeout)
	stitched, err := fetchAndStitch(ctx, f, meta)
	if err != nil {
		return nil, fmt.Errorf("stitching map tiles: %w", err)
	}

	top, left, bottom, right := meta.CropPixels()
	bounds := stitched.Bounds()
	cropRect := image.Rect(bounds.Min.X+left, bounds.Min.Y+top, bounds.Max.X-right, bounds.Max.Y-bottom)

	out := image.NewRGBA(image.Rect(0, 0, cropRect.Dx(), cropRect.Dy()))
	draw.Draw(out, out.Bounds(), stitched, cropRect.Min, draw.Src)
	return out, nil
}
