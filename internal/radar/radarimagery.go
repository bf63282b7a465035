package radar

import (
	"context"
	"fmt"
	"time"

	"github.com/walkthru-earth/radarcast/internal/geo"
	"github.com/walkthru-earth/radarcast/internal/radarcatalog"
)

// RadarImagery renders the composite radar overlay for a bounding
// box: fetch the station catalog, fetch each relevant station's
// latest frame, then composite them onto a shared canvas.
type RadarImagery struct {
	bounds  geo.BBox
	catalog *radarcatalog.Builder
	timeout time.Duration
}

// NewRadarImagery starts a builder for bounds using the catalog
// builder's defaults (20-minute age threshold, not enforced).
func NewRadarImagery(bounds geo.BBox) *RadarImagery {
	return &RadarImagery{
		bounds:  bounds,
		catalog: radarcatalog.NewBuilder(),
		timeout: 20 * time.Second,
	}
}

// WithAgeThreshold overrides the catalog's staleness threshold.
func (r *RadarImagery) WithAgeThreshold(d time.Duration) *RadarImagery {
	r.catalog.WithAgeThreshold(d)
	return r
}

// WithEnforceAgeThreshold overrides whether stale stations, which are
// always striped, also have their priority demoted to -1.
func (r *RadarImagery) WithEnforceAgeThreshold(enforce bool) *RadarImagery {
	r.catalog.WithEnforceAgeThreshold(enforce)
	return r
}

// WithOmit excludes the given station codes outright.
func (r *RadarImagery) WithOmit(codes ...string) *RadarImagery {
	r.catalog.WithOmit(codes...)
	return r
}

// WithOverridesFile points at an optional stations.yaml.
func (r *RadarImagery) WithOverridesFile(path string) *RadarImagery {
	r.catalog.WithOverridesFile(path)
	return r
}

// WithTimeout overrides the upstream HTTP timeout for both the
// catalog and the per-station frame fetches.
func (r *RadarImagery) WithTimeout(d time.Duration) *RadarImagery {
	r.timeout = d
	r.catalog.WithTimeout(d)
	return r
}

// Render produces the composited radar overlay sized canvasWidth x
// canvasHeight, along with the codes of stations that actually
// contributed a pixel.
func (r *RadarImagery) Render(ctx context.Context, canvasWidth, canvasHeight int) (*Canvas, []string, error) {
	catalog, err := r.catalog.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("building radar catalog: %w", err)
	}

	stations, err := catalog.Fetch(ctx, r.bounds)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching radar catalog: %w", err)
	}

	images := fetchFrames(ctx, r.timeout, stations)
	canvas, used := Render(r.bounds, canvasWidth, canvasHeight, images)
	return canvas, used, nil
}
