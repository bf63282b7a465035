package radarcatalog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/walkthru-earth/radarcast/internal/geo"
	"github.com/walkthru-earth/radarcast/internal/httpclient"
	"github.com/walkthru-earth/radarcast/internal/rcerrors"
)

const (
	radarListURL              = "https://radar.bmkg.go.id:8090/radarlist"
	radarDetailURL             = "https://radar.bmkg.go.id:8090/sidarmaimage"
	radarDetailURLNoToken      = "https://api-apps.bmkg.go.id/api/radar-image"
	detailTimestampLayout      = "2006-01-02 15:04 UTC"
	catalogDetailWorkers       = 8
)

// Catalog fetches and assembles the set of radar stations relevant to
// a viewport.
type Catalog struct {
	client             *http.Client
	cache              *frameCache
	ageThreshold       time.Duration
	enforceAgeThreshold bool
	omit               map[string]bool
	overrides          *fileOverrides
}

// Builder configures a Catalog fluently: sane defaults, applied in
// Build.
type Builder struct {
	ageThreshold        time.Duration
	enforceAgeThreshold bool
	omit                []string
	overridesPath       string
	timeout             time.Duration
}

// NewBuilder starts a Builder with a 20-minute age threshold, not
// enforced (stale stations still render, just striped), and a
// 20-second upstream timeout.
func NewBuilder() *Builder {
	return &Builder{
		ageThreshold: DefaultAgeThreshold,
		timeout:      20 * time.Second,
	}
}

// WithAgeThreshold overrides how old a frame can be before it's
// considered stale.
func (b *Builder) WithAgeThreshold(d time.Duration) *Builder {
	b.ageThreshold = d
	return b
}

// WithEnforceAgeThreshold makes stale stations drop out of the render
// entirely (priority demoted below any real station) instead of just
// being marked striped.
func (b *Builder) WithEnforceAgeThreshold(enforce bool) *Builder {
	b.enforceAgeThreshold = enforce
	return b
}

// WithOmit adds station codes to exclude outright.
func (b *Builder) WithOmit(codes ...string) *Builder {
	b.omit = append(b.omit, codes...)
	return b
}

// WithOverridesFile points at an optional stations.yaml.
func (b *Builder) WithOverridesFile(path string) *Builder {
	b.overridesPath = path
	return b
}

// WithTimeout overrides the upstream HTTP timeout.
func (b *Builder) WithTimeout(d time.Duration) *Builder {
	b.timeout = d
	return b
}

// Build finalizes the Catalog, loading the overrides file if one was
// configured.
func (b *Builder) Build() (*Catalog, error) {
	var overrides *fileOverrides
	if b.overridesPath != "" {
		var err error
		overrides, err = LoadOverridesFile(b.overridesPath)
		if err != nil {
			return nil, err
		}
	}

	omit := make(map[string]bool, len(b.omit))
	for _, c := range b.omit {
		omit[c] = true
	}

	return &Catalog{
		client:              httpclient.New(b.timeout, true),
		cache:               newFrameCache(),
		ageThreshold:        b.ageThreshold,
		enforceAgeThreshold: b.enforceAgeThreshold,
		omit:                omit,
		overrides:           overrides,
	}, nil
}

func detailBaseURL() string {
	if os.Getenv("BMKG_APIKEY") != "" {
		return radarDetailURL
	}
	return radarDetailURLNoToken
}

// Fetch builds the list of stations overlapping bounds, applying
// range/priority overrides, the omit list, and staleness rules.
// TLS verification is disabled for this host specifically: BMKG ships
// a certificate that doesn't validate. The radar frame fetch in
// package radar relaxes it the same way.
func (c *Catalog) Fetch(ctx context.Context, bounds geo.BBox) ([]Station, error) {
	var list rawRadarList
	err := retry(func() error {
		var fetchErr error
		list, fetchErr = c.fetchList(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, &rcerrors.RadarCatalogError{Cause: err}
	}

	candidates := lo.Filter(list.Data, func(entry rawRadarListEntry, _ int) bool {
		if c.omit[entry.Code] || (c.overrides != nil && c.overrides.isOmitted(entry.Code)) {
			return false
		}
		if len(entry.OverlayTLC) < 2 || len(entry.OverlayBRC) < 2 {
			return false
		}
		stationBounds := geo.BBox{
			NW: geo.Coordinate{Lat: parseF(entry.OverlayTLC[0]), Lon: parseF(entry.OverlayTLC[1])},
			SE: geo.Coordinate{Lat: parseF(entry.OverlayBRC[0]), Lon: parseF(entry.OverlayBRC[1])},
		}
		return bounds.Overlaps(stationBounds)
	})

	stations := make([]Station, 0, len(candidates))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, catalogDetailWorkers)

	for _, entry := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(entry rawRadarListEntry) {
			defer wg.Done()
			defer func() { <-sem }()

			detail, err := c.fetchDetail(ctx, entry.Code)
			if err != nil {
				return
			}
			station, ok := c.buildStation(entry, detail)
			if !ok {
				return
			}
			mu.Lock()
			stations = append(stations, station)
			mu.Unlock()
		}(entry)
	}
	wg.Wait()

	return stations, nil
}

func (c *Catalog) fetchList(ctx context.Context) (rawRadarList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpclient.AutoProxy(radarListURL), nil)
	if err != nil {
		return rawRadarList{}, fmt.Errorf("building radarlist request: %w", err)
	}
	httpclient.ApplyFakeHeaders(req, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return rawRadarList{}, &rcerrors.ConnectionError{Host: "radar.bmkg.go.id", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rawRadarList{}, &rcerrors.HTTPStatusError{Host: "radar.bmkg.go.id", Status: resp.StatusCode}
	}

	var list rawRadarList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return rawRadarList{}, &rcerrors.ParseError{Context: "radarlist response", Cause: err}
	}
	return list, nil
}

func (c *Catalog) fetchDetail(ctx context.Context, code string) (rawDetail, error) {
	if cached, ok := c.cache.get(code); ok {
		return cached, nil
	}

	reqURL := fmt.Sprintf("%s?code=%s", detailBaseURL(), code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpclient.AutoProxy(reqURL), nil)
	if err != nil {
		return rawDetail{},fmt.Errorf("building detail request for %s: %w", code, err)
	}
	httpclient.ApplyFakeHeaders(req, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return rawDetail{}, &rcerrors.ConnectionError{Host: "radar.bmkg.go.id station " + code, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rawDetail{}, &rcerrors.HTTPStatusError{Host: "radar.bmkg.go.id station " + code, Status: resp.StatusCode}
	}

	var detail rawDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return rawDetail{}, &rcerrors.ParseError{Context: "detail response for " + code, Cause: err}
	}

	c.cache.set(code, detail)
	return detail, nil
}

// buildStation assembles a render-ready Station from its raw list and
// detail records, applying overrides and staleness. Returns ok=false
// for a station with no usable frame.
func (c *Catalog) buildStation(entry rawRadarListEntry, detail rawDetail) (Station, bool) {
	if detail.Latest.File == "" {
		return Station{}, false
	}

	frameTime, ok := parseDetailTimestamp(detail.Latest.TimeUTC)
	if !ok {
		return Station{}, false
	}

	rng := rangeFor(entry.Code)
	priority := priorityFor(entry.Code)
	if c.overrides != nil {
		if r, ok := c.overrides.rangeFor(entry.Code); ok {
			rng = r
		}
		if p, ok := c.overrides.priorityFor(entry.Code); ok {
			priority = p
		}
	}

	elapsed := time.Since(frameTime)
	striped := elapsed > c.ageThreshold
	if striped && c.enforceAgeThreshold {
		priority = -1
	}

	return Station{
		Code:     entry.Code,
		City:     entry.City,
		Name:     entry.Station,
		Center:   geo.Coordinate{Lat: entry.Lat, Lon: entry.Lon},
		Range:    rng,
		Priority: priority,
		OverlayNW: geo.Coordinate{Lat: parseF(entry.OverlayTLC[0]), Lon: parseF(entry.OverlayTLC[1])},
		OverlaySE: geo.Coordinate{Lat: parseF(entry.OverlayBRC[0]), Lon: parseF(entry.OverlayBRC[1])},
		Legends: Legends{
			Levels: detail.Legends.Levels,
			Colors: detail.Legends.Colors,
		},
		FrameURL:  detail.Latest.File,
		FrameTime: frameTime,
		Striped:   striped,
	}, true
}

// parseDetailTimestamp parses BMKG's "YYYY-MM-DD HH:MM UTC" format,
// silently treating the literal "No Data" (and anything else
// unparseable) as absent rather than an error.
func parseDetailTimestamp(raw string) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" || strings.EqualFold(strings.TrimSpace(raw), "No Data") {
		return time.Time{}, false
	}
	t, err := time.Parse(detailTimestampLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseF(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
