// Package place resolves a free-text place name to a bounding box
// using the Nominatim (OpenStreetMap) search API.
package place

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/walkthru-earth/radarcast/internal/geo"
	"github.com/walkthru-earth/radarcast/internal/httpclient"
	"github.com/walkthru-earth/radarcast/internal/rcerrors"
)

const searchURL = "https://nominatim.openstreetmap.org/search"

// apiSearchResult mirrors the subset of Nominatim's response fields
// this renderer needs. BoundingBox arrives as ["south","north","west","east"].
type apiSearchResult struct {
	PlaceID     int64    `json:"place_id"`
	DisplayName string   `json:"display_name"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	BoundingBox []string `json:"boundingbox"`
}

// Resolver looks up bounding boxes for place names.
type Resolver struct {
	client *http.Client
}

// NewResolver builds a Resolver with a 10-second upstream timeout.
func NewResolver() *Resolver {
	return &Resolver{client: httpclient.New(10*time.Second, false)}
}

// BoundingBox looks up place and returns its bounding box as
// (north-west corner, south-east corner), matching the convention the
// rest of this repo uses for geo.BBox.
func (r *Resolver) BoundingBox(ctx context.Context, place string) (geo.BBox, error) {
	reqURL := httpclient.AutoProxy(searchURL + "?q=" + url.QueryEscape(place) + "&format=json&limit=1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return geo.BBox{}, fmt.Errorf("building nominatim request: %w", err)
	}
	httpclient.ApplyFakeHeaders(req, "https://www.openstreetmap.org/")

	resp, err := r.client.Do(req)
	if err != nil {
		return geo.BBox{}, &rcerrors.ConnectionError{Host: "nominatim.openstreetmap.org", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.BBox{}, &rcerrors.HTTPStatusError{Host: "nominatim.openstreetmap.org", Status: resp.StatusCode}
	}

	var results []apiSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.BBox{}, &rcerrors.ParseError{Context: "nominatim response", Cause: err}
	}

	if len(results) == 0 {
		return geo.BBox{}, &rcerrors.NoSuchPlace{Query: place}
	}

	return toBBox(results[0])
}

func toBBox(result apiSearchResult) (geo.BBox, error) {
	if len(result.BoundingBox) != 4 {
		return geo.BBox{}, &rcerrors.ParseError{Context: "nominatim boundingbox", Cause: fmt.Errorf("expected 4 elements, got %d", len(result.BoundingBox))}
	}
	south, err := strconv.ParseFloat(result.BoundingBox[0], 64)
	if err != nil {
		return geo.BBox{}, &rcerrors.ParseError{Context: "nominatim boundingbox south", Cause: err}
	}
	north, err := strconv.ParseFloat(result.BoundingBox[1], 64)
	if err != nil {
		return geo.BBox{}, &rcerrors.ParseError{Context: "nominatim boundingbox north", Cause: err}
	}
	west, err := strconv.ParseFloat(result.BoundingBox[2], 64)
	if err != nil {
		return geo.BBox{}, &rcerrors.ParseError{Context: "nominatim boundingbox west", Cause: err}
	}
	east, err := strconv.ParseFloat(result.BoundingBox[3], 64)
	if err != nil {
		return geo.BBox{}, &rcerrors.ParseError{Context: "nominatim boundingbox east", Cause: err}
	}

	return geo.BBox{
		NW: geo.Coordinate{Lat: north, Lon: west},
		SE: geo.Coordinate{Lat: south, Lon: east},
	}, nil
}
