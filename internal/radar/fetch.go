package radar

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/walkthru-earth/radarcast/internal/httpclient"
	"github.com/walkthru-earth/radarcast/internal/radarcatalog"
	"github.com/walkthru-earth/radarcast/internal/rcerrors"
)

// fetchFrames downloads every station's latest frame concurrently,
// one goroutine per station: there are never more than a few dozen
// stations, so an unbounded fan-out is simpler than a worker pool.
// A station whose frame fails to fetch or decode is dropped from the
// result rather than failing the whole render.
func fetchFrames(ctx context.Context, timeout time.Duration, stations []radarcatalog.Station) []StationImage {
	client := httpclient.New(timeout, true)

	var wg sync.WaitGroup
	results := make([]StationImage, len(stations))
	ok := make([]bool, len(stations))

	for i, st := range stations {
		wg.Add(1)
		go func(i int, st radarcatalog.Station) {
			defer wg.Done()
			img, err := fetchFrame(ctx, client, st.FrameURL, st.Code)
			if err != nil {
				return
			}
			results[i] = StationImage{Station: st, Image: img}
			ok[i] = true
		}(i, st)
	}
	wg.Wait()

	out := make([]StationImage, 0, len(stations))
	for i, v := range ok {
		if v {
			out = append(out, results[i])
		}
	}
	return out
}

func fetchFrame(ctx context.Context, client *http.Client, frameURL, code string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpclient.AutoProxy(frameURL), nil)
	if err != nil {
		return nil, fmt.Errorf("building frame request for %s: %w", code, err)
	}
	httpclient.ApplyFakeHeaders(req, "")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &rcerrors.ConnectionError{Host: "radar frame " + code, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &rcerrors.HTTPStatusError{Host: "radar frame " + code, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading frame body for %s: %w", code, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &rcerrors.ImageDecodeError{Source: code, Cause: err}
	}
	return img, nil
}
