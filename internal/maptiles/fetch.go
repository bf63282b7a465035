package maptiles

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/walkthru-earth/radarcast/internal/httpclient"
)

// defaultWorkers bounds how many tiles are fetched concurrently for a
// single render: a bounded channel of work handed to a fixed pool of
// goroutines, with a WaitGroup and an atomic progress counter.
const defaultWorkers = 8

type tileResult struct {
	pos  TilePos
	img  image.Image
	err  error
}

// fetcher fetches and caches individual map tiles.
type fetcher struct {
	client *http.Client
	cache  *diskCache
	style  MapStyle
}

func newFetcher(style MapStyle, timeout time.Duration) *fetcher {
	return &fetcher{
		client: httpclient.New(timeout, false),
		cache:  newDiskCache(),
		style:  style,
	}
}

func (f *fetcher) fetchOne(ctx context.Context, pos TilePos) (image.Image, error) {
	tileURL := f.style.tileURL(pos.Z, pos.X, pos.Y)

	if cached, ok := f.cache.Get(tileURL); ok {
		img, _, err := image.Decode(bytes.NewReader(cached))
		if err == nil {
			return img, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpclient.AutoProxy(tileURL), nil)
	if err != nil {
		return nil, fmt.Errorf("building tile request: %w", err)
	}
	httpclient.ApplyFakeHeaders(req, "https://www.openstreetmap.org/")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tile %d/%d/%d: %w", pos.Z, pos.X, pos.Y, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile.thunderforest.com responded %d for %d/%d/%d", resp.StatusCode, pos.Z, pos.X, pos.Y)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading tile body: %w", err)
	}
	_ = f.cache.Set(tileURL, data)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding tile image: %w", err)
	}
	return img, nil
}

// fetchAndStitch downloads every tile in meta concurrently and draws
// them into one RGBA canvas, worker-pool style: a bounded set of
// goroutines pull from a shared channel and an atomic counter tracks
// progress.
func fetchAndStitch(ctx context.Context, f *fetcher, meta CanvasMeta) (image.Image, error) {
	tiles := meta.Tiles()
	if len(tiles) == 0 {
		return nil, fmt.Errorf("no tiles to fetch")
	}

	tileChan := make(chan TilePos, len(tiles))
	resultChan := make(chan tileResult, len(tiles))

	workers := defaultWorkers
	if len(tiles) < workers {
		workers = len(tiles)
	}

	var wg sync.WaitGroup
	var fetched int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range tileChan {
				img, err := f.fetchOne(ctx, pos)
				resultChan <- tileResult{pos: pos, img: img, err: err}
				atomic.AddInt64(&fetched, 1)
			}
		}()
	}

	go func() {
		for _, t := range tiles {
			tileChan <- t
		}
		close(tileChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	minCol, minRow := meta.GridOrigin()
	b := meta.tileBounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Cols()*TileDimension, b.Rows()*TileDimension))

	var firstErr error
	for result := range resultChan {
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		xOffset := (result.pos.Col - minCol) * TileDimension
		yOffset := (result.pos.Y - minRow) * TileDimension
		destRect := image.Rect(xOffset, yOffset, xOffset+TileDimension, yOffset+TileDimension)
		draw.Draw(canvas, destRect, result.img, image.Point{}, draw.Src)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return canvas, nil
}
