package radar

import (
	"image"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/walkthru-earth/radarcast/internal/geo"
	"github.com/walkthru-earth/radarcast/internal/radarcatalog"
)

// boundaryEpsilon is how close |g(x,y)| must be to zero for a
// candidate longitude to count as an actual ownership boundary
// crossing, rather than floating-point noise around a root that
// isn't really there.
const boundaryEpsilon = 1e-10

// Canvas is the shared output image every station's goroutine writes
// into. A mutex serializes writes rather than partitioning the image,
// since ownership boundaries (not row order) are what must be
// serialized and a station's ownership region is an irregular,
// possibly disjoint set of pixels.
type Canvas struct {
	mu  sync.Mutex
	img *image.NRGBA
}

// NewCanvas allocates a fully transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the underlying image. Callers must not write to it
// concurrently with an in-flight Render.
func (c *Canvas) Image() *image.NRGBA { return c.img }

type pixelWrite struct {
	x, y int
	col  color.NRGBA
}

func (c *Canvas) applyBatch(batch []pixelWrite) {
	if len(batch) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range batch {
		c.img.SetNRGBA(w.x, w.y, w.col)
	}
}

// StationImage pairs a catalog station with its decoded source frame.
type StationImage struct {
	Station radarcatalog.Station
	Image   image.Image
}

// Render composites every station's frame onto a canvasWidth x
// canvasHeight canvas covering bounds, one goroutine per station
// sharing a mutex-guarded Canvas, and returns the codes of stations
// that actually contributed at least one pixel (a station can pass
// the catalog's coarse viewport check and still end up contributing
// nothing once per-pixel ownership arbitration runs).
func Render(bounds geo.BBox, canvasWidth, canvasHeight int, stationImages []StationImage) (*Canvas, []string) {
	canvas := NewCanvas(canvasWidth, canvasHeight)

	stations := make([]station, len(stationImages))
	for i, si := range stationImages {
		stations[i] = newStation(si.Station, si.Image)
	}

	used := make([]bool, len(stations))
	var wg sync.WaitGroup
	for i := range stations {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			used[i] = renderStation(stations[i], stations, bounds, canvasWidth, canvasHeight, canvas)
		}(i)
	}
	wg.Wait()

	var usedCodes []string
	for i, u := range used {
		if u {
			usedCodes = append(usedCodes, stations[i].code)
		}
	}
	return canvas, usedCodes
}

func renderStation(self station, all []station, bounds geo.BBox, canvasWidth, canvasHeight int, canvas *Canvas) bool {
	ib, ok := cropToBounds(self, bounds)
	if !ok {
		return false
	}

	imgBounds := self.image.Bounds()
	imgW, imgH := imgBounds.Dx(), imgBounds.Dy()
	overlayLonSpan := self.overlaySE.Lon - self.overlayNW.Lon
	overlayLatSpan := self.overlayNW.Lat - self.overlaySE.Lat
	if overlayLonSpan <= 0 || overlayLatSpan <= 0 || imgW == 0 || imgH == 0 {
		return false
	}

	widthRelBoundsLonDist := float64(canvasWidth) / bounds.Width()
	boundsLatDistRelCvHeight := bounds.Height() / float64(canvasHeight)
	widthRelNativeImLonDist := float64(imgW) / overlayLonSpan
	heightRelNativeImLatDist := float64(imgH) / overlayLatSpan

	rowStart := int(geo.ConsiderateFloor((bounds.NW.Lat - ib.nw.Lat) / boundsLatDistRelCvHeight))
	rowEnd := int(geo.ConsiderateFloor((bounds.NW.Lat - ib.se.Lat) / boundsLatDistRelCvHeight))
	if rowStart < 0 {
		rowStart = 0
	}
	if rowEnd > canvasHeight {
		rowEnd = canvasHeight
	}

	overlapping := overlappingStations(self, all)

	isUsed := false
	for y := rowStart; y < rowEnd; y++ {
		latitude := bounds.NW.Lat - (float64(y)+0.5)*boundsLatDistRelCvHeight

		own := qxCirc(self, self.radiusDeg, latitude)
		if !own.ok {
			continue
		}

		candidates := []float64{own.x1, own.x2}
		for _, other := range overlapping {
			if other.priority == self.priority {
				if r := qxHalfDist(self, other, latitude); r.ok {
					candidates = append(candidates, r.x1, r.x2)
				}
			}
			if other.priority >= self.priority {
				if r := qxCirc(other, other.radiusDeg, latitude); r.ok {
					candidates = append(candidates, r.x1, r.x2)
				}
			}
		}

		bounds2 := make([]float64, 0, len(candidates))
		for _, c := range candidates {
			g := math.Max(qInside(self, self.radiusDeg, c, latitude), minQ1Q2(self, overlapping, c, latitude))
			if math.Abs(g) < boundaryEpsilon {
				bounds2 = append(bounds2, c)
			}
		}
		sort.Float64s(bounds2)

		posYOnRadar := int(geo.ConsiderateFloor((self.overlayNW.Lat - latitude) * heightRelNativeImLatDist))
		if posYOnRadar < 0 || posYOnRadar >= imgH {
			continue
		}

		var batch []pixelWrite
		for i := 0; i < len(bounds2); i += 2 {
			intervalStart := bounds2[i]
			intervalEnd := ib.se.Lon
			if i+1 < len(bounds2) {
				intervalEnd = bounds2[i+1]
			}

			if intervalEnd < ib.nw.Lon || intervalStart > ib.se.Lon {
				continue
			}
			if intervalStart < ib.nw.Lon {
				intervalStart = ib.nw.Lon
			}
			if intervalEnd > ib.se.Lon {
				intervalEnd = ib.se.Lon
			}

			canvasColStart := int((intervalStart - bounds.NW.Lon) * widthRelBoundsLonDist)
			canvasColEnd := int((intervalEnd - bounds.NW.Lon) * widthRelBoundsLonDist)
			if canvasColStart < 0 {
				canvasColStart = 0
			}
			if canvasColEnd > canvasWidth {
				canvasColEnd = canvasWidth
			}

			for x := canvasColStart; x < canvasColEnd; x++ {
				if self.striped && (x+y)%8 > 2 {
					continue
				}

				lon := float64(x)/widthRelBoundsLonDist + bounds.NW.Lon
				posXOnRadar := int((lon - self.overlayNW.Lon) * widthRelNativeImLonDist)
				if posXOnRadar < 0 || posXOnRadar >= imgW {
					continue
				}

				srcColor := color.NRGBAModel.Convert(self.image.At(imgBounds.Min.X+posXOnRadar, imgBounds.Min.Y+posYOnRadar)).(color.NRGBA)
				if srcColor.A == 0 {
					continue
				}
				remapped := remapToUnifiedScheme(srcColor, self.legends)
				if remapped.A == 0 {
					continue
				}
				batch = append(batch, pixelWrite{x: x, y: y, col: remapped})
				isUsed = true
			}
		}
		canvas.applyBatch(batch)
	}

	return isUsed
}
