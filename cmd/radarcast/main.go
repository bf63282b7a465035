// Command radarcast renders a composite weather-radar PNG — a map
// background with BMKG radar returns alpha-composited on top — for an
// arbitrary place name.
package main

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/posthog/posthog-go"
	"github.com/spf13/cobra"

	"github.com/walkthru-earth/radarcast/internal/appconfig"
	"github.com/walkthru-earth/radarcast/internal/compositor"
	"github.com/walkthru-earth/radarcast/internal/maptiles"
	"github.com/walkthru-earth/radarcast/internal/place"
	"github.com/walkthru-earth/radarcast/internal/radar"
	"github.com/walkthru-earth/radarcast/internal/rcerrors"
	"github.com/walkthru-earth/radarcast/internal/renderctx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output       string
		maxTiles     int
		stationsFile string
		opacity      float64
	)

	cmd := &cobra.Command{
		Use:   "radarcast <place>",
		Short: "Render a composite weather-radar PNG for a place name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], output, maxTiles, stationsFile, opacity)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "output.png", "output PNG path")
	cmd.Flags().IntVar(&maxTiles, "max-tiles", maptiles.DefaultMaxTiles, "approximate tile budget for auto zoom selection")
	cmd.Flags().StringVar(&stationsFile, "stations-file", "", "optional stations.yaml of range/priority overrides")
	cmd.Flags().Float64Var(&opacity, "opacity", 0.7, "radar overlay opacity (0..1)")

	return cmd
}

func run(ctx context.Context, placeName, output string, maxTiles int, stationsFile string, opacity float64) error {
	reqID := renderctx.NewRequestID()
	tag := reqID.Tag()

	cfg, err := appconfig.Load()
	if err != nil {
		log.Printf("%s [config] %v", tag, err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("%s [config] %v", tag, err)
		return err
	}

	log.Printf("%s [place] resolving %q", tag, placeName)
	resolver := place.NewResolver()
	bounds, err := resolver.BoundingBox(ctx, placeName)
	if err != nil {
		log.Printf("%s [place] %v", tag, err)
		return err
	}
	log.Printf("%s [place] resolved %q to bounds %+v", tag, placeName, bounds)

	mapImagery := maptiles.NewMapImagery(bounds).WithZoom(maptiles.MaxTiles(maxTiles))

	log.Printf("%s [maptiles] rendering background", tag)
	background, err := mapImagery.Render(ctx)
	if err != nil {
		log.Printf("%s [maptiles] %v", tag, err)
		return err
	}

	radarImagery := radar.NewRadarImagery(bounds).WithTimeout(20 * time.Second)
	if stationsFile != "" {
		radarImagery = radarImagery.WithOverridesFile(stationsFile)
	}

	bw, bh := background.Bounds().Dx(), background.Bounds().Dy()
	log.Printf("%s [radar] rendering overlay", tag)
	canvas, used, err := radarImagery.Render(ctx, bw, bh)
	if err != nil {
		log.Printf("%s [radar] %v", tag, err)
		return err
	}
	log.Printf("%s [radar] used stations: %v", tag, used)

	composited, err := compositor.Overlay(background, canvas.Image(), opacity)
	if err != nil {
		log.Printf("%s [compositor] %v", tag, err)
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return &rcerrors.ConfigError{Context: "creating output file", Cause: err}
	}
	defer f.Close()

	if err := png.Encode(f, composited); err != nil {
		return fmt.Errorf("encoding output PNG: %w", err)
	}
	log.Printf("%s [cmd] wrote %s", tag, output)

	capturePosthog(placeName, len(used))
	return nil
}

// capturePosthog fires an opt-in render-completion event. Telemetry
// is best-effort and never blocks or fails the render.
func capturePosthog(place string, stationCount int) {
	apiKey := os.Getenv("POSTHOG_APIKEY")
	if apiKey == "" {
		return
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://app.posthog.com"})
	if err != nil {
		return
	}
	defer client.Close()

	_ = client.Enqueue(posthog.Capture{
		DistinctId: "radarcast-cli",
		Event:      "render_completed",
		Properties: posthog.NewProperties().
			Set("place", place).
			Set("station_count", stationCount),
	})
}
