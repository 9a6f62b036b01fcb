package render

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/afroash/rdma-viz/scene"
	"github.com/afroash/rdma-viz/timeline"
)

// A Snapshotter copies the scene state at a virtual time
type Snapshotter interface {
	Snapshot(t timeline.VTimeInSec) scene.Frame
}

// SnapshotFunc adapts a function to the Snapshotter interface
type SnapshotFunc func(t timeline.VTimeInSec) scene.Frame

// Snapshot calls f(t)
func (f SnapshotFunc) Snapshot(t timeline.VTimeInSec) scene.Frame {
	return f(t)
}

// FrameCount returns how many frames cover d at fps, both ends included
func FrameCount(d timeline.VTimeInSec, fps int) int {
	return int(math.Ceil(float64(d)*float64(fps))) + 1
}

// Exporter steps a timeline frame by frame and writes the rendered frames to
// a sink
type Exporter struct {
	fps    int
	raster *Rasterizer
	sink   Sink
}

// NewExporter creates an exporter
func NewExporter(fps int, raster *Rasterizer, sink Sink) *Exporter {
	return &Exporter{fps: fps, raster: raster, sink: sink}
}

// Export starts tl and renders it until its end. It stops at the first
// engine, sink or context error. The sink is not closed.
func (e *Exporter) Export(
	ctx context.Context,
	engine timeline.Engine,
	tl *timeline.Timeline,
	src Snapshotter,
) error {
	if e.fps <= 0 {
		return fmt.Errorf("invalid frame rate %d", e.fps)
	}
	if err := tl.Start(); err != nil {
		return err
	}

	start := engine.CurrentTime()
	end := start + tl.Duration()
	n := FrameCount(tl.Duration(), e.fps)

	log.WithFields(log.Fields{
		"frames":   n,
		"fps":      e.fps,
		"duration": float64(tl.Duration()),
	}).Info("export started")

	for k := 0; k < n; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		t := start + timeline.VTimeInSec(float64(k)/float64(e.fps))
		if t > end {
			t = end
		}
		if err := engine.RunUntil(t); err != nil {
			return fmt.Errorf("advancing to %.3fs: %w", float64(t), err)
		}
		tl.Sample(t)

		img := e.raster.Draw(src.Snapshot(t))
		if err := e.sink.WriteFrame(img); err != nil {
			return fmt.Errorf("writing frame %d: %w", k, err)
		}

		if k > 0 && k%e.fps == 0 {
			log.WithFields(log.Fields{"frame": k, "of": n}).Info("export progress")
		}
	}

	log.WithField("frames", n).Info("export finished")
	return nil
}
