package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/browser"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/afroash/rdma-viz/choreo"
	"github.com/afroash/rdma-viz/config"
	"github.com/afroash/rdma-viz/render"
	"github.com/afroash/rdma-viz/timeline"
	"github.com/afroash/rdma-viz/trace"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the animation to a GIF or a PNG frame sequence.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return renderScene(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	f := renderCmd.Flags()
	f.StringVarP(&flags.quality, "quality", "q", "m", "quality preset: l, m or h")
	f.StringVarP(&flags.output, "output", "o", "", "output GIF file or PNG directory")
	f.StringVar(&flags.format, "format", render.FormatGIF, "output format: gif or png")
	f.BoolVarP(&flags.preview, "preview", "p", false, "open the result when done")
}

// newTraceWriter opens the trace database when one is configured
func newTraceWriter(cfg config.Config) (*trace.SQLiteTraceWriter, error) {
	if cfg.TraceDB == "" {
		return nil, nil
	}
	w := trace.NewSQLiteTraceWriter(cfg.TraceDB)
	if err := w.Init(); err != nil {
		return nil, fmt.Errorf("opening trace database: %w", err)
	}
	return w, nil
}

func renderScene(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	engine := timeline.NewSerialEngine()
	s, err := choreo.Build(engine)
	if err != nil {
		return err
	}
	s.Timeline.AcceptHook(timeline.NewLogHook(nil))

	tw, err := newTraceWriter(cfg)
	if err != nil {
		return err
	}
	if tw != nil {
		defer tw.Close()
		s.Timeline.AcceptHook(trace.NewRecorder("render", tw))
	}

	out := cfg.OutputPath()
	sink, err := render.NewSink(cfg.Format, out, cfg.FPS)
	if err != nil {
		return err
	}

	exporter := render.NewExporter(cfg.FPS, render.NewRasterizer(cfg.Width, cfg.Height), sink)
	if err := exporter.Export(ctx, engine, s.Timeline, s); err != nil {
		sink.Close()
		return fmt.Errorf("rendering %s: %w", out, err)
	}
	if err := sink.Close(); err != nil {
		return fmt.Errorf("finishing %s: %w", out, err)
	}

	log.WithFields(log.Fields{
		"output":  out,
		"quality": cfg.Quality,
		"size":    fmt.Sprintf("%dx%d@%d", cfg.Width, cfg.Height, cfg.FPS),
	}).Info("render complete")

	if cfg.Preview {
		target := out
		if cfg.Format == render.FormatPNG {
			target = filepath.Join(out, "frame_00000.png")
		}
		if err := browser.OpenFile(target); err != nil {
			log.WithError(err).Warn("could not open preview")
		}
	}
	return nil
}
