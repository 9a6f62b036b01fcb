// Package config holds the render and playback settings of rdmaviz.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/afroash/rdma-viz/render"
)

var (
	// ErrUnknownQuality is returned for a quality that has no preset
	ErrUnknownQuality = errors.New("unknown quality")
	// ErrUnknownFormat is returned for an output format no sink writes
	ErrUnknownFormat = errors.New("unknown output format")
)

// Environment variables read by FromEnv
const (
	EnvQuality  = "RDMAVIZ_QUALITY"
	EnvOutput   = "RDMAVIZ_OUTPUT"
	EnvFormat   = "RDMAVIZ_FORMAT"
	EnvPreview  = "RDMAVIZ_PREVIEW"
	EnvTraceDB  = "RDMAVIZ_TRACE_DB"
	EnvLogLevel = "RDMAVIZ_LOG_LEVEL"
	EnvSpeed    = "RDMAVIZ_SPEED"
)

// Quality names a resolution and frame rate preset
type Quality string

// Quality presets
const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Preset is the output size and rate of a quality
type Preset struct {
	Width  int
	Height int
	FPS    int
}

var presets = map[Quality]Preset{
	QualityLow:    {Width: 854, Height: 480, FPS: 15},
	QualityMedium: {Width: 1280, Height: 720, FPS: 30},
	QualityHigh:   {Width: 1920, Height: 1080, FPS: 60},
}

// PresetFor returns the preset of q
func PresetFor(q Quality) (Preset, error) {
	p, ok := presets[q]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownQuality, q)
	}
	return p, nil
}

// ParseQuality accepts full names and the l/m/h shorthands
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return QualityLow, nil
	case "m", "medium":
		return QualityMedium, nil
	case "h", "high":
		return QualityHigh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuality, s)
}

// Config is the full set of settings
type Config struct {
	Quality Quality
	Width   int
	Height  int
	FPS     int

	// Output is the GIF file or PNG directory. Empty picks a default next to
	// the working directory.
	Output  string
	Format  string
	Preview bool
	TraceDB string

	LogLevel log.Level
	// Speed scales wall time in the live player
	Speed float64
}

// Default returns medium quality GIF output at normal speed
func Default() Config {
	c := Config{
		Format:   render.FormatGIF,
		LogLevel: log.InfoLevel,
		Speed:    1,
	}
	c.apply(QualityMedium)
	return c
}

func (c *Config) apply(q Quality) {
	p := presets[q]
	c.Quality = q
	c.Width, c.Height, c.FPS = p.Width, p.Height, p.FPS
}

// SetQuality switches to the preset named by s
func (c *Config) SetQuality(s string) error {
	q, err := ParseQuality(s)
	if err != nil {
		return err
	}
	c.apply(q)
	return nil
}

// FromEnv starts from Default, loads .env style files (a missing file is
// fine) and applies the RDMAVIZ_* variables. With no files, ./.env is tried.
func FromEnv(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}

	c := Default()

	if v, ok := os.LookupEnv(EnvQuality); ok {
		if err := c.SetQuality(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvQuality, err)
		}
	}
	if v, ok := os.LookupEnv(EnvOutput); ok {
		c.Output = v
	}
	if v, ok := os.LookupEnv(EnvFormat); ok {
		c.Format = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvPreview); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvPreview, err)
		}
		c.Preview = b
	}
	if v, ok := os.LookupEnv(EnvTraceDB); ok {
		c.TraceDB = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = lvl
	}
	if v, ok := os.LookupEnv(EnvSpeed); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSpeed, err)
		}
		c.Speed = f
	}

	return c, c.Validate()
}

// Validate checks that the settings can be rendered
func (c Config) Validate() error {
	if _, err := PresetFor(c.Quality); err != nil {
		return err
	}
	switch c.Format {
	case render.FormatGIF, render.FormatPNG:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	if c.Width <= 0 || c.Height <= 0 || c.FPS <= 0 {
		return fmt.Errorf("invalid size %dx%d@%d", c.Width, c.Height, c.FPS)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", c.Speed)
	}
	return nil
}

// OutputPath returns Output, or the default artifact name for the format
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	if c.Format == render.FormatPNG {
		return "rdma_multipath_frames"
	}
	return "rdma_multipath.gif"
}
