package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// Output formats
const (
	FormatGIF = "gif"
	FormatPNG = "png"
)

// A Sink receives rendered frames in order
type Sink interface {
	// WriteFrame stores the next frame
	WriteFrame(img image.Image) error

	// Close finishes the artifact
	Close() error
}

// NewSink opens a sink of the given format at path. For PNG, path is the
// directory frames are written to.
func NewSink(format, path string, fps int) (Sink, error) {
	switch format {
	case FormatGIF:
		return NewGIFSink(path, fps), nil
	case FormatPNG:
		return NewPNGSink(path), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// GIFSink collects frames and encodes an animated GIF on Close
type GIFSink struct {
	path  string
	delay int
	anim  gif.GIF
}

// NewGIFSink creates a GIF sink. GIF delays are in hundredths of a second so
// high frame rates are played back slightly slower.
func NewGIFSink(path string, fps int) *GIFSink {
	delay := 1
	if fps > 0 && 100/fps > 1 {
		delay = 100 / fps
	}
	return &GIFSink{path: path, delay: delay}
}

// WriteFrame quantises img to the Plan9 palette
func (s *GIFSink) WriteFrame(img image.Image) error {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)

	s.anim.Image = append(s.anim.Image, p)
	s.anim.Delay = append(s.anim.Delay, s.delay)
	return nil
}

// Frames returns the number of frames written so far
func (s *GIFSink) Frames() int {
	return len(s.anim.Image)
}

// Close writes the GIF file
func (s *GIFSink) Close() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}

	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	return f.Close()
}

// PNGSink writes each frame as frame_00000.png, frame_00001.png, ... into a
// directory
type PNGSink struct {
	dir  string
	next int
}

// NewPNGSink creates a PNG sequence sink writing into dir
func NewPNGSink(dir string) *PNGSink {
	return &PNGSink{dir: dir}
}

// WriteFrame encodes img to the next file of the sequence
func (s *PNGSink) WriteFrame(img image.Image) error {
	if s.next == 0 {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return err
		}
	}

	name := filepath.Join(s.dir, fmt.Sprintf("frame_%05d.png", s.next))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	s.next++
	return f.Close()
}

// Close is a no-op; every frame is already on disk
func (s *PNGSink) Close() error {
	return nil
}
