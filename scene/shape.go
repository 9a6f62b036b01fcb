package scene

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/afroash/rdma-viz/geom"
)

// Kind tells the renderers how to draw a Shape
type Kind int

const (
	KindRect Kind = iota
	KindLine
	KindDot
	KindText
	KindPolyline
)

// glyphAspect approximates glyph width relative to text height
const glyphAspect = 0.55

// Shape is a single drawable element. Shapes are plain values so a frame can
// be copied and handed to another goroutine.
type Shape struct {
	ID   string
	Kind Kind

	// Center places rects, dots and text. Width doubles as the dot diameter.
	Center       geom.Point
	Width        float64
	Height       float64
	CornerRadius float64

	// Points holds line (two points) and polyline geometry.
	Points geom.Polyline
	Closed bool

	Text     string
	TextSize float64
	Bold     bool

	Stroke        color.NRGBA
	StrokeWidth   float64
	StrokeOpacity float64
	Fill          color.NRGBA
	FillOpacity   float64

	// Opacity multiplies stroke and fill opacity
	Opacity float64

	// DrawFrom and DrawTo select the visible fraction of lines and polylines
	DrawFrom float64
	DrawTo   float64

	Z       int
	Visible bool
}

func newShape(kind Kind) *Shape {
	return &Shape{
		Kind:          kind,
		StrokeOpacity: 1,
		Opacity:       1,
		DrawTo:        1,
	}
}

// NewRect creates an outlined rectangle
func NewRect(center geom.Point, w, h float64) *Shape {
	s := newShape(KindRect)
	s.Center = center
	s.Width = w
	s.Height = h
	s.Stroke = White
	s.StrokeWidth = 2
	return s
}

// NewRoundedRect creates a rectangle with rounded corners
func NewRoundedRect(center geom.Point, w, h, radius float64) *Shape {
	s := NewRect(center, w, h)
	s.CornerRadius = radius
	return s
}

// NewSquare creates a square of the given side
func NewSquare(center geom.Point, side float64) *Shape {
	return NewRect(center, side, side)
}

// NewLine creates a straight segment
func NewLine(from, to geom.Point) *Shape {
	s := newShape(KindLine)
	s.Points = geom.Polyline{from, to}
	s.Stroke = White
	s.StrokeWidth = 2
	return s
}

// NewPolyline creates an open polyline
func NewPolyline(points geom.Polyline) *Shape {
	s := newShape(KindPolyline)
	s.Points = append(geom.Polyline(nil), points...)
	s.Stroke = White
	s.StrokeWidth = 2
	return s
}

// NewDot creates a filled disc
func NewDot(center geom.Point, radius float64, c color.NRGBA) *Shape {
	s := newShape(KindDot)
	s.Center = center
	s.Width = 2 * radius
	s.Height = 2 * radius
	s.Fill = c
	s.FillOpacity = 1
	s.StrokeOpacity = 0
	return s
}

// NewText creates a text label; size is the line height in scene units
func NewText(text string, center geom.Point, size float64) *Shape {
	s := newShape(KindText)
	s.Text = text
	s.Center = center
	s.TextSize = size
	s.Fill = White
	s.FillOpacity = 1
	s.StrokeOpacity = 0
	s.Width, s.Height = textExtent(text, size)
	return s
}

func textExtent(text string, size float64) (float64, float64) {
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return float64(longest) * size * glyphAspect, float64(len(lines)) * size
}

// Lines splits the text of a text shape
func (s Shape) Lines() []string {
	return strings.Split(s.Text, "\n")
}

// Anchor returns the reference point used when moving the shape
func (s Shape) Anchor() geom.Point {
	switch s.Kind {
	case KindLine, KindPolyline:
		lo, hi := geom.Bounds(s.Points)
		return lo.Lerp(hi, 0.5)
	default:
		return s.Center
	}
}

// Bounds returns the lower-left and upper-right corners of the shape
func (s Shape) Bounds() (geom.Point, geom.Point) {
	switch s.Kind {
	case KindLine, KindPolyline:
		return geom.Bounds(s.Points)
	default:
		half := geom.Pt(s.Width/2, s.Height/2)
		return s.Center.Sub(half), s.Center.Add(half)
	}
}

// Edge returns the middle of the shape's bounding box side facing dir
func (s Shape) Edge(dir geom.Point) geom.Point {
	lo, hi := s.Bounds()
	c := lo.Lerp(hi, 0.5)
	switch {
	case dir.X > 0:
		return geom.Pt(hi.X, c.Y)
	case dir.X < 0:
		return geom.Pt(lo.X, c.Y)
	case dir.Y > 0:
		return geom.Pt(c.X, hi.Y)
	case dir.Y < 0:
		return geom.Pt(c.X, lo.Y)
	}
	return c
}

// Translated returns a copy moved by d
func (s Shape) Translated(d geom.Point) Shape {
	s.Center = s.Center.Add(d)
	if s.Points != nil {
		s.Points = s.Points.Translate(d)
	}
	return s
}

// Translate moves the shape in place
func (s *Shape) Translate(d geom.Point) {
	*s = s.Translated(d)
}

// Scaled returns a copy scaled by f about c
func (s Shape) Scaled(c geom.Point, f float64) Shape {
	s.Center = c.Add(s.Center.Sub(c).Scale(f))
	s.Width *= f
	s.Height *= f
	s.CornerRadius *= f
	s.TextSize *= f
	if s.Points != nil {
		pts := make(geom.Polyline, len(s.Points))
		for i, p := range s.Points {
			pts[i] = c.Add(p.Sub(c).Scale(f))
		}
		s.Points = pts
	}
	return s
}

// NextTo returns the centre that places a w x h box beside the shape in
// direction dir with the given gap.
func (s Shape) NextTo(dir geom.Point, w, h, buff float64) geom.Point {
	edge := s.Edge(dir)
	switch {
	case dir.X > 0:
		return edge.Add(geom.Pt(buff+w/2, 0))
	case dir.X < 0:
		return edge.Sub(geom.Pt(buff+w/2, 0))
	case dir.Y > 0:
		return edge.Add(geom.Pt(0, buff+h/2))
	case dir.Y < 0:
		return edge.Sub(geom.Pt(0, buff+h/2))
	}
	return edge
}

// Copy returns a deep copy
func (s Shape) Copy() Shape {
	if s.Points != nil {
		s.Points = append(geom.Polyline(nil), s.Points...)
	}
	return s
}
