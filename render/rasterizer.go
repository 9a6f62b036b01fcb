package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/afroash/rdma-viz/geom"
	"github.com/afroash/rdma-viz/scene"
)

const (
	circleSegments = 32
	cornerSegments = 6
)

// Rasterizer paints scene frames into RGBA images of a fixed size
type Rasterizer struct {
	width, height int
	background    color.NRGBA

	z    *vector.Rasterizer
	text *textPainter
}

// NewRasterizer creates a rasterizer for width x height pixel frames
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:      width,
		height:     height,
		background: scene.Background,
		z:          vector.NewRasterizer(width, height),
		text:       newTextPainter(),
	}
}

// Size returns the output size in pixels
func (r *Rasterizer) Size() (int, int) {
	return r.width, r.height
}

// Draw renders every shape of f in order onto a fresh image
func (r *Rasterizer) Draw(f scene.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	vp := scene.Viewport{
		Width:  float64(r.width),
		Height: float64(r.height),
		Camera: f.Camera,
	}
	for _, s := range f.Shapes {
		r.drawShape(img, vp, s)
	}
	return img
}

func (r *Rasterizer) drawShape(img *image.RGBA, vp scene.Viewport, s scene.Shape) {
	if !s.Visible || s.Opacity <= 0 {
		return
	}
	fill := scene.WithAlpha(s.Fill, s.FillOpacity*s.Opacity)
	stroke := scene.WithAlpha(s.Stroke, s.StrokeOpacity*s.Opacity)
	width := vp.StrokeWidth(s.StrokeWidth)

	switch s.Kind {
	case scene.KindRect:
		outline := roundedRect(s.Center, s.Width, s.Height, s.CornerRadius)
		r.fillPolygon(img, vp, outline, fill)
		r.strokePolyline(img, vp, outline, true, width, stroke)
	case scene.KindDot:
		outline := circle(s.Center, s.Width/2)
		r.fillPolygon(img, vp, outline, fill)
		r.strokePolyline(img, vp, outline, true, width, stroke)
	case scene.KindLine, scene.KindPolyline:
		pts := s.Points.Sub(s.DrawFrom, s.DrawTo)
		closed := s.Closed && s.DrawFrom <= 0 && s.DrawTo >= 1
		r.strokePolyline(img, vp, pts, closed, width, stroke)
	case scene.KindText:
		r.text.draw(img, vp, s, fill)
	}
}

func (r *Rasterizer) fillPolygon(img *image.RGBA, vp scene.Viewport, pts []geom.Point, c color.NRGBA) {
	if c.A == 0 || len(pts) < 3 {
		return
	}
	r.z.Reset(r.width, r.height)
	r.polygon(vp, pts)
	r.z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

// strokePolyline draws segments as quads with round joins. All pieces share
// one winding so overlaps do not cancel.
func (r *Rasterizer) strokePolyline(
	img *image.RGBA,
	vp scene.Viewport,
	pts []geom.Point,
	closed bool,
	width float64,
	c color.NRGBA,
) {
	if c.A == 0 || width <= 0 || len(pts) < 2 {
		return
	}

	px := make([]geom.Point, len(pts))
	for i, p := range pts {
		x, y := vp.ToPixel(p)
		px[i] = geom.Pt(x, y)
	}
	if closed {
		px = append(px, px[0])
	}

	half := width / 2
	r.z.Reset(r.width, r.height)
	for i := 1; i < len(px); i++ {
		a, b := px[i-1], px[i]
		d := b.Sub(a)
		l := math.Hypot(d.X, d.Y)
		if l == 0 {
			continue
		}
		n := geom.Pt(-d.Y/l*half, d.X/l*half)
		r.path([]geom.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
	}
	if half >= 1 {
		for _, p := range px {
			r.path(circle(p, half))
		}
	}
	r.z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Rasterizer) polygon(vp scene.Viewport, pts []geom.Point) {
	px := make([]geom.Point, len(pts))
	for i, p := range pts {
		x, y := vp.ToPixel(p)
		px[i] = geom.Pt(x, y)
	}
	r.path(px)
}

func (r *Rasterizer) path(px []geom.Point) {
	r.z.MoveTo(float32(px[0].X), float32(px[0].Y))
	for _, p := range px[1:] {
		r.z.LineTo(float32(p.X), float32(p.Y))
	}
	r.z.ClosePath()
}

func circle(c geom.Point, radius float64) []geom.Point {
	pts := make([]geom.Point, circleSegments)
	for i := range pts {
		a := -2 * math.Pi * float64(i) / circleSegments
		pts[i] = geom.Pt(c.X+radius*math.Cos(a), c.Y+radius*math.Sin(a))
	}
	return pts
}

// roundedRect traces the outline counter-clockwise from the bottom right
// corner
func roundedRect(c geom.Point, w, h, radius float64) []geom.Point {
	radius = math.Max(0, math.Min(radius, math.Min(w, h)/2))
	hw, hh := w/2, h/2
	if radius == 0 {
		return []geom.Point{
			geom.Pt(c.X+hw, c.Y-hh),
			geom.Pt(c.X+hw, c.Y+hh),
			geom.Pt(c.X-hw, c.Y+hh),
			geom.Pt(c.X-hw, c.Y-hh),
		}
	}

	corners := []struct {
		center geom.Point
		from   float64
	}{
		{geom.Pt(c.X+hw-radius, c.Y-hh+radius), -math.Pi / 2},
		{geom.Pt(c.X+hw-radius, c.Y+hh-radius), 0},
		{geom.Pt(c.X-hw+radius, c.Y+hh-radius), math.Pi / 2},
		{geom.Pt(c.X-hw+radius, c.Y-hh+radius), math.Pi},
	}
	pts := make([]geom.Point, 0, 4*(cornerSegments+1))
	for _, k := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := k.from + math.Pi/2*float64(i)/cornerSegments
			pts = append(pts, geom.Pt(k.center.X+radius*math.Cos(a), k.center.Y+radius*math.Sin(a)))
		}
	}
	return pts
}
