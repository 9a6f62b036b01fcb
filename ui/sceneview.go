package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/afroash/rdma-viz/geom"
	"github.com/afroash/rdma-viz/scene"
)

// textScale converts scene text height to Fyne text size
const textScale = 0.8

// SceneView is a custom widget that draws the latest scene frame
type SceneView struct {
	widget.BaseWidget
	frame   scene.Frame
	minSize fyne.Size
}

// NewSceneView creates an empty scene view
func NewSceneView() *SceneView {
	v := &SceneView{
		frame:   scene.Frame{Camera: scene.Camera{Zoom: 1}},
		minSize: fyne.NewSize(640, 360),
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetFrame replaces the displayed frame. Call it on the UI goroutine.
func (v *SceneView) SetFrame(f scene.Frame) {
	v.frame = f
	v.Refresh()
}

// Frame returns the displayed frame
func (v *SceneView) Frame() scene.Frame {
	return v.frame
}

// MinSize returns the minimum size of the widget
func (v *SceneView) MinSize() fyne.Size {
	return v.minSize
}

// CreateRenderer creates the renderer for this widget
func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	r := &sceneViewRenderer{view: v}
	r.objects = r.createSceneObjects()
	return r
}

// sceneViewRenderer maps scene shapes to canvas objects
type sceneViewRenderer struct {
	view    *SceneView
	objects []fyne.CanvasObject
}

func (r *sceneViewRenderer) Destroy() {}

func (r *sceneViewRenderer) Layout(size fyne.Size) {
	// Objects are recreated on each refresh, no layout needed
}

func (r *sceneViewRenderer) MinSize() fyne.Size {
	return r.view.minSize
}

func (r *sceneViewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *sceneViewRenderer) Refresh() {
	r.objects = r.createSceneObjects()
	canvas.Refresh(r.view)
}

func (r *sceneViewRenderer) createSceneObjects() []fyne.CanvasObject {
	size := r.view.Size()
	if size.Width < 10 || size.Height < 10 {
		size = r.view.minSize
	}

	// Keep the 16:9 frame inside the widget, letterboxed
	w, h := float64(size.Width), float64(size.Height)
	if w/h > geom.FrameWidth/geom.FrameHeight {
		w = h * geom.FrameWidth / geom.FrameHeight
	} else {
		h = w * geom.FrameHeight / geom.FrameWidth
	}
	off := fyne.NewPos((size.Width-float32(w))/2, (size.Height-float32(h))/2)

	vp := scene.Viewport{Width: w, Height: h, Camera: r.view.frame.Camera}

	objects := make([]fyne.CanvasObject, 0, len(r.view.frame.Shapes)+1)

	bg := canvas.NewRectangle(ColorBg)
	bg.Resize(size)
	bg.Move(fyne.NewPos(0, 0))
	objects = append(objects, bg)

	for _, s := range r.view.frame.Shapes {
		objects = append(objects, shapeObjects(s, vp, off)...)
	}
	return objects
}

func toPos(vp scene.Viewport, off fyne.Position, p geom.Point) fyne.Position {
	x, y := vp.ToPixel(p)
	return fyne.NewPos(off.X+float32(x), off.Y+float32(y))
}

// shapeObjects converts one shape to the canvas objects drawing it
func shapeObjects(s scene.Shape, vp scene.Viewport, off fyne.Position) []fyne.CanvasObject {
	if !s.Visible || s.Opacity <= 0 {
		return nil
	}
	fill := scene.WithAlpha(s.Fill, s.FillOpacity*s.Opacity)
	stroke := scene.WithAlpha(s.Stroke, s.StrokeOpacity*s.Opacity)
	strokeWidth := float32(vp.StrokeWidth(s.StrokeWidth))

	switch s.Kind {
	case scene.KindRect:
		rect := canvas.NewRectangle(fill)
		rect.StrokeColor = stroke
		rect.StrokeWidth = strokeWidth
		rect.CornerRadius = float32(vp.Length(s.CornerRadius))
		place(rect, s, vp, off)
		return []fyne.CanvasObject{rect}

	case scene.KindDot:
		dot := canvas.NewCircle(fill)
		dot.StrokeColor = stroke
		if stroke.A > 0 {
			dot.StrokeWidth = strokeWidth
		}
		place(dot, s, vp, off)
		return []fyne.CanvasObject{dot}

	case scene.KindLine, scene.KindPolyline:
		pts := s.Points.Sub(s.DrawFrom, s.DrawTo)
		if s.Closed && s.DrawFrom <= 0 && s.DrawTo >= 1 && len(pts) > 0 {
			pts = append(pts, pts[0])
		}
		return segments(pts, stroke, strokeWidth, vp, off)

	case scene.KindText:
		txt := canvas.NewText(s.Text, textColor(fill))
		txt.TextSize = float32(vp.Length(s.TextSize) * textScale)
		txt.TextStyle = fyne.TextStyle{Bold: s.Bold}
		txt.Alignment = fyne.TextAlignCenter
		place(txt, s, vp, off)
		return []fyne.CanvasObject{txt}
	}
	return nil
}

// place moves obj over the shape's bounding box
func place(obj fyne.CanvasObject, s scene.Shape, vp scene.Viewport, off fyne.Position) {
	w := float32(vp.Length(s.Width))
	h := float32(vp.Length(s.Height))
	c := toPos(vp, off, s.Center)
	obj.Resize(fyne.NewSize(w, h))
	obj.Move(fyne.NewPos(c.X-w/2, c.Y-h/2))
}

func segments(pts geom.Polyline, c color.NRGBA, width float32, vp scene.Viewport, off fyne.Position) []fyne.CanvasObject {
	if len(pts) < 2 || c.A == 0 {
		return nil
	}
	objects := make([]fyne.CanvasObject, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		line := canvas.NewLine(c)
		line.Position1 = toPos(vp, off, pts[i-1])
		line.Position2 = toPos(vp, off, pts[i])
		line.StrokeWidth = width
		objects = append(objects, line)
	}
	return objects
}

func textColor(c color.NRGBA) color.Color {
	if c.A == 0 {
		return color.Transparent
	}
	return c
}
