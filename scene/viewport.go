package scene

import "github.com/afroash/rdma-viz/geom"

// referenceHeight is the pixel height stroke widths are expressed for
const referenceHeight = 720.0

// Viewport maps scene units to pixels for a given output size and camera
type Viewport struct {
	Width  float64
	Height float64
	Camera Camera
}

// PixelsPerUnit returns the scale between scene units and pixels
func (v Viewport) PixelsPerUnit() float64 {
	zoom := v.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return v.Height / (geom.FrameHeight * zoom)
}

// ToPixel maps a scene point to pixel coordinates (y grows downwards)
func (v Viewport) ToPixel(p geom.Point) (float64, float64) {
	s := v.PixelsPerUnit()
	x := v.Width/2 + (p.X-v.Camera.Center.X)*s
	y := v.Height/2 - (p.Y-v.Camera.Center.Y)*s
	return x, y
}

// Length maps a scene length to pixels
func (v Viewport) Length(l float64) float64 {
	return l * v.PixelsPerUnit()
}

// StrokeWidth maps a stroke width to pixels for this output height
func (v Viewport) StrokeWidth(w float64) float64 {
	return w * v.Height / referenceHeight
}
