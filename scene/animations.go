package scene

import (
	"github.com/afroash/rdma-viz/geom"
	"github.com/afroash/rdma-viz/timeline"
)

// FlashWidth is the fraction of a path lit by a passing flash
const FlashWidth = 0.25

// FadeIn reveals shapes while sliding them by shift into place
func FadeIn(shapes []*Shape, shift geom.Point, d timeline.VTimeInSec) *timeline.Tween {
	bases := make([]Shape, len(shapes))
	return timeline.NewTween("FadeIn", d, timeline.Smooth, func(alpha float64) {
		for i, s := range shapes {
			*s = bases[i].Translated(shift.Scale(alpha - 1))
			s.Opacity = bases[i].Opacity * alpha
			s.Visible = true
		}
	}).OnBegin(func() {
		for i, s := range shapes {
			bases[i] = s.Copy()
			s.Visible = true
		}
	})
}

// FadeOut hides shapes while sliding them by shift
func FadeOut(shapes []*Shape, shift geom.Point, d timeline.VTimeInSec) *timeline.Tween {
	bases := make([]Shape, len(shapes))
	return timeline.NewTween("FadeOut", d, timeline.Smooth, func(alpha float64) {
		for i, s := range shapes {
			*s = bases[i].Translated(shift.Scale(alpha))
			s.Opacity = bases[i].Opacity * (1 - alpha)
			s.Visible = alpha < 1
		}
	}).OnBegin(func() {
		for i, s := range shapes {
			bases[i] = s.Copy()
		}
	})
}

// Create draws lines and polylines on from their first point. Other shapes
// fade in.
func Create(shapes []*Shape, d timeline.VTimeInSec) *timeline.Tween {
	baseOpacity := make([]float64, len(shapes))
	return timeline.NewTween("Create", d, timeline.Smooth, func(alpha float64) {
		for i, s := range shapes {
			switch s.Kind {
			case KindLine, KindPolyline:
				s.DrawFrom = 0
				s.DrawTo = alpha
			default:
				s.Opacity = baseOpacity[i] * alpha
			}
		}
	}).OnBegin(func() {
		for i, s := range shapes {
			baseOpacity[i] = s.Opacity
			s.Visible = true
		}
	})
}

// GrowFromCenter scales shapes up from their common centre
func GrowFromCenter(shapes []*Shape, d timeline.VTimeInSec) *timeline.Tween {
	bases := make([]Shape, len(shapes))
	var center geom.Point
	return timeline.NewTween("GrowFromCenter", d, timeline.Smooth, func(alpha float64) {
		for i, s := range shapes {
			*s = bases[i].Scaled(center, alpha)
			s.Visible = true
		}
	}).OnBegin(func() {
		for i, s := range shapes {
			bases[i] = s.Copy()
			s.Visible = true
		}
		center = Group(shapes).Center()
	})
}

// Show makes shapes visible at once
func Show(shapes ...*Shape) *timeline.Tween {
	return timeline.NewTween("Show", 0, timeline.Linear, func(float64) {
		Group(shapes).Show()
	}).OnBegin(func() { Group(shapes).Show() })
}

// MoveTo moves a group so that its anchor ends at target
func MoveTo(g Group, target geom.Point, d timeline.VTimeInSec) *timeline.Tween {
	var start geom.Point
	return timeline.NewTween("MoveTo", d, timeline.Smooth, func(alpha float64) {
		g.MoveTo(start.Lerp(target, alpha))
	}).OnBegin(func() {
		start = g.Anchor()
	})
}

// MoveAlongPath moves a group's anchor along path at constant speed
func MoveAlongPath(g Group, path geom.Polyline, d timeline.VTimeInSec) *timeline.Tween {
	return timeline.NewTween("MoveAlongPath", d, timeline.Linear, func(alpha float64) {
		g.MoveTo(path.PointAt(alpha))
	})
}

// PassingFlash lights a window of FlashWidth travelling along trail. The
// trail is visible only while the window overlaps it.
func PassingFlash(trail *Shape, d timeline.VTimeInSec) *timeline.Tween {
	return timeline.NewTween("PassingFlash", d, timeline.Linear, func(alpha float64) {
		head := alpha * (1 + FlashWidth)
		tail := head - FlashWidth
		trail.DrawFrom = clamp01(tail)
		trail.DrawTo = clamp01(head)
		trail.Visible = alpha > 0 && alpha < 1
	})
}

// StrokeFade moves a shape's stroke opacity to target
func StrokeFade(s *Shape, target float64, d timeline.VTimeInSec) *timeline.Tween {
	var start float64
	return timeline.NewTween("StrokeFade", d, timeline.Smooth, func(alpha float64) {
		s.StrokeOpacity = start + (target-start)*alpha
	}).OnBegin(func() {
		start = s.StrokeOpacity
	})
}

// CameraMove pans and zooms the camera
func CameraMove(cam *Camera, center geom.Point, zoom float64, d timeline.VTimeInSec) *timeline.Tween {
	var from Camera
	return timeline.NewTween("CameraMove", d, timeline.Smooth, func(alpha float64) {
		cam.Center = from.Center.Lerp(center, alpha)
		cam.Zoom = from.Zoom + (zoom-from.Zoom)*alpha
	}).OnBegin(func() {
		from = *cam
	})
}

// CellTween drives a cell from its current value to target
func CellTween(c *Cell, target float64, d timeline.VTimeInSec, ease timeline.Easing) *timeline.Tween {
	var start float64
	return timeline.NewTween("CellTween", d, ease, func(alpha float64) {
		c.Set(start + (target-start)*alpha)
	}).OnBegin(func() {
		start = c.Get()
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
