package scene

import (
	"sort"

	"github.com/rs/xid"

	"github.com/afroash/rdma-viz/geom"
)

// Camera chooses which part of the scene is visible. Zoom > 1 shows more.
type Camera struct {
	Center geom.Point
	Zoom   float64
}

// Frame is a copied, render-ready view of the scene at one instant
type Frame struct {
	Time   float64
	Phase  string
	Camera Camera
	Shapes []Shape
}

// Graph owns every shape of a scene. It is not safe for concurrent use; other
// goroutines should work on Snapshot copies.
type Graph struct {
	shapes map[string]*Shape
	order  []string
	camera Camera
}

// NewGraph creates an empty scene with the camera at the origin
func NewGraph() *Graph {
	return &Graph{
		shapes: make(map[string]*Shape),
		camera: Camera{Zoom: 1},
	}
}

// Add registers shapes. Shapes without an ID get one. Added shapes stay
// hidden until an animation or Show reveals them.
func (g *Graph) Add(shapes ...*Shape) {
	for _, s := range shapes {
		if s.ID == "" {
			s.ID = xid.New().String()
		}
		if _, ok := g.shapes[s.ID]; !ok {
			g.order = append(g.order, s.ID)
		}
		g.shapes[s.ID] = s
	}
}

// Get returns the shape registered under id
func (g *Graph) Get(id string) (*Shape, bool) {
	s, ok := g.shapes[id]
	return s, ok
}

// Len returns the number of registered shapes
func (g *Graph) Len() int {
	return len(g.order)
}

// Camera returns the scene camera for animations to move
func (g *Graph) Camera() *Camera {
	return &g.camera
}

// Snapshot copies the visible shapes, ordered by Z then insertion order
func (g *Graph) Snapshot(t float64) Frame {
	shapes := make([]Shape, 0, len(g.order))
	for _, id := range g.order {
		s := g.shapes[id]
		if !s.Visible {
			continue
		}
		shapes = append(shapes, s.Copy())
	}
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].Z < shapes[j].Z
	})
	return Frame{Time: t, Camera: g.camera, Shapes: shapes}
}

// Group moves and fades several shapes as one unit. The first member is the
// anchor used for positioning.
type Group []*Shape

// Anchor returns the anchor member's reference point
func (gr Group) Anchor() geom.Point {
	if len(gr) == 0 {
		return geom.Origin
	}
	return gr[0].Anchor()
}

// Translate moves every member by d
func (gr Group) Translate(d geom.Point) {
	for _, s := range gr {
		s.Translate(d)
	}
}

// MoveTo places the anchor at p
func (gr Group) MoveTo(p geom.Point) {
	gr.Translate(p.Sub(gr.Anchor()))
}

// Show makes every member visible
func (gr Group) Show() {
	for _, s := range gr {
		s.Visible = true
	}
}

// Bounds returns the box enclosing all members
func (gr Group) Bounds() (geom.Point, geom.Point) {
	pts := make([]geom.Point, 0, 2*len(gr))
	for _, s := range gr {
		lo, hi := s.Bounds()
		pts = append(pts, lo, hi)
	}
	return geom.Bounds(pts)
}

// Center returns the centre of the group's bounding box
func (gr Group) Center() geom.Point {
	lo, hi := gr.Bounds()
	return lo.Lerp(hi, 0.5)
}
