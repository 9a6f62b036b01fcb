package choreo

import (
	"image/color"
	"strconv"

	"github.com/afroash/rdma-viz/geom"
	"github.com/afroash/rdma-viz/network"
	"github.com/afroash/rdma-viz/scene"
	"github.com/afroash/rdma-viz/timeline"
)

// MarkerCount is the number of packets sprayed over the network
const MarkerCount = 6

// DispersalHold is added after the slowest marker arrives
const DispersalHold timeline.VTimeInSec = 0.1

// Marker geometry in scene units
const (
	markerRadius    = 0.065
	markerLabelSize = 0.22
	markerLabelBuff = 0.1
	trailWidth      = 6
	trailOpacity    = 0.9
)

// DispersalOrder is the cycle markers take their paths from. Marker i uses
// DispersalOrder[i % len(DispersalOrder)].
var DispersalOrder = []network.PathID{
	network.PathA,
	network.PathD,
	network.PathB,
	network.PathC,
}

// Durations are the travel times of markers 1..6. They are unequal on
// purpose so that arrivals are out of order.
var Durations = []timeline.VTimeInSec{4.0, 2.6, 3.0, 3.5, 2.8, 4.2}

// Assignment is the static plan for one marker
type Assignment struct {
	Seq      int
	Path     network.PathID
	Duration timeline.VTimeInSec
	Color    color.NRGBA
}

// Assign plans the six markers
func Assign() []Assignment {
	out := make([]Assignment, MarkerCount)
	for i := range out {
		out[i] = Assignment{
			Seq:      i + 1,
			Path:     DispersalOrder[i%len(DispersalOrder)],
			Duration: Durations[i%len(Durations)],
			Color:    scene.MarkerColors[i%len(scene.MarkerColors)],
		}
	}
	return out
}

// Marker is a packet: a dot with its sequence number above it. It refers to
// its path by id; the path itself lives in the shared library.
type Marker struct {
	Assignment

	Dot   *scene.Shape
	Label *scene.Shape
	Trail *scene.Shape
}

// NewMarker places a marker at start. The trail copies the path geometry so
// the flash can be drawn independently of other markers on the same path.
func NewMarker(a Assignment, start geom.Point, path network.Path) *Marker {
	dot := scene.NewDot(start, markerRadius, a.Color)
	dot.Z = 10

	lbl := scene.NewText(strconv.Itoa(a.Seq), geom.Origin, markerLabelSize)
	lbl.Fill = a.Color
	lbl.Z = 10
	lbl.Center = dot.NextTo(geom.Up, lbl.Width, lbl.Height, markerLabelBuff)

	trail := scene.NewPolyline(path.Points)
	trail.Stroke = a.Color
	trail.StrokeWidth = trailWidth
	trail.StrokeOpacity = trailOpacity
	trail.Z = 5

	return &Marker{Assignment: a, Dot: dot, Label: lbl, Trail: trail}
}

// Group returns the dot and label as one movable unit anchored on the dot
func (m *Marker) Group() scene.Group {
	return scene.Group{m.Dot, m.Label}
}

// Position returns where the marker currently is
func (m *Marker) Position() geom.Point {
	return m.Dot.Center
}

// Arrived reports whether the marker sits on the last point of its path
func (m *Marker) Arrived(lib *network.PathLibrary) bool {
	p, ok := lib.Get(m.Path)
	if !ok {
		return false
	}
	return m.Position().Near(p.Points.End(), 1e-9)
}

// DispersalBlock moves every marker along its path, all starting together,
// with a passing flash on the same path for the same duration. The block
// lasts the slowest marker's duration plus DispersalHold.
func DispersalBlock(markers []*Marker, lib *network.PathLibrary) *timeline.Block {
	var moves, flashes []timeline.Animation
	for _, m := range markers {
		path := lib.MustGet(m.Path)
		moves = append(moves, scene.MoveAlongPath(m.Group(), path.Points, m.Duration))
		flashes = append(flashes, scene.PassingFlash(m.Trail, m.Duration))
	}
	return timeline.NewBlock("dispersal",
		timeline.All(flashes...),
		timeline.All(moves...),
	).WithHold(DispersalHold)
}
