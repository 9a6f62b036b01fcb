package network

import (
	"fmt"

	"github.com/afroash/rdma-viz/geom"
)

// HopID identifies an endpoint or a switch in the topology
type HopID string

// Endpoints and switches of the demo network
const (
	Source      HopID = "src"
	Destination HopID = "dst"
	S1          HopID = "s1"
	S2          HopID = "s2"
	S3          HopID = "s3"
	S4          HopID = "s4"
	S5          HopID = "s5"
	S6          HopID = "s6"
)

// Endpoint geometry in scene units
const (
	EndpointWidth  = 2.4
	EndpointHeight = 1.0
	// EndpointEdgeBuff is the gap between an endpoint and the frame edge
	EndpointEdgeBuff = 1.2
	SwitchSide       = 0.4
)

// Endpoint is a SuperNIC at either end of the network
type Endpoint struct {
	ID     HopID
	Label  string
	Center geom.Point
	Width  float64
	Height float64
}

// Left returns the middle of the left edge
func (e Endpoint) Left() geom.Point {
	return geom.Pt(e.Center.X-e.Width/2, e.Center.Y)
}

// Right returns the middle of the right edge
func (e Endpoint) Right() geom.Point {
	return geom.Pt(e.Center.X+e.Width/2, e.Center.Y)
}

// Node is an intermediate switch
type Node struct {
	ID       HopID
	Label    string
	Position geom.Point
}

// Left returns the middle of the switch's left edge
func (n Node) Left() geom.Point {
	return geom.Pt(n.Position.X-SwitchSide/2, n.Position.Y)
}

// Right returns the middle of the switch's right edge
func (n Node) Right() geom.Point {
	return geom.Pt(n.Position.X+SwitchSide/2, n.Position.Y)
}

// Link is an unordered, purely visual connection between two hops
type Link struct {
	A HopID
	B HopID
}

// Connects reports whether the link joins a and b, in either direction
func (l Link) Connects(a, b HopID) bool {
	return (l.A == a && l.B == b) || (l.A == b && l.B == a)
}

// Topology is the static layout: two endpoints, six switches, ten links.
type Topology struct {
	Src   Endpoint
	Dst   Endpoint
	Nodes []Node
	Links []Link
}

// NewTopology builds the fixed demo layout. Coordinates are hand placed so
// that two node-disjoint routes exist through the upper (S1-S3-S5) and lower
// (S2-S4-S6) switches plus two shortcuts (S1-S5, S2-S6).
func NewTopology() *Topology {
	endpointX := geom.FrameWidth/2 - EndpointEdgeBuff - EndpointWidth/2

	return &Topology{
		Src: Endpoint{
			ID:     Source,
			Label:  "SuperNIC\nSource",
			Center: geom.Pt(-endpointX, 0),
			Width:  EndpointWidth,
			Height: EndpointHeight,
		},
		Dst: Endpoint{
			ID:     Destination,
			Label:  "SuperNIC\nDestination",
			Center: geom.Pt(endpointX, 0),
			Width:  EndpointWidth,
			Height: EndpointHeight,
		},
		Nodes: []Node{
			{ID: S1, Label: "S1", Position: geom.Pt(-2.2, 1.4)},
			{ID: S2, Label: "S2", Position: geom.Pt(-2.2, -1.4)},
			{ID: S3, Label: "S3", Position: geom.Pt(0.0, 2.1)},
			{ID: S4, Label: "S4", Position: geom.Pt(0.0, -2.1)},
			{ID: S5, Label: "S5", Position: geom.Pt(2.2, 1.4)},
			{ID: S6, Label: "S6", Position: geom.Pt(2.2, -1.4)},
		},
		Links: []Link{
			{A: Source, B: S1},
			{A: Source, B: S2},
			{A: S1, B: S3},
			{A: S1, B: S5},
			{A: S2, B: S4},
			{A: S2, B: S6},
			{A: S3, B: S5},
			{A: S4, B: S6},
			{A: S5, B: Destination},
			{A: S6, B: Destination},
		},
	}
}

// Node looks up a switch by id
func (t *Topology) Node(id HopID) (Node, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// HasLink reports whether a link joins a and b
func (t *Topology) HasLink(a, b HopID) bool {
	for _, l := range t.Links {
		if l.Connects(a, b) {
			return true
		}
	}
	return false
}

// Anchor returns the point a marker passes through at hop id: the facing
// edge for endpoints and the centre for switches.
func (t *Topology) Anchor(id HopID) (geom.Point, error) {
	switch id {
	case Source:
		return t.Src.Right(), nil
	case Destination:
		return t.Dst.Left(), nil
	}
	n, ok := t.Node(id)
	if !ok {
		return geom.Origin, fmt.Errorf("%w: %q", ErrUnknownHop, id)
	}
	return n.Position, nil
}

// LinkEnds returns the drawn segment for a link. Links leave the right side
// of the left hop and enter the left side of the right hop.
func (t *Topology) LinkEnds(l Link) (geom.Point, geom.Point, error) {
	from, err := t.rightSide(l.A)
	if err != nil {
		return geom.Origin, geom.Origin, err
	}
	to, err := t.leftSide(l.B)
	if err != nil {
		return geom.Origin, geom.Origin, err
	}
	return from, to, nil
}

func (t *Topology) rightSide(id HopID) (geom.Point, error) {
	switch id {
	case Source:
		return t.Src.Right(), nil
	case Destination:
		return t.Dst.Right(), nil
	}
	n, ok := t.Node(id)
	if !ok {
		return geom.Origin, fmt.Errorf("%w: %q", ErrUnknownHop, id)
	}
	return n.Right(), nil
}

func (t *Topology) leftSide(id HopID) (geom.Point, error) {
	switch id {
	case Source:
		return t.Src.Left(), nil
	case Destination:
		return t.Dst.Left(), nil
	}
	n, ok := t.Node(id)
	if !ok {
		return geom.Origin, fmt.Errorf("%w: %q", ErrUnknownHop, id)
	}
	return n.Left(), nil
}
