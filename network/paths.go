package network

import (
	"errors"
	"fmt"

	"github.com/afroash/rdma-viz/geom"
)

var (
	// ErrUnknownHop is returned when a path names a hop the topology lacks
	ErrUnknownHop = errors.New("unknown hop")
	// ErrUnlinkedHop is returned when two consecutive path hops have no link
	ErrUnlinkedHop = errors.New("path hop has no drawn link")
	// ErrPathEnds is returned when a path does not run from source to destination
	ErrPathEnds = errors.New("path does not join the endpoints")
)

// PathID names one of the reusable routes
type PathID string

const (
	PathA PathID = "A" // S1 -> S3 -> S5
	PathB PathID = "B" // S1 -> S5
	PathC PathID = "C" // S2 -> S4 -> S6
	PathD PathID = "D" // S2 -> S6
)

// Path is an ordered hop list from the source to the destination together
// with the polyline a marker travels along.
type Path struct {
	ID     PathID
	Hops   []HopID
	Points geom.Polyline
}

// PathLibrary is the immutable registry markers refer into by PathID.
type PathLibrary struct {
	order []PathID
	paths map[PathID]Path
}

// defaultRoutes are the hand-authored hop lists, source and destination
// implied.
var defaultRoutes = []struct {
	id   PathID
	hops []HopID
}{
	{PathA, []HopID{S1, S3, S5}},
	{PathB, []HopID{S1, S5}},
	{PathC, []HopID{S2, S4, S6}},
	{PathD, []HopID{S2, S6}},
}

// NewPathLibrary resolves the four demo routes against the topology and
// validates every hop against the drawn links.
func NewPathLibrary(t *Topology) (*PathLibrary, error) {
	lib := &PathLibrary{paths: make(map[PathID]Path, len(defaultRoutes))}

	for _, r := range defaultRoutes {
		hops := make([]HopID, 0, len(r.hops)+2)
		hops = append(hops, Source)
		hops = append(hops, r.hops...)
		hops = append(hops, Destination)

		p, err := ResolvePath(t, r.id, hops)
		if err != nil {
			return nil, err
		}
		lib.order = append(lib.order, r.id)
		lib.paths[r.id] = p
	}

	if err := ValidatePaths(t, lib.All()); err != nil {
		return nil, err
	}
	return lib, nil
}

// ResolvePath turns a hop list into a Path using the topology anchors
func ResolvePath(t *Topology, id PathID, hops []HopID) (Path, error) {
	points := make(geom.Polyline, 0, len(hops))
	for _, h := range hops {
		p, err := t.Anchor(h)
		if err != nil {
			return Path{}, fmt.Errorf("path %s: %w", id, err)
		}
		points = append(points, p)
	}
	return Path{ID: id, Hops: hops, Points: points}, nil
}

// ValidatePaths checks that each path runs from the source to the
// destination and that every consecutive hop pair is a drawn link.
func ValidatePaths(t *Topology, paths []Path) error {
	for _, p := range paths {
		if len(p.Hops) < 2 || p.Hops[0] != Source || p.Hops[len(p.Hops)-1] != Destination {
			return fmt.Errorf("path %s: must run from %s to %s: %w",
				p.ID, Source, Destination, ErrPathEnds)
		}
		for i := 1; i < len(p.Hops); i++ {
			if !t.HasLink(p.Hops[i-1], p.Hops[i]) {
				return fmt.Errorf("path %s: %s -> %s: %w",
					p.ID, p.Hops[i-1], p.Hops[i], ErrUnlinkedHop)
			}
		}
	}
	return nil
}

// Get returns the path registered under id
func (l *PathLibrary) Get(id PathID) (Path, bool) {
	p, ok := l.paths[id]
	return p, ok
}

// MustGet is Get for ids known to be registered
func (l *PathLibrary) MustGet(id PathID) Path {
	p, ok := l.paths[id]
	if !ok {
		panic(fmt.Sprintf("path %q not registered", id))
	}
	return p
}

// All returns the paths in registration order
func (l *PathLibrary) All() []Path {
	out := make([]Path, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.paths[id])
	}
	return out
}

// Len returns the number of registered paths
func (l *PathLibrary) Len() int {
	return len(l.order)
}
