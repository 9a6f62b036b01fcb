package choreo

import (
	"errors"
	"fmt"

	"github.com/afroash/rdma-viz/geom"
	"github.com/afroash/rdma-viz/scene"
	"github.com/afroash/rdma-viz/timeline"
)

// ErrBadPermutation is returned for an arrival order that is not a
// permutation of the marker sequence numbers
var ErrBadPermutation = errors.New("arrival order is not a permutation of 1..N")

// ArrivalPermutation is the fixed, deliberately unsorted arrival order:
// slot j of the arrival row holds the marker with this sequence number.
var ArrivalPermutation = []int{2, 5, 3, 6, 4, 1}

// Slot geometry in scene units
const (
	SlotSide = 0.28
	SlotBuff = 0.12

	arrivalLag   = 0.12
	reorderLag   = 0.10
	placeRunTime = timeline.VTimeInSec(2.0)
)

// SequencedSlot returns the sequenced-row slot of a marker. It depends on the
// sequence number only, never on where the marker currently is.
func SequencedSlot(seq int) int {
	return seq - 1
}

// ArrivalRow orders markers by arrival slot following perm
func ArrivalRow(markers []*Marker, perm []int) ([]*Marker, error) {
	if err := checkPermutation(perm, len(markers)); err != nil {
		return nil, err
	}
	bySeq := indexBySeq(markers)
	row := make([]*Marker, len(perm))
	for slot, seq := range perm {
		row[slot] = bySeq[seq]
	}
	return row, nil
}

// SequencedRow orders markers 1..N by placing each directly at
// SequencedSlot(seq).
func SequencedRow(markers []*Marker) ([]*Marker, error) {
	row := make([]*Marker, len(markers))
	for _, m := range markers {
		slot := SequencedSlot(m.Seq)
		if slot < 0 || slot >= len(row) || row[slot] != nil {
			return nil, fmt.Errorf("marker %d: %w", m.Seq, ErrBadPermutation)
		}
		row[slot] = m
	}
	return row, nil
}

func indexBySeq(markers []*Marker) map[int]*Marker {
	out := make(map[int]*Marker, len(markers))
	for _, m := range markers {
		out[m.Seq] = m
	}
	return out
}

func checkPermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: got %d entries for %d markers", ErrBadPermutation, len(perm), n)
	}
	seen := make([]bool, n+1)
	for _, seq := range perm {
		if seq < 1 || seq > n || seen[seq] {
			return fmt.Errorf("%w: %v", ErrBadPermutation, perm)
		}
		seen[seq] = true
	}
	return nil
}

// NewSlotRow lays out n empty slots in a row centred on center
func NewSlotRow(center geom.Point, n int) []*scene.Shape {
	pitch := SlotSide + SlotBuff
	width := float64(n)*SlotSide + float64(n-1)*SlotBuff
	left := center.X - width/2 + SlotSide/2

	slots := make([]*scene.Shape, n)
	for i := range slots {
		s := scene.NewSquare(geom.Pt(left+float64(i)*pitch, center.Y), SlotSide)
		s.Stroke = scene.GreyB
		s.StrokeWidth = 1
		slots[i] = s
	}
	return slots
}

// PlacementBlock moves row[j] onto slots[j], staggered by lag, within
// placeRunTime
func PlacementBlock(name string, row []*Marker, slots []*scene.Shape, lag float64) *timeline.Block {
	anims := make([]timeline.Animation, 0, len(row))
	for j, m := range row {
		anims = append(anims, scene.MoveTo(m.Group(), slots[j].Center, timeline.DefaultDuration))
	}
	return timeline.NewBlock(name, timeline.Lag(lag, anims...)).WithRunTime(placeRunTime)
}
