package choreo

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/afroash/rdma-viz/geom"
	"github.com/afroash/rdma-viz/network"
	"github.com/afroash/rdma-viz/scene"
	"github.com/afroash/rdma-viz/timeline"
)

func markersFor(seqs ...int) []*Marker {
	out := []*Marker{}
	for _, s := range seqs {
		out = append(out, &Marker{
			Assignment: Assignment{Seq: s},
			Dot:        scene.NewDot(geom.Origin, 0.1, scene.BlueC),
			Label:      scene.NewText("", geom.Origin, 0.1),
		})
	}
	return out
}

func seqsOf(row []*Marker) []int {
	out := []int{}
	for _, m := range row {
		out = append(out, m.Seq)
	}
	return out
}

var _ = Describe("Dispersal plan", func() {
	It("should cycle the path library", func() {
		paths := []network.PathID{}
		durations := []timeline.VTimeInSec{}
		for _, a := range Assign() {
			paths = append(paths, a.Path)
			durations = append(durations, a.Duration)
		}
		Expect(paths).To(Equal([]network.PathID{
			network.PathA, network.PathD, network.PathB,
			network.PathC, network.PathA, network.PathD,
		}))
		Expect(durations).To(Equal([]timeline.VTimeInSec{4.0, 2.6, 3.0, 3.5, 2.8, 4.2}))
	})

	It("should give every marker its own colour", func() {
		seen := map[string]bool{}
		for _, a := range Assign() {
			key := string([]byte{a.Color.R, a.Color.G, a.Color.B})
			Expect(seen[key]).To(BeFalse())
			seen[key] = true
		}
	})
})

var _ = Describe("Reassembly", func() {
	It("should fill the arrival row with the literal permutation", func() {
		row, err := ArrivalRow(markersFor(1, 2, 3, 4, 5, 6), ArrivalPermutation)
		Expect(err).NotTo(HaveOccurred())
		Expect(seqsOf(row)).To(Equal([]int{2, 5, 3, 6, 4, 1}))
	})

	It("should place marker k in sequenced slot k-1 whatever the input order", func() {
		orders := [][]int{
			{2, 5, 3, 6, 4, 1},
			{6, 5, 4, 3, 2, 1},
			{1, 2, 3, 4, 5, 6},
		}
		for _, order := range orders {
			row, err := SequencedRow(markersFor(order...))
			Expect(err).NotTo(HaveOccurred())
			Expect(seqsOf(row)).To(Equal([]int{1, 2, 3, 4, 5, 6}))
			for slot, m := range row {
				Expect(SequencedSlot(m.Seq)).To(Equal(slot))
			}
		}
	})

	It("should be idempotent", func() {
		markers := markersFor(1, 2, 3, 4, 5, 6)
		first, err := ArrivalRow(markers, ArrivalPermutation)
		Expect(err).NotTo(HaveOccurred())
		second, err := ArrivalRow(markers, ArrivalPermutation)
		Expect(err).NotTo(HaveOccurred())
		Expect(seqsOf(second)).To(Equal(seqsOf(first)))

		once, _ := SequencedRow(first)
		twice, _ := SequencedRow(once)
		Expect(seqsOf(twice)).To(Equal(seqsOf(once)))
	})

	It("should reject orders that are not permutations", func() {
		markers := markersFor(1, 2, 3)
		for _, perm := range [][]int{{1, 2}, {1, 1, 2}, {0, 1, 2}, {1, 2, 4}} {
			_, err := ArrivalRow(markers, perm)
			Expect(errors.Is(err, ErrBadPermutation)).To(BeTrue(), "%v", perm)
		}

		_, err := SequencedRow(markersFor(1, 1, 2))
		Expect(errors.Is(err, ErrBadPermutation)).To(BeTrue())
	})

	It("should lay out evenly spaced slots", func() {
		slots := NewSlotRow(geom.Pt(1, 2), 6)
		Expect(slots).To(HaveLen(6))
		Expect(slots[0].Center.X).To(BeNumerically("~", 1-1.14+0.14, 1e-9))
		Expect(slots[1].Center.X - slots[0].Center.X).To(BeNumerically("~", 0.4, 1e-9))
		Expect(slots[5].Center.Y).To(Equal(2.0))
	})
})

var _ = Describe("Meter", func() {
	It("should clamp the bar width", func() {
		Expect(BarWidth(60)).To(BeNumerically("~", 2.4, 1e-9))
		Expect(BarWidth(95)).To(BeNumerically("~", 3.8, 1e-9))
		Expect(BarWidth(0)).To(Equal(BarMinWidth))
		Expect(BarWidth(150)).To(Equal(BarMaxWidth))
	})

	DescribeTable("should format a rounded percentage",
		func(v float64, want string) {
			Expect(PercentLabel(v)).To(Equal(want))
		},
		Entry("start", 60.0, "60%"),
		Entry("rounds up", 77.6, "78%"),
		Entry("rounds down", 94.2, "94%"),
		Entry("end", 95.0, "95%"),
		Entry("half to even", 62.5, "62%"),
	)

	It("should redraw its views from the value alone", func() {
		m := NewMeter(geom.Pt(-6, -3), "bw")
		Expect(m.Text.Text).To(Equal("60%"))
		Expect(m.Bar.Width).To(BeNumerically("~", 2.4, 1e-9))

		m.Value.Set(80)
		Expect(m.Text.Text).To(Equal("80%"))
		Expect(m.Bar.Width).To(BeNumerically("~", 3.2, 1e-9))
		Expect(m.Bar.Edge(geom.Left).X).To(BeNumerically("~", -6, 1e-9))
	})

	It("should tween monotonically from 60 to 95", func() {
		m := NewMeter(geom.Origin, "bw")
		tw := m.Tween()
		tw.Begin()

		prev := -1.0
		for i := 0; i <= 100; i++ {
			tw.Interpolate(float64(i) / 100)
			v := m.Value.Get()
			Expect(v).To(BeNumerically(">=", prev))
			Expect(m.Bar.Width).To(BeNumerically("~", BarWidth(v), 1e-12))
			Expect(m.Text.Text).To(Equal(PercentLabel(v)))
			prev = v
		}
		tw.Interpolate(0)
		Expect(m.Value.Get()).To(BeNumerically("~", 60, 1e-9))
		tw.Finish()
		Expect(m.Value.Get()).To(BeNumerically("~", 95, 1e-9))
	})
})

var _ = Describe("PhaseMachine", func() {
	It("should walk every phase in order", func() {
		m := NewPhaseMachine()
		changes := 0
		m.OnChange(func(from, to Phase) {
			Expect(to).To(Equal(from + 1))
			changes++
		})
		for p := PhaseTopologyBuilt; p <= PhaseDone; p++ {
			Expect(m.Advance(p)).To(Succeed())
		}
		Expect(m.Current()).To(Equal(PhaseDone))
		Expect(changes).To(Equal(7))
	})

	It("should refuse to skip or repeat", func() {
		m := NewPhaseMachine()
		Expect(m.Advance(PhaseDispersing)).To(MatchError(ErrPhaseOrder))
		Expect(m.Advance(PhaseTopologyBuilt)).To(Succeed())
		Expect(m.Advance(PhaseTopologyBuilt)).To(MatchError(ErrPhaseOrder))
		Expect(m.Current()).To(Equal(PhaseTopologyBuilt))
	})

	It("should name phases", func() {
		Expect(PhaseMeterAnimating.String()).To(Equal("MeterAnimating"))
		Expect(Phase(42).String()).To(Equal("Phase(42)"))
	})
})

var _ = Describe("Scene", func() {
	var (
		engine *timeline.SerialEngine
		s      *Scene
	)

	blockEnd := func(name string) timeline.VTimeInSec {
		for _, bt := range s.Timeline.Schedule() {
			if bt.Block.Name() == name {
				return bt.End
			}
		}
		Fail("no block " + name)
		return 0
	}

	blockNamed := func(name string) *timeline.Block {
		for _, b := range s.Timeline.Blocks() {
			if b.Name() == name {
				return b
			}
		}
		Fail("no block " + name)
		return nil
	}

	BeforeEach(func() {
		engine = timeline.NewSerialEngine()
		var err error
		s, err = Build(engine)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Timeline.Start()).To(Succeed())
	})

	It("should lay out the static topology", func() {
		Expect(s.Topology.Nodes).To(HaveLen(6))
		Expect(s.Topology.Links).To(HaveLen(10))
		Expect(s.Markers).To(HaveLen(MarkerCount))
		Expect(s.Paths.Len()).To(Equal(4))
	})

	It("should last the slowest marker plus the hold while dispersing", func() {
		Expect(blockNamed("dispersal").Duration()).To(BeNumerically("~", 4.2+0.1, 1e-9))
	})

	It("should have every marker arrived when dispersal ends", func() {
		end := blockEnd("dispersal")
		Expect(engine.RunUntil(end)).To(Succeed())
		s.Timeline.Sample(end)

		for _, m := range s.Markers {
			Expect(m.Arrived(s.Paths)).To(BeTrue(), "marker %d", m.Seq)
		}
		Expect(s.Phases.Current()).To(Equal(PhaseArrived))
	})

	It("should keep markers moving concurrently during dispersal", func() {
		var start timeline.VTimeInSec
		for _, bt := range s.Timeline.Schedule() {
			if bt.Block.Name() == "dispersal" {
				start = bt.Start
			}
		}
		at := start + 2.7
		Expect(engine.RunUntil(at)).To(Succeed())
		s.Timeline.Sample(at)

		arrived := 0
		for _, m := range s.Markers {
			if m.Arrived(s.Paths) {
				arrived++
			}
		}
		Expect(arrived).To(Equal(1))
		Expect(s.Phases.Current()).To(Equal(PhaseDispersing))
	})

	It("should fill the arrival row out of order", func() {
		end := blockEnd("arrival")
		Expect(engine.RunUntil(end)).To(Succeed())

		for slot, seq := range ArrivalPermutation {
			m := s.Markers[seq-1]
			Expect(m.Position().Near(s.ArrivalSlots[slot].Center, 1e-9)).To(BeTrue(),
				"marker %d not in arrival slot %d", seq, slot)
		}
	})

	It("should reassemble markers into sequence order", func() {
		end := blockEnd("reorder")
		Expect(engine.RunUntil(end)).To(Succeed())

		for _, m := range s.Markers {
			slot := s.SequencedSlots[SequencedSlot(m.Seq)]
			Expect(m.Position().Near(slot.Center, 1e-9)).To(BeTrue())
		}
		Expect(s.Phases.Current()).To(Equal(PhaseReassembled))
	})

	It("should play to the end", func() {
		Expect(engine.Run()).To(Succeed())
		Expect(s.Timeline.Done()).To(BeTrue())
		Expect(s.Phases.Current()).To(Equal(PhaseDone))
		Expect(s.Meter.Value.Get()).To(BeNumerically("~", MeterEnd, 1e-9))
		Expect(s.Meter.Text.Text).To(Equal("95%"))
		Expect(s.Graph.Camera().Zoom).To(BeNumerically("~", 1.06, 1e-9))

		f := s.Snapshot(engine.CurrentTime())
		Expect(f.Phase).To(Equal("Done"))
		Expect(f.Shapes).NotTo(BeEmpty())
	})

	It("should hide the flash trails once markers arrive", func() {
		Expect(engine.RunUntil(blockEnd("dispersal"))).To(Succeed())
		for _, m := range s.Markers {
			Expect(m.Trail.Visible).To(BeFalse())
		}
	})
})
