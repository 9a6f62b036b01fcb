package choreo

import (
	"fmt"
	"image/color"

	log "github.com/sirupsen/logrus"

	"github.com/afroash/rdma-viz/geom"
	"github.com/afroash/rdma-viz/network"
	"github.com/afroash/rdma-viz/scene"
	"github.com/afroash/rdma-viz/timeline"
)

// Captions shown in the scene
const (
	TitleText      = "RDMA over Ethernet via SuperNIC"
	SubtitleText   = "Multiple paths, reliable reassembly, higher bandwidth"
	BufferText     = "RDMA buffer (reassembly)"
	ArrivalText    = "Arrival (out of order)"
	SequencedText  = "Reassembly (1 -> N)"
	BraceText      = "Reassembled by the SuperNIC"
	MeterTitleText = "Effective bandwidth"
	GainText       = "Gain: +35 points"
)

// Scene is the fully built choreography: the shapes, the timeline that
// animates them and the domain objects behind both.
type Scene struct {
	Graph    *scene.Graph
	Timeline *timeline.Timeline
	Phases   *PhaseMachine

	Topology *network.Topology
	Paths    *network.PathLibrary
	Markers  []*Marker

	ArrivalSlots   []*scene.Shape
	SequencedSlots []*scene.Shape
	Meter          *Meter

	net scene.Group
}

// Build lays out the RDMA scene and schedules its timeline on engine. Path
// and topology inconsistencies are reported here, before anything plays.
func Build(engine timeline.Engine) (*Scene, error) {
	topo := network.NewTopology()
	lib, err := network.NewPathLibrary(topo)
	if err != nil {
		return nil, fmt.Errorf("building path library: %w", err)
	}

	s := &Scene{
		Graph:    scene.NewGraph(),
		Timeline: timeline.NewTimeline(engine),
		Phases:   NewPhaseMachine(),
		Topology: topo,
		Paths:    lib,
	}

	header := s.buildHeader()
	topoBlock, err := s.buildTopology()
	if err != nil {
		return nil, err
	}

	s.Timeline.Add(
		timeline.NewBlock("header",
			timeline.All(scene.FadeIn(header, geom.Down, timeline.DefaultDuration)),
		).WithRunTime(0.8),
		topoBlock.OnFinish(s.Phases.advanceTo(PhaseTopologyBuilt)),
	)

	s.buildMarkers()
	s.Timeline.Add(
		s.spawnBlock().OnFinish(s.Phases.advanceTo(PhasePacketsSpawned)),
		DispersalBlock(s.Markers, lib).
			OnStart(s.Phases.advanceTo(PhaseDispersing)).
			OnFinish(s.Phases.advanceTo(PhaseArrived)),
	)

	reassembly, err := s.buildReassembly()
	if err != nil {
		return nil, err
	}
	s.Timeline.Add(reassembly...)
	s.Timeline.Add(s.buildMeter()...)

	zoom := timeline.Play("zoom-out",
		scene.CameraMove(s.Graph.Camera(), s.net.Center(), 1.06, timeline.DefaultDuration))
	s.Timeline.Add(
		timeline.Wait(1.0),
		zoom,
		timeline.Wait(0.6).OnFinish(s.Phases.advanceTo(PhaseDone)),
	)

	log.WithFields(log.Fields{
		"shapes":   s.Graph.Len(),
		"blocks":   len(s.Timeline.Blocks()),
		"duration": float64(s.Timeline.Duration()),
	}).Debug("scene built")

	return s, nil
}

// Snapshot copies the current frame, tagged with the scene phase
func (s *Scene) Snapshot(t timeline.VTimeInSec) scene.Frame {
	f := s.Graph.Snapshot(float64(t))
	f.Phase = s.Phases.Current().String()
	return f
}

func (s *Scene) add(shapes ...*scene.Shape) []*scene.Shape {
	s.Graph.Add(shapes...)
	return shapes
}

func (s *Scene) buildHeader() []*scene.Shape {
	title := scene.NewText(TitleText, geom.Origin, 0.45)
	title.Bold = true
	title.Center = geom.Pt(0, geom.FrameHeight/2-0.5-title.Height/2)

	sub := scene.NewText(SubtitleText, geom.Origin, 0.28)
	sub.Center = title.NextTo(geom.Down, sub.Width, sub.Height, 0.2)

	return s.add(title, sub)
}

func (s *Scene) buildTopology() (*timeline.Block, error) {
	topo := s.Topology

	src := endpointShape(topo.Src, scene.BlueC)
	dst := endpointShape(topo.Dst, scene.GreenC)
	srcLbl := scene.NewText(topo.Src.Label, topo.Src.Center, 0.27)
	dstLbl := scene.NewText(topo.Dst.Label, topo.Dst.Center, 0.27)
	s.add(src, dst, srcLbl, dstLbl)

	var switchFades []timeline.Animation
	var net scene.Group
	net = append(net, src, dst, srcLbl, dstLbl)
	for _, n := range topo.Nodes {
		box := scene.NewSquare(n.Position, network.SwitchSide)
		box.Stroke = scene.GreyB
		box.Fill = scene.GreyE
		box.FillOpacity = 0.2

		lbl := scene.NewText(n.Label, geom.Origin, 0.2)
		lbl.Center = box.NextTo(geom.Down, lbl.Width, lbl.Height, 0.1)

		s.add(box, lbl)
		net = append(net, box, lbl)
		switchFades = append(switchFades,
			scene.FadeIn([]*scene.Shape{box, lbl}, geom.Down.Scale(0.2), timeline.DefaultDuration))
	}

	var edgeDraws []timeline.Animation
	for _, l := range topo.Links {
		from, to, err := topo.LinkEnds(l)
		if err != nil {
			return nil, fmt.Errorf("drawing link %s-%s: %w", l.A, l.B, err)
		}
		edge := scene.NewLine(from, to)
		edge.Stroke = scene.GreyB
		s.add(edge)
		net = append(net, edge)
		edgeDraws = append(edgeDraws, scene.Create([]*scene.Shape{edge}, timeline.DefaultDuration))
	}
	s.net = net

	return timeline.NewBlock("topology",
		timeline.All(
			scene.FadeIn([]*scene.Shape{src}, geom.Right, timeline.DefaultDuration),
			scene.FadeIn([]*scene.Shape{dst}, geom.Left, timeline.DefaultDuration),
			scene.FadeIn([]*scene.Shape{srcLbl, dstLbl}, geom.Origin, timeline.DefaultDuration),
		),
		timeline.Lag(0.08, switchFades...),
		timeline.Lag(0.1, edgeDraws...),
	).WithRunTime(2.2), nil
}

func endpointShape(e network.Endpoint, stroke color.NRGBA) *scene.Shape {
	r := scene.NewRoundedRect(e.Center, e.Width, e.Height, 0.15)
	r.Stroke = stroke
	r.Fill = stroke
	r.FillOpacity = 0.05
	return r
}

func (s *Scene) buildMarkers() {
	start := s.Topology.Src.Right()
	for _, a := range Assign() {
		m := NewMarker(a, start, s.Paths.MustGet(a.Path))
		s.add(m.Dot, m.Label, m.Trail)
		s.Markers = append(s.Markers, m)
	}
}

func (s *Scene) spawnBlock() *timeline.Block {
	fades := make([]timeline.Animation, 0, len(s.Markers))
	for _, m := range s.Markers {
		fades = append(fades, scene.FadeIn(m.Group(), geom.Right.Scale(0.2), timeline.DefaultDuration))
	}
	return timeline.NewBlock("spawn", timeline.Lag(0.1, fades...)).WithRunTime(1.2)
}

func (s *Scene) buildReassembly() ([]*timeline.Block, error) {
	dst := s.Topology.Dst
	arrivalY, sequencedY := 1.25, -1.25

	s.ArrivalSlots = s.add(NewSlotRow(geom.Pt(dst.Center.X, arrivalY), MarkerCount)...)
	s.SequencedSlots = s.add(NewSlotRow(geom.Pt(dst.Center.X, sequencedY), MarkerCount)...)
	arrivalRow := scene.Group(s.ArrivalSlots)
	sequencedRow := scene.Group(s.SequencedSlots)

	lblArrive := scene.NewText(ArrivalText, geom.Origin, 0.25)
	lblArrive.Center = geom.Pt(arrivalRow.Center().X,
		arrivalRow.Center().Y+SlotSide/2+0.15+lblArrive.Height/2)
	lblOrder := scene.NewText(SequencedText, geom.Origin, 0.25)
	lblOrder.Center = geom.Pt(sequencedRow.Center().X,
		sequencedRow.Center().Y-SlotSide/2-0.15-lblOrder.Height/2)
	title := scene.NewText(BufferText, geom.Origin, 0.3)
	title.Center = lblArrive.NextTo(geom.Up, title.Width, title.Height, 0.2)
	s.add(lblArrive, lblOrder, title)

	_, hi := arrivalRow.Bounds()
	brace := newBrace(hi.X+0.2, arrivalY-SlotSide/2-0.1, sequencedY+SlotSide/2+0.1)
	braceTxt := scene.NewText(BraceText, geom.Origin, 0.25)
	braceTxt.Center = lblOrder.NextTo(geom.Down, braceTxt.Width, braceTxt.Height, 0.2)
	s.add(brace, braceTxt)

	lo, hi := sequencedRow.Bounds()
	okRect := scene.NewPolyline(geom.Polyline{
		geom.Pt(lo.X-0.12, lo.Y-0.12),
		geom.Pt(hi.X+0.12, lo.Y-0.12),
		geom.Pt(hi.X+0.12, hi.Y+0.12),
		geom.Pt(lo.X-0.12, hi.Y+0.12),
		geom.Pt(lo.X-0.12, lo.Y-0.12),
	})
	okRect.Closed = true
	okRect.Stroke = scene.GreenC
	s.add(okRect)

	arrivals, err := ArrivalRow(s.Markers, ArrivalPermutation)
	if err != nil {
		return nil, err
	}
	ordered, err := SequencedRow(s.Markers)
	if err != nil {
		return nil, err
	}

	buffer := append([]*scene.Shape{title}, s.ArrivalSlots...)
	buffer = append(buffer, s.SequencedSlots...)
	buffer = append(buffer, lblArrive, lblOrder)

	return []*timeline.Block{
		timeline.Play("buffer", scene.FadeIn(buffer, geom.Origin, timeline.DefaultDuration)),
		PlacementBlock("arrival", arrivals, s.ArrivalSlots, arrivalLag),
		timeline.Play("brace",
			scene.GrowFromCenter([]*scene.Shape{brace}, timeline.DefaultDuration),
			scene.FadeIn([]*scene.Shape{braceTxt}, geom.Origin, timeline.DefaultDuration),
		),
		PlacementBlock("reorder", ordered, s.SequencedSlots, reorderLag).
			OnFinish(s.Phases.advanceTo(PhaseReassembled)),
		timeline.Play("confirm", scene.Create([]*scene.Shape{okRect}, timeline.DefaultDuration)).
			WithRunTime(0.6),
		timeline.Play("confirm-fade", scene.StrokeFade(okRect, 0, timeline.DefaultDuration)).
			WithRunTime(0.6),
	}, nil
}

// newBrace draws a right-facing curly brace at x spanning top to bottom
func newBrace(x, top, bottom float64) *scene.Shape {
	mid := (top + bottom) / 2
	const tip, bend = 0.2, 0.1
	b := scene.NewPolyline(geom.Polyline{
		geom.Pt(x, top),
		geom.Pt(x+bend, top-bend),
		geom.Pt(x+bend, mid+bend),
		geom.Pt(x+tip, mid),
		geom.Pt(x+bend, mid-bend),
		geom.Pt(x+bend, bottom+bend),
		geom.Pt(x, bottom),
	})
	b.Stroke = scene.Yellow
	return b
}

func (s *Scene) buildMeter() []*timeline.Block {
	left := geom.Pt(-geom.FrameWidth/2+0.6, -3.2)
	m := NewMeter(left, MeterTitleText)
	s.Meter = m
	s.add(m.Title, m.Background, m.Bar, m.Text)

	gain := scene.NewText(GainText, geom.Origin, 0.25)
	gain.Center = m.Text.NextTo(geom.Down, gain.Width, gain.Height, 0.1)
	s.add(gain)

	return []*timeline.Block{
		timeline.Play("meter",
			scene.FadeIn([]*scene.Shape{m.Title, m.Background}, geom.Origin, timeline.DefaultDuration)),
		timeline.Play("bandwidth", scene.Show(m.Bar, m.Text), m.Tween()).
			OnStart(s.Phases.advanceTo(PhaseMeterAnimating)),
		timeline.Play("gain", scene.FadeIn([]*scene.Shape{gain}, geom.Up, timeline.DefaultDuration)).
			WithRunTime(0.6),
	}
}
