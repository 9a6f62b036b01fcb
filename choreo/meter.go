package choreo

import (
	"fmt"
	"math"

	"github.com/afroash/rdma-viz/geom"
	"github.com/afroash/rdma-viz/scene"
	"github.com/afroash/rdma-viz/timeline"
)

// Meter values and geometry
const (
	MeterStart = 60.0
	MeterEnd   = 95.0

	BarMaxWidth = 4.0
	BarMinWidth = 0.02
	BarHeight   = 0.28

	MeterRunTime = timeline.VTimeInSec(2.0)

	barInset       = 0.06
	meterLabelSize = 0.3
	meterLabelBuff = 0.2
)

// BarWidth is the fill width for value v, clamped so the bar never vanishes
// or overflows its background.
func BarWidth(v float64) float64 {
	w := BarMaxWidth * (v / 100)
	return math.Max(BarMinWidth, math.Min(BarMaxWidth, w))
}

// PercentLabel formats v as a whole percentage. Exact halves round to even.
func PercentLabel(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// Meter shows the effective bandwidth as a bar and a percentage. Both are
// views of Value and are redrawn by the cell, never by the choreography.
type Meter struct {
	Value      *scene.Cell
	Title      *scene.Shape
	Background *scene.Shape
	Bar        *scene.Shape
	Text       *scene.Shape
}

// NewMeter lays out the meter with the background bar's left edge at left
func NewMeter(left geom.Point, title string) *Meter {
	bg := scene.NewRect(geom.Pt(left.X+BarMaxWidth/2, left.Y), BarMaxWidth, BarHeight)
	bg.Stroke = scene.GreyB
	bg.StrokeWidth = 1
	bg.Fill = scene.GreyE
	bg.FillOpacity = 0.4

	t := scene.NewText(title, geom.Origin, meterLabelSize)
	t.Center = geom.Pt(
		left.X+t.Width/2,
		bg.NextTo(geom.Up, t.Width, t.Height, meterLabelBuff).Y,
	)

	bar := scene.NewRect(bg.Center, BarMinWidth, BarHeight-barInset)
	bar.Fill = scene.GreenC
	bar.FillOpacity = 0.9
	bar.StrokeOpacity = 0
	bar.StrokeWidth = 0
	bar.Z = 1

	text := scene.NewText(PercentLabel(MeterStart), geom.Origin, meterLabelSize)

	m := &Meter{
		Value:      scene.NewCell(MeterStart),
		Title:      t,
		Background: bg,
		Bar:        bar,
		Text:       text,
	}
	m.Value.Observe(m.redrawBar)
	m.Value.Observe(m.redrawText)
	return m
}

func (m *Meter) redrawBar(v float64) {
	w := BarWidth(v)
	left := m.Background.Edge(geom.Left)
	m.Bar.Width = w
	m.Bar.Center = geom.Pt(left.X+w/2, m.Background.Center.Y)
}

func (m *Meter) redrawText(v float64) {
	m.Text.Text = PercentLabel(v)
	fresh := scene.NewText(m.Text.Text, geom.Origin, meterLabelSize)
	m.Text.Width, m.Text.Height = fresh.Width, fresh.Height
	m.Text.Center = m.Background.NextTo(geom.Right, m.Text.Width, m.Text.Height, meterLabelBuff)
}

// Tween drives the value to MeterEnd with the smooth curve
func (m *Meter) Tween() timeline.Animation {
	return scene.CellTween(m.Value, MeterEnd, MeterRunTime, timeline.Smooth)
}
