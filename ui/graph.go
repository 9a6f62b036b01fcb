package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Bandwidth threshold colors
var (
	ColorGood   = color.NRGBA{R: 34, G: 197, B: 94, A: 255}  // Green - >= 90%
	ColorMedium = color.NRGBA{R: 251, G: 191, B: 36, A: 255} // Amber - 70-90%
	ColorLow    = color.NRGBA{R: 239, G: 68, B: 68, A: 255}  // Red - < 70%
	ColorBg     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}      // Scene background
	ColorGrid   = color.NRGBA{R: 55, G: 55, B: 70, A: 255}   // Grid lines
)

// Bandwidth thresholds in percent
const (
	ThresholdGood   = 90.0
	ThresholdMedium = 70.0
)

// BandwidthGraph is a custom widget that plots the effective bandwidth
// history as a small line graph on a 0-100% scale
type BandwidthGraph struct {
	widget.BaseWidget
	data      []float64 // Bandwidth samples in percent
	maxPoints int       // Maximum number of points to display
	minSize   fyne.Size // Minimum size of the graph
}

// NewBandwidthGraph creates a new bandwidth graph widget
func NewBandwidthGraph() *BandwidthGraph {
	g := &BandwidthGraph{
		data:      make([]float64, 0),
		maxPoints: 120,
		minSize:   fyne.NewSize(200, 40),
	}
	g.ExtendBaseWidget(g)
	return g
}

// Add appends a sample, dropping the oldest beyond maxPoints
func (g *BandwidthGraph) Add(v float64) {
	g.data = append(g.data, v)
	if len(g.data) > g.maxPoints {
		g.data = g.data[len(g.data)-g.maxPoints:]
	}
	g.Refresh()
}

// Reset clears the history
func (g *BandwidthGraph) Reset() {
	g.data = g.data[:0]
	g.Refresh()
}

// Data returns the samples currently shown
func (g *BandwidthGraph) Data() []float64 {
	return g.data
}

// MinSize returns the minimum size of the widget
func (g *BandwidthGraph) MinSize() fyne.Size {
	return g.minSize
}

// CreateRenderer creates the renderer for this widget
func (g *BandwidthGraph) CreateRenderer() fyne.WidgetRenderer {
	r := &bandwidthGraphRenderer{graph: g}
	r.objects = r.createGraphObjects()
	return r
}

// bandwidthGraphRenderer handles the drawing of the graph
type bandwidthGraphRenderer struct {
	graph   *BandwidthGraph
	objects []fyne.CanvasObject
}

func (r *bandwidthGraphRenderer) Destroy() {}

func (r *bandwidthGraphRenderer) Layout(size fyne.Size) {
	// Objects are recreated on each refresh, no layout needed
}

func (r *bandwidthGraphRenderer) MinSize() fyne.Size {
	return r.graph.minSize
}

func (r *bandwidthGraphRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *bandwidthGraphRenderer) Refresh() {
	r.objects = r.createGraphObjects()
	canvas.Refresh(r.graph)
}

func (r *bandwidthGraphRenderer) createGraphObjects() []fyne.CanvasObject {
	size := r.graph.Size()
	if size.Width < 10 || size.Height < 10 {
		size = r.graph.minSize
	}

	objects := make([]fyne.CanvasObject, 0)

	// Background rectangle
	bg := canvas.NewRectangle(ColorBg)
	bg.Resize(size)
	bg.Move(fyne.NewPos(0, 0))
	objects = append(objects, bg)

	// Grid lines at 25% steps
	for i := 1; i < 4; i++ {
		y := size.Height * float32(i) / 4
		line := canvas.NewLine(ColorGrid)
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(size.Width, y)
		line.StrokeWidth = 0.5
		objects = append(objects, line)
	}

	data := r.graph.data
	if len(data) < 2 {
		return objects
	}

	pointWidth := size.Width / float32(r.graph.maxPoints-1)
	startX := size.Width - float32(len(data)-1)*pointWidth

	padding := float32(4)
	graphHeight := size.Height - padding*2
	y := func(v float64) float32 {
		return padding + graphHeight*(1-float32(clampPercent(v)/100))
	}

	for i := 0; i < len(data)-1; i++ {
		line := canvas.NewLine(bandwidthColor(min(data[i], data[i+1])))
		line.Position1 = fyne.NewPos(startX+float32(i)*pointWidth, y(data[i]))
		line.Position2 = fyne.NewPos(startX+float32(i+1)*pointWidth, y(data[i+1]))
		line.StrokeWidth = 2
		objects = append(objects, line)
	}

	// Mark the latest sample
	last := data[len(data)-1]
	dot := canvas.NewCircle(bandwidthColor(last))
	dot.Resize(fyne.NewSize(4, 4))
	dot.Move(fyne.NewPos(size.Width-2, y(last)-2))
	objects = append(objects, dot)

	return objects
}

func clampPercent(v float64) float64 {
	return max(0, min(100, v))
}

// bandwidthColor returns the appropriate color for a bandwidth percentage
func bandwidthColor(v float64) color.Color {
	if v >= ThresholdGood {
		return ColorGood
	}
	if v >= ThresholdMedium {
		return ColorMedium
	}
	return ColorLow
}
