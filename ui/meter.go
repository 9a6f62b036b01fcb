package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	log "github.com/sirupsen/logrus"
)

// MeterPanel shows the effective bandwidth next to the scene. The label and
// progress bar are bound to one float, mirroring the in-scene meter.
type MeterPanel struct {
	value binding.Float
	label *widget.Label
	bar   *widget.ProgressBar
	graph *BandwidthGraph
	box   *fyne.Container
}

// NewMeterPanel creates the panel at 0%
func NewMeterPanel() *MeterPanel {
	value := binding.NewFloat()

	bar := widget.NewProgressBarWithData(value)
	bar.Min = 0
	bar.Max = 100
	bar.TextFormatter = func() string { return "" }

	label := widget.NewLabelWithData(
		binding.FloatToStringWithFormat(value, "Effective bandwidth: %.0f%%"))
	label.TextStyle = fyne.TextStyle{Bold: true}

	graph := NewBandwidthGraph()

	return &MeterPanel{
		value: value,
		label: label,
		bar:   bar,
		graph: graph,
		box:   container.NewVBox(label, bar, graph),
	}
}

// Set updates the bound value and appends it to the history
func (m *MeterPanel) Set(v float64) {
	if err := m.value.Set(v); err != nil {
		log.WithError(err).Warn("meter binding")
	}
	m.graph.Add(v)
}

// Value returns the bound value
func (m *MeterPanel) Value() float64 {
	v, err := m.value.Get()
	if err != nil {
		return 0
	}
	return v
}

// Reset clears the value and the history
func (m *MeterPanel) Reset() {
	if err := m.value.Set(0); err != nil {
		log.WithError(err).Warn("meter binding")
	}
	m.graph.Reset()
}

// Graph returns the history graph
func (m *MeterPanel) Graph() *BandwidthGraph {
	return m.graph
}

// Content returns the panel's canvas object
func (m *MeterPanel) Content() fyne.CanvasObject {
	return m.box
}
