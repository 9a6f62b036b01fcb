package scene

// Cell is an observable scalar. Views registered with Observe are
// recomputed from the value on every Set, so whoever drives the cell never
// has to update them by hand.
type Cell struct {
	value float64
	views []func(v float64)
}

// NewCell creates a cell holding v
func NewCell(v float64) *Cell {
	return &Cell{value: v}
}

// Get returns the current value
func (c *Cell) Get() float64 {
	return c.value
}

// Set stores v and recomputes every view
func (c *Cell) Set(v float64) {
	c.value = v
	for _, view := range c.views {
		view(v)
	}
}

// Observe registers a derived view and brings it up to date immediately
func (c *Cell) Observe(view func(v float64)) {
	c.views = append(c.views, view)
	view(c.value)
}
