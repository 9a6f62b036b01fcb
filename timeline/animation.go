package timeline

import "github.com/rs/xid"

// An Animation changes some state of the scene over a span of virtual time.
//
// Begin is called once when the owning block starts, before any
// Interpolate. Interpolate receives raw progress in [0, 1]; any easing is
// the animation's own business. Finish leaves the state exactly as
// Interpolate(1) would.
type Animation interface {
	ID() string
	Name() string
	Duration() VTimeInSec
	Begin()
	Interpolate(alpha float64)
	Finish()
}

// Tween is an Animation built from callbacks.
type Tween struct {
	id       string
	name     string
	duration VTimeInSec
	ease     Easing
	begin    func()
	apply    func(alpha float64)
}

// NewTween creates a tween that calls apply with eased progress
func NewTween(
	name string,
	duration VTimeInSec,
	ease Easing,
	apply func(alpha float64),
) *Tween {
	if ease == nil {
		ease = Smooth
	}
	return &Tween{
		id:       xid.New().String(),
		name:     name,
		duration: duration,
		ease:     ease,
		apply:    apply,
	}
}

// OnBegin registers a callback that captures start state
func (t *Tween) OnBegin(fn func()) *Tween {
	t.begin = fn
	return t
}

// WithEasing replaces the easing curve
func (t *Tween) WithEasing(e Easing) *Tween {
	t.ease = e
	return t
}

// WithDuration replaces the nominal duration
func (t *Tween) WithDuration(d VTimeInSec) *Tween {
	t.duration = d
	return t
}

func (t *Tween) ID() string {
	return t.id
}

func (t *Tween) Name() string {
	return t.name
}

func (t *Tween) Duration() VTimeInSec {
	return t.duration
}

func (t *Tween) Begin() {
	if t.begin != nil {
		t.begin()
	}
}

func (t *Tween) Interpolate(alpha float64) {
	if t.apply != nil {
		t.apply(t.ease(clamp01(alpha)))
	}
}

func (t *Tween) Finish() {
	t.Interpolate(1)
}
