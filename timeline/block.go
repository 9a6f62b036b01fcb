package timeline

import "github.com/rs/xid"

// DefaultDuration is the nominal duration of an animation when none is given
const DefaultDuration VTimeInSec = 1.0

// Placement places an animation inside a block: it starts Offset after the
// block starts and reaches its final state Span later.
type Placement struct {
	Anim   Animation
	Offset VTimeInSec
	Span   VTimeInSec
}

// End returns the offset at which the entry completes
func (e Placement) End() VTimeInSec {
	return e.Offset + e.Span
}

// All plays the animations concurrently, each over its own duration
func All(anims ...Animation) []Placement {
	entries := make([]Placement, 0, len(anims))
	for _, a := range anims {
		entries = append(entries, Placement{Anim: a, Span: a.Duration()})
	}
	return entries
}

// Lag staggers the animations: each one starts once the previous one has
// covered ratio of its own duration. Lag(0, ...) is All and Lag(1, ...)
// plays them back to back.
func Lag(ratio float64, anims ...Animation) []Placement {
	entries := make([]Placement, 0, len(anims))
	var cursor VTimeInSec
	for _, a := range anims {
		d := a.Duration()
		entries = append(entries, Placement{Anim: a, Offset: cursor, Span: d})
		cursor += VTimeInSec(ratio) * d
	}
	return entries
}

// Merge plays several entry groups side by side from the same start
func Merge(groups ...[]Placement) []Placement {
	var out []Placement
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// A Block is a set of animations played together. A block completes only
// when its longest member completes plus any hold time; the next block of
// a Timeline cannot start before that.
type Block struct {
	id       string
	name     string
	entries  []Placement
	hold     VTimeInSec
	onStart  []func() error
	onFinish []func() error
}

// NewBlock creates a block from entries
func NewBlock(name string, entries ...[]Placement) *Block {
	return &Block{
		id:      xid.New().String(),
		name:    name,
		entries: Merge(entries...),
	}
}

// Play is shorthand for a block with all animations concurrent
func Play(name string, anims ...Animation) *Block {
	return NewBlock(name, All(anims...))
}

// Wait creates an empty block that only lets time pass
func Wait(d VTimeInSec) *Block {
	return NewBlock("wait").WithHold(d)
}

// WithRunTime rescales every entry so that the members' natural span equals
// runTime.
func (b *Block) WithRunTime(runTime VTimeInSec) *Block {
	natural := b.span()
	if natural <= 0 || runTime <= 0 {
		return b
	}
	f := runTime / natural
	for i := range b.entries {
		b.entries[i].Offset *= f
		b.entries[i].Span *= f
	}
	return b
}

// WithHold extends the block by d after its last member completes
func (b *Block) WithHold(d VTimeInSec) *Block {
	b.hold = d
	return b
}

// OnStart registers a callback run when the block starts. A returned error
// aborts the timeline.
func (b *Block) OnStart(fn func() error) *Block {
	b.onStart = append(b.onStart, fn)
	return b
}

// OnFinish registers a callback run when the block passes its barrier
func (b *Block) OnFinish(fn func() error) *Block {
	b.onFinish = append(b.onFinish, fn)
	return b
}

func (b *Block) ID() string {
	return b.id
}

func (b *Block) Name() string {
	return b.name
}

// Entries returns the placed animations
func (b *Block) Entries() []Placement {
	return b.entries
}

// Hold returns the tail time after the last member completes
func (b *Block) Hold() VTimeInSec {
	return b.hold
}

// Duration returns the time between the block's start and its barrier
func (b *Block) Duration() VTimeInSec {
	return b.span() + b.hold
}

func (b *Block) span() VTimeInSec {
	var end VTimeInSec
	for _, e := range b.entries {
		if e.End() > end {
			end = e.End()
		}
	}
	return end
}
