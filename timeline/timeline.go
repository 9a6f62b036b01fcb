package timeline

import (
	"errors"
	"fmt"
)

// ErrAlreadyStarted is returned when a timeline is started twice
var ErrAlreadyStarted = errors.New("timeline already started")

// A Timeline plays blocks one after another on an engine's virtual clock.
// Block N+1 starts exactly when block N passes its barrier.
type Timeline struct {
	HookableBase

	engine  Engine
	blocks  []*Block
	current int
	startAt VTimeInSec
	running []*runningEntry
	started bool
	done    bool
}

type runningEntry struct {
	entry    Placement
	started  bool
	finished bool
}

// BlockTiming is the planned placement of a block on the clock
type BlockTiming struct {
	Block *Block
	Start VTimeInSec
	End   VTimeInSec
}

// NewTimeline creates a timeline that schedules its events on engine
func NewTimeline(engine Engine, blocks ...*Block) *Timeline {
	return &Timeline{
		engine:  engine,
		blocks:  blocks,
		current: -1,
	}
}

// Add appends blocks. It has no effect once the timeline has started.
func (t *Timeline) Add(blocks ...*Block) {
	if t.started {
		return
	}
	t.blocks = append(t.blocks, blocks...)
}

// Blocks returns the blocks in play order
func (t *Timeline) Blocks() []*Block {
	return t.blocks
}

// Duration returns the total length of the timeline
func (t *Timeline) Duration() VTimeInSec {
	var d VTimeInSec
	for _, b := range t.blocks {
		d += b.Duration()
	}
	return d
}

// Schedule returns the planned start and end of every block relative to the
// timeline start.
func (t *Timeline) Schedule() []BlockTiming {
	out := make([]BlockTiming, 0, len(t.blocks))
	var at VTimeInSec
	for _, b := range t.blocks {
		out = append(out, BlockTiming{Block: b, Start: at, End: at + b.Duration()})
		at += b.Duration()
	}
	return out
}

// Current returns the block being played, or nil
func (t *Timeline) Current() *Block {
	if t.current < 0 || t.current >= len(t.blocks) || t.done {
		return nil
	}
	return t.blocks[t.current]
}

// Done reports whether the last block has passed its barrier
func (t *Timeline) Done() bool {
	return t.done
}

// Start schedules the first block at the engine's current time
func (t *Timeline) Start() error {
	if t.started {
		return ErrAlreadyStarted
	}
	t.started = true

	if len(t.blocks) == 0 {
		t.done = true
		return nil
	}
	t.engine.Schedule(blockStartEvent{
		EventBase: NewEventBase(t.engine.CurrentTime(), t),
		index:     0,
	})
	return nil
}

// Sample brings every unfinished animation of the current block to its state
// at virtual time now. Call it after advancing the engine to now.
func (t *Timeline) Sample(now VTimeInSec) {
	if t.Current() == nil {
		return
	}
	for _, r := range t.running {
		if r.finished {
			continue
		}
		r.entry.Anim.Interpolate(progress(r.entry, now-t.startAt))
	}
}

func progress(e Placement, elapsed VTimeInSec) float64 {
	local := elapsed - e.Offset
	if local <= 0 {
		return 0
	}
	if e.Span <= 0 || local >= e.Span {
		return 1
	}
	return float64(local / e.Span)
}

// Handle processes the timeline's own events
func (t *Timeline) Handle(e Event) error {
	switch evt := e.(type) {
	case blockStartEvent:
		return t.startBlock(evt)
	case animStartEvent:
		t.startEntry(evt.index, evt.entry)
	case animEndEvent:
		t.finishEntry(evt.index, evt.entry)
	case blockEndEvent:
		return t.endBlock(evt)
	default:
		return fmt.Errorf("timeline cannot handle %T", e)
	}
	return nil
}

func (t *Timeline) startBlock(evt blockStartEvent) error {
	b := t.blocks[evt.index]
	now := evt.Time()

	t.current = evt.index
	t.startAt = now
	t.running = make([]*runningEntry, 0, len(b.entries))

	for _, fn := range b.onStart {
		if err := fn(); err != nil {
			return fmt.Errorf("block %q: %w", b.name, err)
		}
	}

	t.InvokeHook(HookCtx{Domain: t, Now: now, Pos: HookPosBlockStart, Item: b})

	for i, entry := range b.entries {
		entry.Anim.Begin()
		t.running = append(t.running, &runningEntry{entry: entry})

		t.engine.Schedule(animStartEvent{
			EventBase: NewEventBase(now+entry.Offset, t),
			index:     evt.index,
			entry:     i,
		})
		t.engine.Schedule(animEndEvent{
			EventBase: NewEventBase(now+entry.End(), t),
			index:     evt.index,
			entry:     i,
		})
	}

	t.engine.Schedule(blockEndEvent{
		EventBase: NewEventBase(now+b.Duration(), t),
		index:     evt.index,
	})
	return nil
}

func (t *Timeline) startEntry(index, entry int) {
	if index != t.current {
		return
	}
	r := t.running[entry]
	if r.started {
		return
	}
	r.started = true
	t.InvokeHook(HookCtx{
		Domain: t,
		Now:    t.engine.CurrentTime(),
		Pos:    HookPosAnimStart,
		Item:   &r.entry,
		Detail: t.blocks[index],
	})
}

func (t *Timeline) finishEntry(index, entry int) {
	if index != t.current {
		return
	}
	t.startEntry(index, entry)

	r := t.running[entry]
	if r.finished {
		return
	}
	r.finished = true
	r.entry.Anim.Finish()
	t.InvokeHook(HookCtx{
		Domain: t,
		Now:    t.engine.CurrentTime(),
		Pos:    HookPosAnimEnd,
		Item:   &r.entry,
		Detail: t.blocks[index],
	})
}

func (t *Timeline) endBlock(evt blockEndEvent) error {
	b := t.blocks[evt.index]
	for i := range t.running {
		t.finishEntry(evt.index, i)
	}

	for _, fn := range b.onFinish {
		if err := fn(); err != nil {
			return fmt.Errorf("block %q: %w", b.name, err)
		}
	}

	t.InvokeHook(HookCtx{Domain: t, Now: evt.Time(), Pos: HookPosBlockEnd, Item: b})

	next := evt.index + 1
	if next >= len(t.blocks) {
		t.done = true
		return nil
	}
	t.engine.Schedule(blockStartEvent{
		EventBase: NewEventBase(evt.Time(), t),
		index:     next,
	})
	return nil
}

type blockStartEvent struct {
	EventBase
	index int
}

type blockEndEvent struct {
	EventBase
	index int
}

type animStartEvent struct {
	EventBase
	index int
	entry int
}

type animEndEvent struct {
	EventBase
	index int
	entry int
}
