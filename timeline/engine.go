package timeline

import (
	"reflect"

	log "github.com/sirupsen/logrus"
)

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	Schedule(e Event)
}

// An Engine keeps the virtual clock running.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run processes all the events until none is left
	Run() error

	// RunUntil processes the events due at or before t and moves the clock
	// to t.
	RunUntil(t VTimeInSec) error
}

// A SerialEngine is an Engine that always run events one after another. A
// handler error stops the engine and is returned to the caller.
type SerialEngine struct {
	HookableBase

	time  VTimeInSec
	queue *EventQueue
}

// NewSerialEngine creates a SerialEngine
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)
	e.queue = NewEventQueue()
	return e
}

// Schedule register an event to be happen in the future
func (e *SerialEngine) Schedule(evt Event) {
	if evt.Time() < e.time {
		log.Panicf("scheduling %s @ %.6f earlier than current time %.6f",
			reflect.TypeOf(evt), evt.Time(), e.time)
	}
	e.queue.Push(evt)
}

// Run processes all the events scheduled in the SerialEngine
func (e *SerialEngine) Run() error {
	for e.queue.Len() > 0 {
		if err := e.step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil processes all events due no later than t
func (e *SerialEngine) RunUntil(t VTimeInSec) error {
	for e.queue.Len() > 0 && e.queue.Peek().Time() <= t {
		if err := e.step(); err != nil {
			return err
		}
	}
	if t > e.time {
		e.time = t
	}
	return nil
}

// Pending returns the number of events still queued
func (e *SerialEngine) Pending() int {
	return e.queue.Len()
}

func (e *SerialEngine) step() error {
	evt := e.queue.Pop()
	if evt.Time() < e.time {
		log.Panicf(
			"cannot run event in the past, evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.time,
		)
	}
	e.time = evt.Time()

	hookCtx := HookCtx{
		Domain: e,
		Now:    e.time,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	if err := evt.Handler().Handle(evt); err != nil {
		return err
	}

	hookCtx.Pos = HookPosAfterEvent
	e.InvokeHook(hookCtx)
	return nil
}

// CurrentTime returns the current time at which the engine is at.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	return e.time
}
