package choreo

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrPhaseOrder is returned when the scene tries to skip or repeat a phase
var ErrPhaseOrder = errors.New("scene phase out of order")

// Phase is a step of the strictly linear scene state machine
type Phase int

const (
	PhaseInit Phase = iota
	PhaseTopologyBuilt
	PhasePacketsSpawned
	PhaseDispersing
	PhaseArrived
	PhaseReassembled
	PhaseMeterAnimating
	PhaseDone
)

var phaseNames = [...]string{
	"Init",
	"TopologyBuilt",
	"PacketsSpawned",
	"Dispersing",
	"Arrived",
	"Reassembled",
	"MeterAnimating",
	"Done",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// PhaseMachine tracks the scene phase. It only ever moves one step forward.
type PhaseMachine struct {
	current   Phase
	listeners []func(from, to Phase)
}

// NewPhaseMachine starts in PhaseInit
func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{current: PhaseInit}
}

// Current returns the phase the scene is in
func (m *PhaseMachine) Current() Phase {
	return m.current
}

// OnChange registers a listener called after every transition
func (m *PhaseMachine) OnChange(fn func(from, to Phase)) {
	m.listeners = append(m.listeners, fn)
}

// Advance moves to next, which must directly follow the current phase
func (m *PhaseMachine) Advance(next Phase) error {
	if next != m.current+1 {
		return fmt.Errorf("%w: %s -> %s", ErrPhaseOrder, m.current, next)
	}

	from := m.current
	m.current = next
	log.WithFields(log.Fields{"from": from, "to": next}).Debug("scene phase")

	for _, fn := range m.listeners {
		fn(from, next)
	}
	return nil
}

// advanceTo returns a block callback that advances to next
func (m *PhaseMachine) advanceTo(next Phase) func() error {
	return func() error {
		return m.Advance(next)
	}
}
