// Package playback drives the scene timeline from the wall clock.
package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/afroash/rdma-viz/choreo"
	"github.com/afroash/rdma-viz/timeline"
)

// ErrAlreadyStarted is returned when a player is started twice
var ErrAlreadyStarted = errors.New("player already started")

// Player advances a freshly built scene in real time and publishes copied
// frames on its Updates channel. The loop goroutine owns the scene; the
// channel is closed when the timeline ends, Stop is called or an error occurs.
type Player struct {
	fps   int
	speed float64
	hooks []timeline.Hook

	updates chan FrameUpdate
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	started bool
	err     error
}

// NewPlayer creates a player ticking fps times per second. speed scales wall
// time into virtual time.
func NewPlayer(fps int, speed float64) *Player {
	if fps <= 0 {
		fps = 30
	}
	if speed <= 0 {
		speed = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		fps:     fps,
		speed:   speed,
		updates: make(chan FrameUpdate, fps),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// AcceptHook attaches a hook to the scene timeline. It must be called before
// Start.
func (p *Player) AcceptHook(h timeline.Hook) {
	p.hooks = append(p.hooks, h)
}

// Start builds the scene and begins the playback loop in the background
func (p *Player) Start() error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	p.mu.Unlock()

	engine := timeline.NewSerialEngine()
	s, err := choreo.Build(engine)
	if err != nil {
		close(p.updates)
		return err
	}
	for _, h := range p.hooks {
		s.Timeline.AcceptHook(h)
	}
	if err := s.Timeline.Start(); err != nil {
		close(p.updates)
		return err
	}

	log.WithFields(log.Fields{
		"fps":      p.fps,
		"speed":    p.speed,
		"duration": float64(s.Timeline.Duration()),
	}).Info("playback started")

	go p.loop(engine, s)
	return nil
}

// Stop halts playback. The updates channel is closed by the loop.
func (p *Player) Stop() {
	p.cancel()
}

// Updates returns the channel that emits frame updates
func (p *Player) Updates() <-chan FrameUpdate {
	return p.updates
}

// Err returns the error that ended playback, if any. It is meaningful once
// the updates channel is closed.
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Player) fail(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
	log.WithError(err).Error("playback stopped")
}

func (p *Player) loop(engine *timeline.SerialEngine, s *choreo.Scene) {
	defer close(p.updates)

	ticker := time.NewTicker(time.Second / time.Duration(p.fps))
	defer ticker.Stop()

	began := time.Now()
	duration := s.Timeline.Duration()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
		}

		now := timeline.VTimeInSec(time.Since(began).Seconds() * p.speed)
		if now > duration {
			now = duration
		}
		if err := engine.RunUntil(now); err != nil {
			p.fail(err)
			return
		}
		s.Timeline.Sample(now)

		update := newUpdate(s, now)
		done := update.Done

		select {
		case <-p.ctx.Done():
			return
		case p.updates <- update:
		}

		if done {
			log.Info("playback finished")
			return
		}
	}
}

// newUpdate copies the scene state at now. The meter value is only carried
// once the meter phase has begun.
func newUpdate(s *choreo.Scene, now timeline.VTimeInSec) FrameUpdate {
	u := FrameUpdate{
		Frame:    s.Snapshot(now),
		Progress: progress(now, s.Timeline.Duration()),
		Done:     s.Timeline.Done(),
	}
	if s.Phases.Current() >= choreo.PhaseMeterAnimating {
		u.Meter = s.Meter.Value.Get()
		u.MeterLive = true
	}
	return u
}

func progress(now, duration timeline.VTimeInSec) float64 {
	if duration <= 0 {
		return 1
	}
	return float64(now / duration)
}
