// Package meter animates a score from zero up to its rounded value.
//
// A Meter owns at most one running animation. Starting a new one, calling
// Stop, or cancelling the context passed to Start all end the previous run,
// and no frame is delivered after Stop returns.
package meter

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/anantbhadani/CareerCraft/internal/metrics"
)

const (
	DefaultDuration = 2 * time.Second
	DefaultSteps    = 60
)

type State int

const (
	Idle State = iota
	Animating
	Settled
)

func (s State) String() string {
	switch s {
	case Animating:
		return "animating"
	case Settled:
		return "settled"
	default:
		return "idle"
	}
}

// Frame is one rendered value of the meter.
type Frame struct {
	Value   int    `json:"value"`
	Target  int    `json:"target"`
	Band    Band   `json:"band"`
	Color   string `json:"color"`
	Done    bool   `json:"done"`
	Verdict string `json:"verdict,omitempty"`
}

type Option func(*Meter)

func WithDuration(d time.Duration) Option {
	return func(m *Meter) {
		if d > 0 {
			m.duration = d
		}
	}
}

func WithSteps(n int) Option {
	return func(m *Meter) {
		if n > 0 {
			m.steps = n
		}
	}
}

// WithFrameFunc registers the frame callback. It runs on the animation
// goroutine and must not call back into the Meter.
func WithFrameFunc(fn func(Frame)) Option {
	return func(m *Meter) {
		m.onFrame = fn
	}
}

type run struct {
	cancel context.CancelFunc
	done   chan struct{}
}

type Meter struct {
	duration time.Duration
	steps    int
	onFrame  func(Frame)

	mu     sync.Mutex
	state  State
	value  int
	target int
	score  float64
	run    *run
}

func New(opts ...Option) *Meter {
	m := &Meter{duration: DefaultDuration, steps: DefaultSteps}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start animates from zero to Round(Clamp(score)), replacing any running animation.
func (m *Meter) Start(ctx context.Context, score float64) {
	score = Clamp(score)
	runCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel, done: make(chan struct{})}
	target := Round(score)

	m.mu.Lock()
	prev := m.run
	if prev != nil {
		prev.cancel()
	}
	m.run = r
	m.state = Animating
	m.value = 0
	m.target = target
	m.score = score
	m.mu.Unlock()

	if prev != nil {
		<-prev.done
	}
	metrics.MeterStarted()
	go m.animate(runCtx, r, target)
}

// Stop ends the running animation and snaps the display to its target.
// No frame is emitted for the snap.
func (m *Meter) Stop() {
	m.mu.Lock()
	r := m.run
	if r != nil {
		r.cancel()
		m.run = nil
		m.value = m.target
		m.state = Settled
	}
	m.mu.Unlock()

	if r != nil {
		<-r.done
	}
}

// Done is closed when the current run ends. With no run it is already closed.
func (m *Meter) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.run == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return m.run.done
}

func (m *Meter) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot returns the frame currently on display.
func (m *Meter) Snapshot() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frameLocked()
}

func (m *Meter) frameLocked() Frame {
	band := BandFor(float64(m.target))
	f := Frame{
		Value:  m.value,
		Target: m.target,
		Band:   band,
		Color:  band.Color(),
		Done:   m.state == Settled,
	}
	if f.Done {
		f.Verdict = Verdict(m.score)
	}
	return f
}

func (m *Meter) animate(ctx context.Context, r *run, target int) {
	defer close(r.done)
	defer metrics.MeterStopped()

	interval := m.duration / time.Duration(m.steps)
	if interval <= 0 {
		interval = time.Millisecond
	}
	increment := float64(target) / float64(m.steps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	current := 0.0
	for {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			if m.run == r {
				m.run = nil
				m.value = target
				m.state = Settled
			}
			m.mu.Unlock()
			return
		case <-ticker.C:
		}

		current += increment

		m.mu.Lock()
		if m.run != r || ctx.Err() != nil {
			m.mu.Unlock()
			return
		}
		settled := current >= float64(target)
		if settled {
			m.value = target
			m.state = Settled
			m.run = nil
		} else {
			m.value = int(math.Floor(current))
		}
		frame := m.frameLocked()
		m.mu.Unlock()

		if m.onFrame != nil {
			m.onFrame(frame)
		}
		if settled {
			return
		}
	}
}
