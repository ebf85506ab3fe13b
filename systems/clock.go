package systems

import (
	"sync"
	"time"
)

// DefaultTickPeriod is the wall-clock interval between ticks.
const DefaultTickPeriod = 25 * time.Millisecond

// ClockState is the lifecycle state of a Clock.
type ClockState int

const (
	ClockStopped ClockState = iota
	ClockRunning
)

func (s ClockState) String() string {
	if s == ClockRunning {
		return "running"
	}
	return "stopped"
}

// Clock calls step at a fixed period on a single goroutine. Steps never
// overlap: a slow step delays the next one instead of running beside it.
// After each step a frame signal is offered without blocking.
type Clock struct {
	period time.Duration
	step   func()

	frames chan struct{}
	stop   chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	state   ClockState
	started bool
}

// NewClock creates a stopped clock.
func NewClock(period time.Duration, step func()) *Clock {
	if period <= 0 {
		panic("systems: clock period must be positive")
	}
	if step == nil {
		panic("systems: nil clock step")
	}
	return &Clock{
		period: period,
		step:   step,
		frames: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Frames delivers a signal after each completed step. Signals coalesce when
// the consumer falls behind.
func (c *Clock) Frames() <-chan struct{} {
	return c.frames
}

// State returns the current lifecycle state.
func (c *Clock) State() ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins ticking. It has no effect on a running or already stopped clock.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true
	c.state = ClockRunning
	go c.run()
}

// Stop prevents further steps and waits for a step in flight to finish.
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.state != ClockRunning {
		c.mu.Unlock()
		return
	}
	c.state = ClockStopped
	close(c.stop)
	c.mu.Unlock()

	<-c.done
}

func (c *Clock) run() {
	defer close(c.done)

	ticker := time.NewTicker(c.period)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}

		// Both cases may be ready at once; stop wins.
		select {
		case <-c.stop:
			return
		default:
		}

		c.step()

		select {
		case c.frames <- struct{}{}:
		default:
		}
	}
}
