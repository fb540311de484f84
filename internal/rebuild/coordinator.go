// Package rebuild serializes board rebuilds behind a debounce.
package rebuild

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultQuietPeriod is how long requests must stop arriving before a rebuild runs.
const DefaultQuietPeriod = 250 * time.Millisecond

// Func fetches everything one rebuild needs and returns the step that
// publishes it. The render step is skipped when a newer request arrived
// while Func was running.
type Func func(ctx context.Context) (render func(), err error)

// Coordinator turns bursts of RequestRebuild calls into single rebuilds:
//   - debounce: only the last request in a quiet period schedules work
//   - one at a time: a request maturing during a rebuild queues one trailing run
//   - staleness: a rebuild superseded during its fetch does not render
type Coordinator struct {
	ctx     context.Context
	clock   clockwork.Clock
	quiet   time.Duration
	build   Func
	onError func(error)

	mu       sync.Mutex
	seq      uint64
	timer    clockwork.Timer
	inFlight bool
	trailing bool
	closed   bool
}

// New creates a coordinator. onError receives fetch failures of rebuilds
// that were not superseded; it may be nil.
func New(ctx context.Context, clock clockwork.Clock, quiet time.Duration, build Func, onError func(error)) *Coordinator {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Coordinator{
		ctx:     ctx,
		clock:   clock,
		quiet:   quiet,
		build:   build,
		onError: onError,
	}
}

// RequestRebuild may be called from any goroutine at any rate.
func (c *Coordinator) RequestRebuild() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.seq++
	token := c.seq
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.AfterFunc(c.quiet, func() { c.onQuiet(token) })
}

// Busy reports whether a rebuild is scheduled or running.
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight || c.timer != nil
}

// Stop drops any scheduled rebuild and ignores later requests.
// A rebuild already running finishes normally.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) onQuiet(token uint64) {
	c.mu.Lock()
	if c.closed || token != c.seq {
		// A newer request re-armed the debounce.
		c.mu.Unlock()
		return
	}
	c.timer = nil
	if c.inFlight {
		c.trailing = true
		c.mu.Unlock()
		slog.Debug("[Rebuild] Rebuild in flight, queued trailing run", "token", token)
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	c.run()
}

func (c *Coordinator) run() {
	for {
		c.mu.Lock()
		token := c.seq
		c.mu.Unlock()

		render, err := c.fetch()

		c.mu.Lock()
		stale := token != c.seq
		c.mu.Unlock()

		switch {
		case stale:
			slog.Debug("[Rebuild] Discarding superseded rebuild", "token", token)
		case err != nil:
			slog.Error("[Rebuild] Rebuild failed", "token", token, "error", err)
			c.onError(err)
		case render != nil:
			render()
		}

		c.mu.Lock()
		if !c.trailing || c.closed {
			c.trailing = false
			c.inFlight = false
			c.mu.Unlock()
			return
		}
		c.trailing = false
		c.mu.Unlock()
	}
}

// fetch runs the build function and converts a panic into an error so the
// in-flight flag is always released.
func (c *Coordinator) fetch() (render func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			render = nil
			err = fmt.Errorf("rebuild panicked: %v", r)
		}
	}()
	return c.build(c.ctx)
}
