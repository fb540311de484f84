// Package rollover fires day-boundary triggers in a reference time zone:
// once at local midnight and once at the end of the pre-noon window.
package rollover

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tempguess/tempguess/internal/core/calendar"
)

// ErrReentrancy is returned by Start while another Start is still running.
var ErrReentrancy = errors.New("rollover scheduler is already running")

const (
	DefaultPollInterval  = 2 * time.Minute
	DefaultPreNoonWindow = 15 * time.Minute
	DefaultMidnightSlack = 100 * time.Millisecond
	DefaultFireSlack     = 50 * time.Millisecond
)

// TriggerState records the last calendar day each trigger fired for.
// ArmedPreNoon is the day of a pending pre-noon one-shot; stop clears it.
type TriggerState struct {
	LastMidnight calendar.DayKey
	LastPreNoon  calendar.DayKey
	ArmedPreNoon calendar.DayKey
}

// Hooks are invoked on timer goroutines and should return quickly.
type Hooks struct {
	// OnMidnight runs once per reference-zone day, just after midnight.
	OnMidnight func(day calendar.DayKey)
	// OnPreNoon runs once per reference-zone day, at the cutoff hour.
	OnPreNoon func(day calendar.DayKey)
}

type Options struct {
	PollInterval  time.Duration
	PreNoonWindow time.Duration
	CutoffHour    int
	MidnightSlack time.Duration
	FireSlack     time.Duration
}

func (o Options) normalized() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.PreNoonWindow <= 0 {
		o.PreNoonWindow = DefaultPreNoonWindow
	}
	if o.CutoffHour <= 0 || o.CutoffHour > 23 {
		o.CutoffHour = 12
	}
	if o.MidnightSlack < 0 {
		o.MidnightSlack = 0
	}
	if o.FireSlack < 0 {
		o.FireSlack = 0
	}
	return o
}

// Scheduler owns the two rollover triggers. Every timer delay is recomputed
// from the current instant when armed, so drift never accumulates.
type Scheduler struct {
	clock clockwork.Clock
	loc   *time.Location
	hooks Hooks
	opts  Options

	running atomic.Bool

	mu            sync.Mutex
	state         TriggerState
	midnightTimer clockwork.Timer
	preNoonTimer  clockwork.Timer
	stopped       bool
}

func NewScheduler(clock clockwork.Clock, loc *time.Location, hooks Hooks, opts Options) *Scheduler {
	return &Scheduler{
		clock: clock,
		loc:   loc,
		hooks: hooks,
		opts:  opts.normalized(),
	}
}

// Start arms the midnight trigger, polls for the pre-noon window every
// PollInterval and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrReentrancy
	}
	defer s.running.Store(false)

	ticker := s.clock.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	s.mu.Lock()
	s.stopped = false
	s.initLocked(calendar.DayKeyOf(s.now()))
	s.armMidnightLocked()
	s.mu.Unlock()

	slog.Info("[Rollover] Starting scheduler",
		"reference_timezone", s.loc.String(),
		"poll_interval", s.opts.PollInterval,
		"pre_noon_window", s.opts.PreNoonWindow,
	)

	s.Poll()

	for {
		select {
		case <-ticker.Chan():
			s.Poll()
		case <-ctx.Done():
			s.stop()
			slog.Info("[Rollover] Stopping (context cancelled)")
			return nil
		}
	}
}

// Running reports whether Start is active.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// State returns a copy of the trigger state.
func (s *Scheduler) State() TriggerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Poll checks both triggers against the current instant. It fires a midnight
// that a suspended timer missed, and arms the pre-noon one-shot when inside
// the window. A window that passed without a poll is not back-filled.
func (s *Scheduler) Poll() {
	now := s.now()
	today := calendar.DayKeyOf(now)

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.initLocked(today)

	midnightDue := s.state.LastMidnight != today
	if midnightDue {
		s.state.LastMidnight = today
	}

	noon := today.At(s.loc, s.opts.CutoffHour, 0)
	windowStart := noon.Add(-s.opts.PreNoonWindow)
	inWindow := !now.Before(windowStart) && now.Before(noon)
	if inWindow && s.state.LastPreNoon != today && s.state.ArmedPreNoon != today {
		s.state.ArmedPreNoon = today
		s.armPreNoonLocked(today, noon.Sub(now))
	}
	s.mu.Unlock()

	if midnightDue {
		slog.Info("[Rollover] Midnight caught up by poll", "day_key", today.String())
		s.fireMidnight(today)
	}
}

func (s *Scheduler) initLocked(today calendar.DayKey) {
	if s.state.LastMidnight.IsZero() {
		s.state.LastMidnight = today
	}
}

func (s *Scheduler) armMidnightLocked() {
	if s.midnightTimer != nil {
		s.midnightTimer.Stop()
	}
	now := s.clock.Now()
	next := calendar.NextMidnight(now, s.loc)
	delay := next.Sub(now) + s.opts.MidnightSlack
	s.midnightTimer = s.clock.AfterFunc(delay, s.onMidnightTimer)

	slog.Debug("[Rollover] Armed midnight trigger",
		"fire_at", next.In(s.loc).Format(time.RFC3339),
		"delay", delay,
	)
}

func (s *Scheduler) onMidnightTimer() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	today := calendar.DayKeyOf(s.now())
	due := s.state.LastMidnight != today
	if due {
		s.state.LastMidnight = today
	}
	s.armMidnightLocked()
	s.mu.Unlock()

	if due {
		s.fireMidnight(today)
	}
}

func (s *Scheduler) fireMidnight(day calendar.DayKey) {
	slog.Info("[Rollover] Midnight trigger fired", "day_key", day.String())
	if s.hooks.OnMidnight != nil {
		s.hooks.OnMidnight(day)
	}
}

func (s *Scheduler) armPreNoonLocked(day calendar.DayKey, untilNoon time.Duration) {
	if s.preNoonTimer != nil {
		s.preNoonTimer.Stop()
	}
	delay := untilNoon + s.opts.FireSlack
	s.preNoonTimer = s.clock.AfterFunc(delay, func() { s.onPreNoonTimer(day) })

	slog.Info("[Rollover] Armed pre-noon trigger", "day_key", day.String(), "delay", delay)
}

func (s *Scheduler) onPreNoonTimer(day calendar.DayKey) {
	s.mu.Lock()
	if s.stopped || s.state.LastPreNoon == day {
		s.mu.Unlock()
		return
	}
	s.state.LastPreNoon = day
	if s.state.ArmedPreNoon == day {
		s.state.ArmedPreNoon = calendar.DayKey{}
	}
	s.mu.Unlock()

	slog.Info("[Rollover] Pre-noon trigger fired", "day_key", day.String())
	if s.hooks.OnPreNoon != nil {
		s.hooks.OnPreNoon(day)
	}
}

func (s *Scheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.midnightTimer != nil {
		s.midnightTimer.Stop()
		s.midnightTimer = nil
	}
	if s.preNoonTimer != nil {
		s.preNoonTimer.Stop()
		s.preNoonTimer = nil
	}
	// A one-shot that has not fired is re-armed by the next run's poll.
	s.state.ArmedPreNoon = calendar.DayKey{}
}

func (s *Scheduler) now() time.Time {
	return s.clock.Now().In(s.loc)
}
