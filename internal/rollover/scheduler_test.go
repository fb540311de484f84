package rollover

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/tempguess/tempguess/internal/core/calendar"
)

type recorder struct {
	mu       sync.Mutex
	midnight []calendar.DayKey
	preNoon  []calendar.DayKey
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnMidnight: func(day calendar.DayKey) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.midnight = append(r.midnight, day)
		},
		OnPreNoon: func(day calendar.DayKey) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.preNoon = append(r.preNoon, day)
		},
	}
}

func (r *recorder) counts() (midnight, preNoon int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.midnight), len(r.preNoon)
}

func (r *recorder) midnightDays() []calendar.DayKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]calendar.DayKey(nil), r.midnight...)
}

func (r *recorder) preNoonDays() []calendar.DayKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]calendar.DayKey(nil), r.preNoon...)
}

func losAngeles(t *testing.T) *time.Location {
	t.Helper()
	loc, err := calendar.LoadZone("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func startScheduler(t *testing.T, s *Scheduler, fc *clockwork.FakeClock) (cancel func()) {
	t.Helper()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	// The midnight timer is armed after the ticker exists.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.midnightTimer != nil
	}, 2*time.Second, time.Millisecond)

	return func() {
		stop()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not stop")
		}
	}
}

func TestPoll_MidnightFiresOnceWithPerSecondPolling(t *testing.T) {
	la := losAngeles(t)
	fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 18, 23, 59, 55, 0, la))
	rec := &recorder{}
	s := NewScheduler(fc, la, rec.hooks(), Options{PollInterval: time.Second})

	s.Poll()
	for i := 0; i < 30; i++ {
		fc.Advance(time.Second)
		s.Poll()
	}

	midnight, preNoon := rec.counts()
	require.Equal(t, 1, midnight)
	require.Equal(t, 0, preNoon)
	require.Equal(t, []calendar.DayKey{calendar.NewDayKey(2026, time.October, 19)}, rec.midnightDays())
	require.Equal(t, calendar.NewDayKey(2026, time.October, 19), s.State().LastMidnight)
}

func TestStart_MidnightTimerAndPollsFireOnce(t *testing.T) {
	la := losAngeles(t)
	fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 18, 23, 59, 0, 0, la))
	rec := &recorder{}
	s := NewScheduler(fc, la, rec.hooks(), Options{PollInterval: time.Second})

	stop := startScheduler(t, s, fc)
	defer stop()

	for i := 0; i < 120; i++ {
		fc.Advance(time.Second)
	}

	require.Eventually(t, func() bool {
		midnight, _ := rec.counts()
		return midnight == 1
	}, time.Second, 5*time.Millisecond)
	require.Never(t, func() bool {
		midnight, _ := rec.counts()
		return midnight > 1
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestStart_MidnightRearmsAcrossFallBack(t *testing.T) {
	la := losAngeles(t)
	fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 31, 23, 59, 50, 0, la))
	rec := &recorder{}
	// Long poll interval so only the midnight timer can fire.
	s := NewScheduler(fc, la, rec.hooks(), Options{PollInterval: 1000 * time.Hour})

	stop := startScheduler(t, s, fc)
	defer stop()

	fc.Advance(11 * time.Second)
	require.Eventually(t, func() bool {
		midnight, _ := rec.counts()
		return midnight == 1
	}, time.Second, 5*time.Millisecond)

	waitCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(waitCtx, 2))

	// November 1 has 25 hours; 24 hours later is still November 1.
	fc.Advance(24 * time.Hour)
	require.Never(t, func() bool {
		midnight, _ := rec.counts()
		return midnight != 1
	}, 50*time.Millisecond, 5*time.Millisecond)

	fc.Advance(time.Hour)
	require.Eventually(t, func() bool {
		midnight, _ := rec.counts()
		return midnight == 2
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, []calendar.DayKey{
		calendar.NewDayKey(2026, time.November, 1),
		calendar.NewDayKey(2026, time.November, 2),
	}, rec.midnightDays())
}

func TestPoll_PreNoonFiresOnceWithTenSecondPolling(t *testing.T) {
	la := losAngeles(t)
	fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 11, 50, 0, 0, la))
	rec := &recorder{}
	s := NewScheduler(fc, la, rec.hooks(), Options{PollInterval: 10 * time.Second})

	s.Poll()
	require.Equal(t, calendar.NewDayKey(2026, time.October, 19), s.State().ArmedPreNoon)
	require.True(t, s.State().LastPreNoon.IsZero())

	// Poll every 10s through 12:01, including 11:55.
	for i := 0; i < 66; i++ {
		fc.Advance(10 * time.Second)
		s.Poll()
	}

	require.Eventually(t, func() bool {
		_, preNoon := rec.counts()
		return preNoon == 1
	}, time.Second, 5*time.Millisecond)
	require.Never(t, func() bool {
		_, preNoon := rec.counts()
		return preNoon > 1
	}, 100*time.Millisecond, 10*time.Millisecond)
	require.Equal(t, []calendar.DayKey{calendar.NewDayKey(2026, time.October, 19)}, rec.preNoonDays())
	require.Equal(t, calendar.NewDayKey(2026, time.October, 19), s.State().LastPreNoon)
}

func TestPoll_PreNoonFiresByNoon(t *testing.T) {
	la := losAngeles(t)
	fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 11, 50, 0, 0, la))
	rec := &recorder{}
	s := NewScheduler(fc, la, rec.hooks(), Options{})

	s.Poll()

	fc.Advance(10*time.Minute - time.Millisecond)
	require.Never(t, func() bool {
		_, preNoon := rec.counts()
		return preNoon > 0
	}, 50*time.Millisecond, 5*time.Millisecond)

	fc.Advance(DefaultFireSlack + time.Millisecond)
	require.Eventually(t, func() bool {
		_, preNoon := rec.counts()
		return preNoon == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPoll_PreNoonWindowBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		hour, min int
		wantArmed bool
	}{
		{name: "before window", hour: 11, min: 44, wantArmed: false},
		{name: "window opens", hour: 11, min: 45, wantArmed: true},
		{name: "last minute", hour: 11, min: 59, wantArmed: true},
		{name: "noon is outside", hour: 12, min: 0, wantArmed: false},
		{name: "missed window is not back-filled", hour: 12, min: 5, wantArmed: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			la := losAngeles(t)
			fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, tc.hour, tc.min, 0, 0, la))
			rec := &recorder{}
			s := NewScheduler(fc, la, rec.hooks(), Options{})

			s.Poll()

			armed := !s.State().ArmedPreNoon.IsZero()
			require.Equal(t, tc.wantArmed, armed)

			fc.Advance(time.Hour)
			if tc.wantArmed {
				require.Eventually(t, func() bool {
					_, preNoon := rec.counts()
					return preNoon == 1
				}, time.Second, 5*time.Millisecond)
				return
			}
			require.Never(t, func() bool {
				_, preNoon := rec.counts()
				return preNoon > 0
			}, 50*time.Millisecond, 5*time.Millisecond)
		})
	}
}

func TestPoll_PreNoonOnSpringForwardDay(t *testing.T) {
	la := losAngeles(t)
	// 23-hour day; noon is still 12:00 local.
	fc := clockwork.NewFakeClockAt(time.Date(2026, 3, 8, 11, 46, 0, 0, la))
	rec := &recorder{}
	s := NewScheduler(fc, la, rec.hooks(), Options{})

	s.Poll()
	fc.Advance(15 * time.Minute)
	require.Eventually(t, func() bool {
		_, preNoon := rec.counts()
		return preNoon == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, calendar.NewDayKey(2026, time.March, 8), rec.preNoonDays()[0])
}

func TestStart_Reentrancy(t *testing.T) {
	la := losAngeles(t)
	fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 8, 0, 0, 0, la))
	s := NewScheduler(fc, la, Hooks{}, Options{})

	stop := startScheduler(t, s, fc)
	require.True(t, s.Running())

	err := s.Start(context.Background())
	require.ErrorIs(t, err, ErrReentrancy)

	stop()
	require.False(t, s.Running())
}

func TestStart_StopCancelsTimers(t *testing.T) {
	la := losAngeles(t)
	fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 11, 55, 0, 0, la))
	rec := &recorder{}
	s := NewScheduler(fc, la, rec.hooks(), Options{PollInterval: 1000 * time.Hour})

	stop := startScheduler(t, s, fc)
	require.Eventually(t, func() bool {
		return !s.State().ArmedPreNoon.IsZero()
	}, time.Second, 5*time.Millisecond)
	stop()
	require.True(t, s.State().ArmedPreNoon.IsZero())

	fc.Advance(24 * time.Hour)
	require.Never(t, func() bool {
		midnight, preNoon := rec.counts()
		return midnight > 0 || preNoon > 0
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestStart_RestartInsideWindowStillFiresOnce(t *testing.T) {
	la := losAngeles(t)
	fc := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 11, 50, 0, 0, la))
	rec := &recorder{}
	s := NewScheduler(fc, la, rec.hooks(), Options{PollInterval: time.Minute})

	stop := startScheduler(t, s, fc)
	require.Eventually(t, func() bool {
		return !s.State().ArmedPreNoon.IsZero()
	}, time.Second, 5*time.Millisecond)
	stop()

	stop = startScheduler(t, s, fc)
	defer stop()
	require.Eventually(t, func() bool {
		return !s.State().ArmedPreNoon.IsZero()
	}, time.Second, 5*time.Millisecond)

	for i := 0; i < 20; i++ {
		fc.Advance(time.Minute)
	}

	require.Eventually(t, func() bool {
		_, preNoon := rec.counts()
		return preNoon == 1
	}, time.Second, 5*time.Millisecond)
	require.Never(t, func() bool {
		_, preNoon := rec.counts()
		return preNoon > 1
	}, 100*time.Millisecond, 10*time.Millisecond)
	require.Equal(t, calendar.NewDayKey(2026, time.October, 19), s.State().LastPreNoon)
}
