package board_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/board"
	"github.com/tempguess/tempguess/internal/core/calendar"
	"github.com/tempguess/tempguess/internal/core/storage/memory"
	"github.com/tempguess/tempguess/internal/rebuild"
	"github.com/tempguess/tempguess/internal/rollover"
)

func intPtr(v int) *int { return &v }

func zone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := calendar.LoadZone(name)
	require.NoError(t, err)
	return loc
}

func seededStore() *memory.Store {
	return memory.NewStore(memory.Seed{
		UserID: 1,
		Cities: []v1.City{
			{ID: 1, Name: "Boston", Timezone: "America/New_York"},
			{ID: 2, Name: "Seattle", Timezone: "America/Los_Angeles"},
		},
		Actuals: []v1.Actual{
			{CityID: 2, Date: calendar.NewDayKey(2026, time.October, 17), Hour: 14, Temp: decimal.RequireFromString("58.4")},
			{CityID: 2, Date: calendar.NewDayKey(2026, time.October, 17), Hour: 5, Temp: decimal.RequireFromString("47.9")},
		},
	})
}

func newBoard(t *testing.T, store *memory.Store, now time.Time) (*board.Service, *clockwork.FakeClock) {
	t.Helper()
	fc := clockwork.NewFakeClockAt(now)
	svc, err := board.NewService(context.Background(), store, calendar.NewClock(fc), board.Options{
		ReferenceTimezone: "America/Los_Angeles",
		UserID:            1,
	})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	require.NoError(t, svc.LoadCities(context.Background()))
	return svc, fc
}

func waitForBuild(t *testing.T, svc *board.Service, after string) *board.Grid {
	t.Helper()
	require.Eventually(t, func() bool {
		g := svc.Session().Grid()
		return g != nil && g.BuildID != after
	}, time.Second, 5*time.Millisecond)
	return svc.Session().Grid()
}

func TestScenario_PreNoonFlipsTargetOnce(t *testing.T) {
	la := zone(t, "America/Los_Angeles")
	svc, fc := newBoard(t, seededStore(), time.Date(2026, time.October, 18, 11, 50, 0, 0, la))
	fc.Advance(rebuild.DefaultQuietPeriod)
	first := waitForBuild(t, svc, "")
	require.Equal(t, calendar.TargetToday, first.Target)

	var advances atomic.Int32
	sched := rollover.NewScheduler(fc, svc.ReferenceZone(), rollover.Hooks{
		OnMidnight: svc.OnMidnight,
		OnPreNoon: func(day calendar.DayKey) {
			advances.Add(1)
			svc.OnPreNoon(day)
		},
	}, rollover.Options{})

	sched.Poll()
	fc.Advance(5 * time.Minute)
	sched.Poll() // 11:55, same day: must not arm again

	fc.Advance(5*time.Minute + rollover.DefaultFireSlack)
	require.Eventually(t, func() bool {
		return svc.Session().Target() == calendar.TargetTomorrow && svc.Busy()
	}, time.Second, 5*time.Millisecond)

	fc.Advance(rebuild.DefaultQuietPeriod)
	second := waitForBuild(t, svc, first.BuildID)
	require.Equal(t, calendar.TargetTomorrow, second.Target)
	require.Equal(t, calendar.NewDayKey(2026, time.October, 19), second.Date)

	fc.Advance(time.Hour)
	sched.Poll()
	require.Never(t, func() bool { return advances.Load() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
	require.Equal(t, int32(1), advances.Load())
}

func TestScenario_CityCutoffFollowsLocalNoon(t *testing.T) {
	ny := zone(t, "America/New_York")

	tests := []struct {
		name          string
		nyTime        time.Time
		bostonEnabled bool
	}{
		{name: "11:59 in New York", nyTime: time.Date(2026, time.October, 18, 11, 59, 0, 0, ny), bostonEnabled: true},
		{name: "12:01 in New York", nyTime: time.Date(2026, time.October, 18, 12, 1, 0, 0, ny), bostonEnabled: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, fc := newBoard(t, seededStore(), tc.nyTime)
			fc.Advance(rebuild.DefaultQuietPeriod)
			grid := waitForBuild(t, svc, "")

			require.Equal(t, "Boston", grid.Cards[0].City.Name)
			require.Equal(t, tc.bostonEnabled, grid.Cards[0].InputsEnabled)
			// Seattle is at 08:59 / 09:01 either way.
			require.True(t, grid.Cards[1].InputsEnabled)
			require.Equal(t, "58.4", grid.Cards[1].YesterdayHigh.String())
			require.Equal(t, "47.9", grid.Cards[1].YesterdayLow.String())
		})
	}
}

func TestScenario_SaveThenRebuildShowsLastGuess(t *testing.T) {
	la := zone(t, "America/Los_Angeles")
	store := seededStore()
	svc, fc := newBoard(t, store, time.Date(2026, time.October, 18, 14, 0, 0, 0, la))
	svc.SetTarget(calendar.TargetTomorrow)
	fc.Advance(rebuild.DefaultQuietPeriod)
	first := waitForBuild(t, svc, "")

	res, err := svc.Save(context.Background(), []v1.ForecastEntry{
		{CityID: 1, High: intPtr(63)},
		{CityID: 1, Low: intPtr(48)},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Saved)

	day, err := calendar.NewClock(fc).DayKeyForTarget(calendar.TargetTomorrow, "America/Los_Angeles")
	require.NoError(t, err)
	require.Equal(t, day, res.Date)

	subs, err := store.ListRecentSubmissions(context.Background(), 1, []calendar.DayKey{day})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, intPtr(63), subs[0].High)
	require.Equal(t, intPtr(48), subs[0].Low)

	fc.Advance(rebuild.DefaultQuietPeriod)
	second := waitForBuild(t, svc, first.BuildID)
	require.Equal(t, intPtr(63), second.Cards[0].LastHigh)
	require.Equal(t, intPtr(48), second.Cards[0].LastLow)
	require.Equal(t, "Saved 1 city forecasts for tomorrow!", svc.Session().Status().Message)
}
