package calendar

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestLoadZone_Invalid(t *testing.T) {
	for _, name := range []string{"", "Local", "local", "Mars/Olympus_Mons", " America/New_York"} {
		t.Run(name, func(t *testing.T) {
			loc, err := LoadZone(name)
			require.ErrorIs(t, err, ErrInvalidTimezone)
			require.Nil(t, loc)
		})
	}
}

func TestLoadZone_Cached(t *testing.T) {
	first, err := LoadZone("Europe/Berlin")
	require.NoError(t, err)
	second, err := LoadZone("Europe/Berlin")
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestClock_NowDiffersByZone(t *testing.T) {
	instant := time.Date(2026, 10, 18, 19, 30, 0, 0, time.UTC)
	clock := NewClock(clockwork.NewFakeClockAt(instant))

	ny, err := clock.Now("America/New_York")
	require.NoError(t, err)
	la, err := clock.Now("America/Los_Angeles")
	require.NoError(t, err)

	require.Equal(t, 15, ny.Hour)
	require.Equal(t, 12, la.Hour)
	require.Equal(t, 30, la.Minute)
	require.Equal(t, 3, ny.Hour-la.Hour)
	require.True(t, ny.Instant.Equal(la.Instant))
}

func TestClock_NowRejectsUnknownZone(t *testing.T) {
	clock := NewClock(clockwork.NewFakeClock())

	_, err := clock.Now("Not/AZone")
	require.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = clock.DayKeyForTarget(TargetToday, "Not/AZone")
	require.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestClock_DayKeyDependsOnZone(t *testing.T) {
	// 02:00 UTC on Oct 19 is still the evening of Oct 18 on the west coast.
	clock := NewClock(clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)))

	utc, err := clock.StartOfToday("UTC")
	require.NoError(t, err)
	la, err := clock.StartOfToday("America/Los_Angeles")
	require.NoError(t, err)

	require.Equal(t, "2026-10-19", utc.String())
	require.Equal(t, "2026-10-18", la.String())
}

func TestClock_TomorrowIsOneCalendarDayAcrossDST(t *testing.T) {
	la, err := LoadZone("America/Los_Angeles")
	require.NoError(t, err)

	instants := []time.Time{
		time.Date(2026, 3, 7, 23, 30, 0, 0, la),   // eve of spring forward
		time.Date(2026, 3, 8, 0, 30, 0, 0, la),    // 23-hour day
		time.Date(2026, 3, 8, 23, 59, 0, 0, la),   // last minute of 23-hour day
		time.Date(2026, 10, 31, 23, 30, 0, 0, la), // eve of fall back
		time.Date(2026, 11, 1, 1, 30, 0, 0, la),   // ambiguous hour of 25-hour day
		time.Date(2026, 11, 1, 23, 59, 0, 0, la),  // last minute of 25-hour day
	}

	for _, instant := range instants {
		t.Run(instant.String(), func(t *testing.T) {
			clock := NewClock(clockwork.NewFakeClockAt(instant))

			today, err := clock.DayKeyForTarget(TargetToday, "America/Los_Angeles")
			require.NoError(t, err)
			tomorrow, err := clock.DayKeyForTarget(TargetTomorrow, "America/Los_Angeles")
			require.NoError(t, err)

			require.Equal(t, DayKeyOf(instant), today)
			require.Equal(t, today.AddDays(1), tomorrow)
			require.Equal(t, 24*time.Hour, tomorrow.At(time.UTC, 0, 0).Sub(today.At(time.UTC, 0, 0)))
		})
	}
}

func TestNextMidnight(t *testing.T) {
	la, err := LoadZone("America/Los_Angeles")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "ordinary day",
			now:  time.Date(2026, 10, 18, 14, 0, 0, 0, la),
			want: time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly midnight moves to the next one",
			now:  time.Date(2026, 10, 19, 0, 0, 0, 0, la),
			want: time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC),
		},
		{
			name: "fall back day is 25 hours long",
			now:  time.Date(2026, 11, 1, 0, 0, 1, 0, la),
			want: time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "spring forward eve",
			now:  time.Date(2026, 3, 7, 22, 0, 0, 0, la),
			want: time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextMidnight(tc.now, la)
			require.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got.UTC())
		})
	}

	start := time.Date(2026, 11, 1, 0, 0, 0, 0, la)
	require.Equal(t, 25*time.Hour, NextMidnight(start, la).Sub(start))
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("tomorrow")
	require.NoError(t, err)
	require.Equal(t, TargetTomorrow, target)

	_, err = ParseTarget("yesterday")
	require.ErrorContains(t, err, "unknown forecast target")

	_, err = KeyForTarget(NewDayKey(2026, 1, 1), Target("next week"))
	require.Error(t, err)
}
