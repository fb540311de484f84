// Package board is the guessing board: one session, its grid of city cards
// and the operations clients perform on it.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/core/calendar"
	"github.com/tempguess/tempguess/internal/core/cutoff"
	"github.com/tempguess/tempguess/internal/core/storage"
	"github.com/tempguess/tempguess/internal/rebuild"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrDataLoad marks a failed read from the store.
	ErrDataLoad = errors.New("data load failed")
	// ErrSave marks a failed write to the store.
	ErrSave = errors.New("save failed")
	// ErrNoEntries is returned when a save has nothing left to write.
	ErrNoEntries = errors.New("no valid entries")
	// ErrInvalidSubmission marks entries for unknown cities or out-of-range values.
	ErrInvalidSubmission = errors.New("invalid submission")
)

const (
	msgCitiesFailed = "Failed to load cities."
	msgGridFailed   = "Failed to load grid"
	msgNoEntries    = "Enter at least one valid guess!"
	msgSaving       = "Saving…"
)

type Options struct {
	// ReferenceTimezone decides which calendar day "today" is for the whole board.
	ReferenceTimezone string
	UserID            int64
	CutoffHour        int
	Debounce          time.Duration
	MaxBodySizeMB     int
}

// Service owns one board session and the rebuild coordinator that renders it.
type Service struct {
	store      storage.ForecastStore
	clock      *calendar.Clock
	evaluator  *cutoff.Evaluator
	refLoc     *time.Location
	userID     int64
	cutoffNote string
	maxBody    int64
	baseCtx    context.Context

	session  *Session
	rebuilds *rebuild.Coordinator

	citiesMu     sync.RWMutex
	cities       []v1.City
	citiesLoaded bool
}

// NewService validates the reference zone and wires the coordinator.
// ctx bounds every rebuild fetch.
func NewService(ctx context.Context, store storage.ForecastStore, clock *calendar.Clock, opts Options) (*Service, error) {
	if store == nil {
		panic("board: store must not be nil")
	}
	if clock == nil {
		panic("board: clock must not be nil")
	}

	refLoc, err := calendar.LoadZone(opts.ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("reference timezone: %w", err)
	}
	if opts.UserID <= 0 {
		opts.UserID = 1
	}
	if opts.CutoffHour <= 0 || opts.CutoffHour > 23 {
		opts.CutoffHour = cutoff.DefaultHour
	}
	if opts.MaxBodySizeMB <= 0 {
		opts.MaxBodySizeMB = 1
	}

	s := &Service{
		store:      store,
		clock:      clock,
		evaluator:  cutoff.NewEvaluator(clock, opts.CutoffHour),
		refLoc:     refLoc,
		userID:     opts.UserID,
		cutoffNote: cutoffNote(opts.CutoffHour),
		maxBody:    int64(opts.MaxBodySizeMB) * 1024 * 1024,
		baseCtx:    ctx,
		session:    NewSession(),
	}
	s.rebuilds = rebuild.New(ctx, clock.Source(), opts.Debounce, s.fetchGrid, s.onRebuildError)
	return s, nil
}

// Session exposes the board state.
func (s *Service) Session() *Session {
	return s.session
}

// ReferenceZone is the zone whose calendar day the selector names.
func (s *Service) ReferenceZone() *time.Location {
	return s.refLoc
}

// LoadCities reads the working set of cities once. On failure the set stays
// empty, the status line reports it and no grid is built.
func (s *Service) LoadCities(ctx context.Context) error {
	if _, loaded := s.Cities(); loaded {
		return nil
	}

	cities, err := s.store.ListCities(ctx)
	if err != nil {
		slog.Error("[Board] Failed to load cities", "error", err)
		s.session.SetStatus(StatusError, msgCitiesFailed)
		return fmt.Errorf("%w: list cities: %w", ErrDataLoad, err)
	}

	s.citiesMu.Lock()
	s.cities = cities
	s.citiesLoaded = true
	s.citiesMu.Unlock()

	slog.Info("[Board] Cities loaded", "count", len(cities))
	if st := s.session.Status(); st.Message == msgCitiesFailed {
		s.session.SetStatus("", "")
	}
	s.RequestRebuild()
	return nil
}

// Cities returns the cached working set and whether it has been loaded.
func (s *Service) Cities() ([]v1.City, bool) {
	s.citiesMu.RLock()
	defer s.citiesMu.RUnlock()
	out := make([]v1.City, len(s.cities))
	copy(out, s.cities)
	return out, s.citiesLoaded
}

func (s *Service) RequestRebuild() {
	s.rebuilds.RequestRebuild()
}

func (s *Service) Busy() bool {
	return s.rebuilds.Busy()
}

// Close stops scheduling rebuilds.
func (s *Service) Close() {
	s.rebuilds.Stop()
}

// SetTarget changes the selector and rebuilds when it actually changed.
func (s *Service) SetTarget(target calendar.Target) {
	if s.session.SetTarget(target) {
		slog.Info("[Board] Target changed", "target", target)
		s.RequestRebuild()
	}
}

// AdvanceTarget moves today to tomorrow. When already on tomorrow it only
// rebuilds, so the grid picks up the new cutoff state.
func (s *Service) AdvanceTarget() {
	if s.session.advanceFromToday() {
		slog.Info("[Board] Advanced target past cutoff", "target", calendar.TargetTomorrow)
	}
	s.RequestRebuild()
}

// Expand expands every card. It is idempotent.
func (s *Service) Expand() {
	s.session.Expand()
}

// OnMidnight runs after the reference-zone day changes. It retries a failed
// city load and rebuilds for the new day.
func (s *Service) OnMidnight(day calendar.DayKey) {
	slog.Info("[Board] Reference day changed", "day_key", day)
	if _, loaded := s.Cities(); !loaded {
		if err := s.LoadCities(s.baseCtx); err != nil {
			return
		}
	}
	s.RequestRebuild()
}

// OnPreNoon runs when the reference zone reaches the cutoff hour.
func (s *Service) OnPreNoon(day calendar.DayKey) {
	slog.Info("[Board] Reference cutoff reached", "day_key", day)
	s.AdvanceTarget()
}

// today returns the current calendar day of the reference zone.
func (s *Service) today() calendar.DayKey {
	return s.clock.NowIn(s.refLoc).DayKey()
}

// TargetDay resolves the session's selector to a calendar day.
func (s *Service) TargetDay() (calendar.Target, calendar.DayKey) {
	target := s.session.Target()
	day, _ := calendar.KeyForTarget(s.today(), target)
	return target, day
}

// fetchGrid is the rebuild function: it reads everything the grid needs and
// returns the step that commits it.
func (s *Service) fetchGrid(ctx context.Context) (func(), error) {
	cities, loaded := s.Cities()
	if !loaded {
		return nil, nil
	}

	target := s.session.Target()
	today := s.today()
	yesterday, tomorrow := today.AddDays(-1), today.AddDays(1)
	day, err := calendar.KeyForTarget(today, target)
	if err != nil {
		return nil, err
	}

	var (
		actuals     []v1.Actual
		submissions []v1.Submission
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actuals, err = s.store.ListPriorActuals(gctx, yesterday)
		if err != nil {
			return fmt.Errorf("list actuals for %s: %w", yesterday, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		submissions, err = s.store.ListRecentSubmissions(gctx, s.userID, []calendar.DayKey{today, tomorrow})
		if err != nil {
			return fmt.Errorf("list submissions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}

	grid := buildGrid(gridInput{
		buildID:     uuid.NewString(),
		builtAt:     s.clock.Source().Now(),
		target:      target,
		day:         day,
		cities:      cities,
		actuals:     actuals,
		submissions: submissions,
		decisions:   s.evaluator.Evaluate(cities, target),
		cutoffNote:  s.cutoffNote,
	})

	return func() {
		s.session.commitGrid(grid)
		slog.Debug("[Board] Grid committed",
			"build_id", grid.BuildID,
			"target", grid.Target,
			"day_key", grid.Date,
			"cards", len(grid.Cards),
		)
	}, nil
}

func (s *Service) onRebuildError(err error) {
	slog.Error("[Board] Grid rebuild failed", "error", err)
	target, day := s.TargetDay()
	s.session.commitGrid(failedGrid(uuid.NewString(), s.clock.Source().Now(), target, day))
}

// SaveResult reports what a save wrote.
type SaveResult struct {
	Saved   int             `json:"saved"`
	Skipped []int64         `json:"skipped"`
	Date    calendar.DayKey `json:"date"`
	Target  calendar.Target `json:"target"`
}

// Save writes the user's guesses for the current target day. Entries for the
// same city are merged, empty entries are dropped and cities past their
// cutoff are skipped. On failure the entries stay as the session draft.
func (s *Service) Save(ctx context.Context, entries []v1.ForecastEntry) (SaveResult, error) {
	cities, _ := s.Cities()
	known := make(map[int64]v1.City, len(cities))
	for _, c := range cities {
		known[c.ID] = c
	}

	target, day := s.TargetDay()
	result := SaveResult{Date: day, Target: target, Skipped: []int64{}}

	merged, order, err := mergeEntries(entries, known)
	if err != nil {
		s.session.SetStatus(StatusError, err.Error())
		return result, err
	}

	subs := make([]v1.Submission, 0, len(order))
	draft := make([]v1.ForecastEntry, 0, len(order))
	for _, cityID := range order {
		entry := merged[cityID]
		allowed, err := s.evaluator.IsEntryAllowed(known[cityID], target)
		if err != nil || !allowed {
			result.Skipped = append(result.Skipped, cityID)
			continue
		}
		subs = append(subs, v1.Submission{CityID: cityID, Date: day, High: entry.High, Low: entry.Low})
		draft = append(draft, entry)
	}

	if len(subs) == 0 {
		s.session.SetStatus(StatusError, msgNoEntries)
		return result, ErrNoEntries
	}

	s.session.setDraft(draft)
	s.session.SetStatus(StatusInfo, msgSaving)

	if err := s.store.SaveSubmissions(ctx, s.userID, subs); err != nil {
		slog.Error("[Board] Failed to save forecasts", "error", err, "day_key", day, "count", len(subs))
		s.session.SetStatus(StatusError, "Save failed: "+err.Error())
		return result, fmt.Errorf("%w: %w", ErrSave, err)
	}

	result.Saved = len(subs)
	slog.Info("[Board] Saved forecasts", "day_key", day, "target", target, "count", result.Saved, "skipped", len(result.Skipped))

	s.session.SetStatus(StatusSuccess, fmt.Sprintf("Saved %d city forecasts for %s!", result.Saved, target))
	s.session.clearDraft()
	s.session.Collapse()
	s.RequestRebuild()
	return result, nil
}

// mergeEntries folds entries into one per city, in first-seen order. A later
// value for the same field wins.
func mergeEntries(entries []v1.ForecastEntry, known map[int64]v1.City) (map[int64]v1.ForecastEntry, []int64, error) {
	merged := make(map[int64]v1.ForecastEntry, len(entries))
	var order []int64
	for _, e := range entries {
		if e.High == nil && e.Low == nil {
			continue
		}
		if err := e.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
		}
		if _, ok := known[e.CityID]; !ok {
			return nil, nil, fmt.Errorf("%w: unknown city %d", ErrInvalidSubmission, e.CityID)
		}

		m, seen := merged[e.CityID]
		if !seen {
			m = v1.ForecastEntry{CityID: e.CityID}
			order = append(order, e.CityID)
		}
		if e.High != nil {
			m.High = e.High
		}
		if e.Low != nil {
			m.Low = e.Low
		}
		merged[e.CityID] = m
	}
	return merged, order, nil
}

// View is the board as a client sees it.
type View struct {
	Target            calendar.Target `json:"target"`
	Date              calendar.DayKey `json:"date"`
	DateLabel         string          `json:"date_label"`
	ReferenceTimezone string          `json:"reference_timezone"`
	Expanded          bool            `json:"expanded"`
	Busy              bool            `json:"busy"`
	Status            Status          `json:"status"`
	Grid              *Grid           `json:"grid"`
}

// View composes the last committed grid with the live session flags.
// The date label always reflects the current reference day.
func (s *Service) View() View {
	snap := s.session.snapshot()
	day, _ := calendar.KeyForTarget(s.today(), snap.target)
	v := View{
		Target:            snap.target,
		Date:              day,
		DateLabel:         dateLabel(day, s.refLoc),
		ReferenceTimezone: s.refLoc.String(),
		Expanded:          snap.expanded,
		Busy:              s.Busy(),
		Status:            snap.status,
	}
	if snap.grid == nil {
		return v
	}

	grid := *snap.grid
	grid.Cards = make([]Card, len(snap.grid.Cards))
	for i, card := range snap.grid.Cards {
		card.Expanded = snap.expanded
		if d, ok := snap.draft[card.City.ID]; ok {
			card.Draft = &d
		}
		grid.Cards[i] = card
	}
	v.Grid = &grid
	return v
}
