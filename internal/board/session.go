package board

import (
	"sync"

	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/core/calendar"
)

type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the single status line shown above the grid.
type Status struct {
	Kind    StatusKind `json:"kind,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Session is the mutable state of one board: what the selector shows, whether
// cards are expanded, the status line, the last committed grid and the
// values a failed save left behind.
type Session struct {
	mu       sync.Mutex
	target   calendar.Target
	expanded bool
	status   Status
	grid     *Grid
	draft    map[int64]v1.ForecastEntry
}

// NewSession starts on today, collapsed, with no grid.
func NewSession() *Session {
	return &Session{target: calendar.TargetToday}
}

func (s *Session) Target() calendar.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// SetTarget reports whether the selector actually changed.
func (s *Session) SetTarget(t calendar.Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == t {
		return false
	}
	s.target = t
	return true
}

// advanceFromToday moves today to tomorrow and reports whether it did.
func (s *Session) advanceFromToday() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target != calendar.TargetToday {
		return false
	}
	s.target = calendar.TargetTomorrow
	return true
}

// Expand expands every card. Expanding twice is the same as once.
func (s *Session) Expand() {
	s.mu.Lock()
	s.expanded = true
	s.mu.Unlock()
}

func (s *Session) Collapse() {
	s.mu.Lock()
	s.expanded = false
	s.mu.Unlock()
}

func (s *Session) Expanded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded
}

func (s *Session) SetStatus(kind StatusKind, message string) {
	s.mu.Lock()
	s.status = Status{Kind: kind, Message: message}
	s.mu.Unlock()
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) setDraft(entries []v1.ForecastEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = make(map[int64]v1.ForecastEntry, len(entries))
	for _, e := range entries {
		s.draft[e.CityID] = e
	}
}

func (s *Session) clearDraft() {
	s.mu.Lock()
	s.draft = nil
	s.mu.Unlock()
}

// Draft returns the unsaved value for a city, if any.
func (s *Session) Draft(cityID int64) (v1.ForecastEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.draft[cityID]
	return e, ok
}

func (s *Session) commitGrid(g *Grid) {
	s.mu.Lock()
	s.grid = g
	s.mu.Unlock()
}

// Grid returns the last committed grid, or nil before the first rebuild.
func (s *Session) Grid() *Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

type sessionSnapshot struct {
	target   calendar.Target
	expanded bool
	status   Status
	grid     *Grid
	draft    map[int64]v1.ForecastEntry
}

func (s *Session) snapshot() sessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := make(map[int64]v1.ForecastEntry, len(s.draft))
	for k, v := range s.draft {
		draft[k] = v
	}
	return sessionSnapshot{
		target:   s.target,
		expanded: s.expanded,
		status:   s.status,
		grid:     s.grid,
		draft:    draft,
	}
}
