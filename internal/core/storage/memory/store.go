// Package memory is an in-process ForecastStore, seeded from YAML.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/core/calendar"
	"github.com/tempguess/tempguess/internal/core/storage"
)

type submissionKey struct {
	userID int64
	cityID int64
	date   calendar.DayKey
}

// Store keeps cities, hourly actuals and submissions in maps guarded by one RWMutex.
type Store struct {
	mu          sync.RWMutex
	cities      map[int64]v1.City
	actuals     map[calendar.DayKey][]v1.Actual
	submissions map[submissionKey]v1.Submission
}

var _ storage.ForecastStore = (*Store)(nil)

// NewStore builds a store from seed. Seed submissions belong to seed.UserID.
func NewStore(seed Seed) *Store {
	s := &Store{
		cities:      make(map[int64]v1.City, len(seed.Cities)),
		actuals:     make(map[calendar.DayKey][]v1.Actual),
		submissions: make(map[submissionKey]v1.Submission),
	}
	for _, c := range seed.Cities {
		s.cities[c.ID] = c
	}
	s.AddActuals(seed.Actuals...)
	for _, sub := range seed.Submissions {
		s.submissions[submissionKey{userID: seed.UserID, cityID: sub.CityID, date: sub.Date}] = sub
	}
	return s
}

func (s *Store) ListCities(_ context.Context) ([]v1.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cities := make([]v1.City, 0, len(s.cities))
	for _, c := range s.cities {
		cities = append(cities, c)
	}
	sort.Slice(cities, func(i, j int) bool {
		if cities[i].Name != cities[j].Name {
			return cities[i].Name < cities[j].Name
		}
		return cities[i].ID < cities[j].ID
	})
	return cities, nil
}

func (s *Store) ListRecentSubmissions(_ context.Context, userID int64, days []calendar.DayKey) ([]v1.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[calendar.DayKey]bool, len(days))
	for _, d := range days {
		wanted[d] = true
	}

	var subs []v1.Submission
	for key, sub := range s.submissions {
		if key.userID == userID && wanted[key.date] {
			subs = append(subs, copySubmission(sub))
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		if c := subs[i].Date.Compare(subs[j].Date); c != 0 {
			return c < 0
		}
		return subs[i].CityID < subs[j].CityID
	})
	return subs, nil
}

func (s *Store) ListPriorActuals(_ context.Context, day calendar.DayKey) ([]v1.Actual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.actuals[day]
	out := make([]v1.Actual, len(src))
	copy(out, src)
	return out, nil
}

// SaveSubmissions applies the whole batch or nothing.
func (s *Store) SaveSubmissions(_ context.Context, userID int64, submissions []v1.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range submissions {
		if _, ok := s.cities[sub.CityID]; !ok {
			return fmt.Errorf("save submissions: city %d: %w", sub.CityID, storage.ErrUnknownCity)
		}
	}

	for _, sub := range submissions {
		key := submissionKey{userID: userID, cityID: sub.CityID, date: sub.Date}
		merged := copySubmission(sub)
		if prev, ok := s.submissions[key]; ok {
			if merged.High == nil {
				merged.High = prev.High
			}
			if merged.Low == nil {
				merged.Low = prev.Low
			}
		}
		s.submissions[key] = merged
	}
	return nil
}

// AddActuals records hourly readings. A reading for an existing (city, day, hour) replaces it.
func (s *Store) AddActuals(actuals ...v1.Actual) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range actuals {
		day := s.actuals[a.Date]
		replaced := false
		for i := range day {
			if day[i].CityID == a.CityID && day[i].Hour == a.Hour {
				day[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			day = append(day, a)
		}
		sort.Slice(day, func(i, j int) bool {
			if day[i].CityID != day[j].CityID {
				return day[i].CityID < day[j].CityID
			}
			return day[i].Hour < day[j].Hour
		})
		s.actuals[a.Date] = day
	}
}

func copySubmission(sub v1.Submission) v1.Submission {
	out := sub
	if sub.High != nil {
		h := *sub.High
		out.High = &h
	}
	if sub.Low != nil {
		l := *sub.Low
		out.Low = &l
	}
	return out
}
