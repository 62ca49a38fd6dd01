// Package memory provides an in-memory Storage implementation for testing
// and for the example server.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/librecal/librecal/recur"
	"github.com/librecal/librecal/store"
)

// Store implements store.Storage using an in-memory map.
type Store struct {
	mu     sync.RWMutex
	events map[string]recur.Event // key: event id
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		events: make(map[string]recur.Event),
	}
}

func (s *Store) ListEvents(_ context.Context) ([]recur.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]recur.Event, 0, len(s.events))
	for _, ev := range s.events {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (s *Store) GetEvent(_ context.Context, id string) (*recur.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, &store.Error{Type: store.ErrNotFound, Message: "event not found"}
	}
	return &ev, nil
}

func (s *Store) CreateEvents(_ context.Context, events []recur.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range events {
		if ev.ID == "" {
			return &store.Error{Type: store.ErrInvalidInput, Message: "event id is required"}
		}
		if _, exists := s.events[ev.ID]; exists {
			return &store.Error{Type: store.ErrAlreadyExists, Message: "event " + ev.ID + " already exists"}
		}
	}
	for _, ev := range events {
		s.events[ev.ID] = ev
	}
	return nil
}

func (s *Store) UpdateEvent(_ context.Context, event recur.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; !ok {
		return &store.Error{Type: store.ErrNotFound, Message: "event not found"}
	}
	s.events[event.ID] = event
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return &store.Error{Type: store.ErrNotFound, Message: "event not found"}
	}
	delete(s.events, id)
	return nil
}

func (s *Store) UpdateSeries(_ context.Context, seriesID string, patch recur.Patch) ([]recur.Event, error) {
	if seriesID == "" {
		return nil, &store.Error{Type: store.ErrInvalidInput, Message: "series id is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]recur.Event, 0, len(s.events))
	for _, ev := range s.events {
		all = append(all, ev)
	}
	updated := recur.UpdateSeries(all, seriesID, patch)

	var inSeries []recur.Event
	for _, ev := range updated {
		if ev.SeriesID == seriesID {
			s.events[ev.ID] = ev
			inSeries = append(inSeries, ev)
		}
	}
	sort.Slice(inSeries, func(i, j int) bool {
		return inSeries[i].Date.Before(inSeries[j].Date)
	})
	return inSeries, nil
}

func (s *Store) DeleteSeries(_ context.Context, seriesID string) (int, error) {
	if seriesID == "" {
		return 0, &store.Error{Type: store.ErrInvalidInput, Message: "series id is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ev := range s.events {
		if ev.SeriesID == seriesID {
			delete(s.events, id)
			removed++
		}
	}
	return removed, nil
}
