// Package corpus loads the venue, pending-request and event-history
// datasets from flat JSON files at startup and serves them read-only.
// Malformed or missing files are fatal at load time, never at request time.
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/venuescout/internal/domain/model"
)

// Corpus file names inside the data directory.
const (
	venuesFile   = "venues.json"
	requestsFile = "current_requests.json"
	historyFile  = "event_history.json"
)

// Store holds the immutable corpora. Built once by Load; safe for
// concurrent readers, no locking needed.
type Store struct {
	venues   map[string]*model.Venue
	requests map[string]*model.EventRequest
	events   []*model.HistoricalEvent
}

// Load reads the three corpus files from dir. Identifier uniqueness is
// enforced per file; any violation or decode failure aborts the load.
func Load(_ context.Context, dir string) (*Store, error) {
	s := &Store{
		venues:   make(map[string]*model.Venue),
		requests: make(map[string]*model.EventRequest),
	}

	var venues []*model.Venue
	if err := readJSON(filepath.Join(dir, venuesFile), &venues); err != nil {
		return nil, fmt.Errorf("load venues corpus: %w", err)
	}
	for _, v := range venues {
		if _, exists := s.venues[v.VenueID]; exists {
			return nil, fmt.Errorf("%w: venue %q", ErrDuplicateID, v.VenueID)
		}
		s.venues[v.VenueID] = v
	}

	var requests []*model.EventRequest
	if err := readJSON(filepath.Join(dir, requestsFile), &requests); err != nil {
		return nil, fmt.Errorf("load requests corpus: %w", err)
	}
	for _, r := range requests {
		if _, exists := s.requests[r.EventID]; exists {
			return nil, fmt.Errorf("%w: request %q", ErrDuplicateID, r.EventID)
		}
		s.requests[r.EventID] = r
	}

	if err := readJSON(filepath.Join(dir, historyFile), &s.events); err != nil {
		return nil, fmt.Errorf("load history corpus: %w", err)
	}
	seen := make(map[string]struct{}, len(s.events))
	for _, ev := range s.events {
		if _, exists := seen[ev.EventID]; exists {
			return nil, fmt.Errorf("%w: historical event %q", ErrDuplicateID, ev.EventID)
		}
		seen[ev.EventID] = struct{}{}
	}

	return s, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// VenueByID returns the venue with the given identifier.
// Returns ErrNotFound for unknown identifiers.
func (s *Store) VenueByID(_ context.Context, venueID string) (*model.Venue, error) {
	if v, ok := s.venues[venueID]; ok {
		return v, nil
	}
	return nil, ErrNotFound
}

// RequestByID returns the pending event request with the given identifier.
// Returns ErrNotFound for unknown identifiers.
func (s *Store) RequestByID(_ context.Context, eventID string) (*model.EventRequest, error) {
	if r, ok := s.requests[eventID]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

// Events returns the historical event corpus in file order. Callers must
// treat the slice as read-only.
func (s *Store) Events() []*model.HistoricalEvent {
	return s.events
}

// VenueCount returns the number of loaded venues.
func (s *Store) VenueCount() int { return len(s.venues) }

// RequestCount returns the number of loaded pending requests.
func (s *Store) RequestCount() int { return len(s.requests) }

// EventCount returns the number of loaded historical events.
func (s *Store) EventCount() int { return len(s.events) }
