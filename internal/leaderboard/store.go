// Package leaderboard is the score board service: an in-memory store of
// finished runs, an HTTP API over it and a client for that API.
//
// Entries are addressed by their position in the list. Deleting an entry
// shifts the ones after it down, so indices are only stable until the next
// delete.
package leaderboard

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned for indices outside the list.
	ErrNotFound = errors.New("leaderboard: entry not found")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("leaderboard: invalid entry")
)

// Messages returned to HTTP clients.
const (
	msgNotFound      = "Entry not found"
	msgInvalidCreate = "Missing or invalid fields: name (string), time (string), score (number), date (string) required"
	msgEmptyPatch    = "At least one field to update required"
	msgInvalidTime   = "Invalid field: time must be a number of seconds"
	msgInvalidScore  = "Invalid field: score must be a whole number"
)

// ValidationError describes a rejected entry or patch.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// DateLayout formats Entry.Date for runs submitted by the game.
const DateLayout = "2006-01-02 15:04:05"

// Entry is one finished run.
type Entry struct {
	Name  string `json:"name"`
	Time  string `json:"time"` // survival seconds, e.g. "12.34"
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// NewEntry builds an entry for a run that ended at date.
func NewEntry(name string, survived time.Duration, score int, date time.Time) Entry {
	return Entry{
		Name:  name,
		Time:  strconv.FormatFloat(survived.Seconds(), 'f', 2, 64),
		Score: score,
		Date:  date.Format(DateLayout),
	}
}

// Seconds parses Time. Unparseable values count as zero.
func (e Entry) Seconds() float64 {
	v, err := strconv.ParseFloat(e.Time, 64)
	if err != nil {
		return 0
	}
	return v
}

// Patch is a partial update. Nil fields are left alone, as are empty names,
// times and dates.
type Patch struct {
	Name  *string `json:"name,omitempty"`
	Time  *string `json:"time,omitempty"`
	Score *int    `json:"score,omitempty"`
	Date  *string `json:"date,omitempty"`
}

// Empty reports whether the patch names no field to update. A present but
// empty time still counts as naming one.
func (p Patch) Empty() bool {
	return (p.Name == nil || *p.Name == "") &&
		p.Time == nil &&
		p.Score == nil &&
		(p.Date == nil || *p.Date == "")
}

func validTime(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Store holds the leaderboard for the lifetime of the process.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Create appends an entry.
func (s *Store) Create(e Entry) (Entry, error) {
	if e.Name == "" || e.Date == "" || !validTime(e.Time) {
		return Entry{}, &ValidationError{Message: msgInvalidCreate}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return e, nil
}

// List returns all entries in insertion order.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry{}, s.entries...)
}

// Ranked returns all entries, longest survival first.
func (s *Store) Ranked() []Entry {
	entries := s.List()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Seconds() > entries[j].Seconds()
	})
	return entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Get returns the entry at index.
func (s *Store) Get(index int) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, index)
	}
	return s.entries[index], nil
}

// Update applies a patch to the entry at index.
// A missing entry is reported before an invalid patch.
func (s *Store) Update(index int, p Patch) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, index)
	}
	if p.Empty() {
		return Entry{}, &ValidationError{Message: msgEmptyPatch}
	}
	if p.Time != nil && *p.Time != "" && !validTime(*p.Time) {
		return Entry{}, &ValidationError{Message: msgInvalidTime}
	}

	e := &s.entries[index]
	if p.Name != nil && *p.Name != "" {
		e.Name = *p.Name
	}
	if p.Time != nil && *p.Time != "" {
		e.Time = *p.Time
	}
	if p.Score != nil {
		e.Score = *p.Score
	}
	if p.Date != nil && *p.Date != "" {
		e.Date = *p.Date
	}
	return *e, nil
}

// Delete removes the entry at index. Later entries move down by one.
func (s *Store) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%w: %d", ErrNotFound, index)
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return nil
}
