package session

import (
	"context"
	"sync"

	"fitbot/core/logger"
	"log/slog"
)

type entry struct {
	mu   sync.Mutex
	sess Session
}

// Store maps user identifiers to sessions. Access runs under a per-user
// lock so two rapid messages from the same user cannot interleave a state
// read with a stale write, while different users never block each other.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

func (s *Store) entryFor(userID int64) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{sess: Session{State: StateIdle}}
		s.entries[userID] = e
		logger.LogEvent(context.Background(), logger.SVCSessions, slog.LevelDebug, "session.created",
			slog.Int64("user_id", userID),
			slog.Int("sessions", len(s.entries)),
		)
	}
	return e
}

// Do runs fn with exclusive access to the user's session. External calls
// made inside fn hold only this user's lock, never the store lock.
func (s *Store) Do(userID int64, fn func(sess *Session) error) error {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.sess)
}

// State returns the current dialogue state without mutating the store.
func (s *Store) State(userID int64) State {
	s.mu.Lock()
	e, ok := s.entries[userID]
	s.mu.Unlock()
	if !ok {
		return StateIdle
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.State
}

// InProgress reports whether the user is mid-dialogue.
func (s *Store) InProgress(userID int64) bool {
	return s.State(userID) != StateIdle
}

// HasPending reports whether the user owes a gram amount for a food lookup.
func (s *Store) HasPending(userID int64) bool {
	s.mu.Lock()
	e, ok := s.entries[userID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Pending != nil
}

// Len returns the number of known user sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
