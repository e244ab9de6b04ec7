package workflow

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Default store timings
const (
	DefaultSessionTTL      = 2 * time.Hour
	DefaultCleanupInterval = 5 * time.Minute
)

// Store keeps sessions in memory, keyed by a random ID. Idle sessions are
// dropped after the TTL by Run.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewStore creates a store. Non-positive durations fall back to defaults.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		interval: cleanupInterval,
		now:      time.Now,
	}
}

// Create starts a new session in the Uploading state.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &Session{
		ID:        uuid.NewString(),
		State:     Uploading,
		UpdatedAt: s.now(),
	}
	s.sessions[session.ID] = session
	return session.Clone()
}

// Get returns a copy of a live session.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

// GetOrCreate returns the session for id, or a new one when id is unknown
// or expired.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if session, err := s.Get(id); err == nil {
		return session, false
	}
	return s.Create(), true
}

// Update runs fn against the stored session under the store lock. When fn
// fails the session is left unchanged. The last successful update wins.
func (s *Store) Update(id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	working := session.Clone()
	if err := fn(working); err != nil {
		return session.Clone(), err
	}
	working.ID = session.ID
	working.UpdatedAt = s.now()
	s.sessions[id] = working
	return working.Clone(), nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of stored sessions, including expired ones not
// yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps expired sessions every cleanup interval until ctx is done.
func (s *Store) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Printf("[session] Removed %d expired sessions", removed)
			}
		}
	}
}

// Sweep removes expired sessions and returns how many were removed.
// An expired session can no longer be looked up, so removing it after the
// lock is released is safe.
func (s *Store) Sweep() int {
	expired := s.expired()
	for _, id := range expired {
		s.Delete(id)
	}
	return len(expired)
}

func (s *Store) expired() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	var ids []string
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

// lookup must be called with s.mu held.
func (s *Store) lookup(id string) (*Session, bool) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if session.UpdatedAt.Before(s.now().Add(-s.ttl)) {
		delete(s.sessions, id)
		return nil, false
	}
	return session, true
}
