package session

import (
	"sync"
	"time"

	"jobfinder-engine/internal/domain"
)

// Session holds one interactive user's state: the fingerprint→ResultSet
// cache and the fingerprint of the currently displayed set. A mutex guards
// the maps: one UI still means overlapping requests (a search and an SSE or
// results poll in flight together), and collapsed duplicate searches all
// store their shared result.
type Session struct {
	id        string
	expiresAt time.Time

	mu      sync.Mutex
	results map[string]domain.ResultSet
	current string
}

func (s *Session) ID() string { return s.id }

func (s *Session) Expire(ttl time.Duration) { s.expiresAt = time.Now().Add(ttl) }

func (s *Session) expired(now time.Time) bool { return now.After(s.expiresAt) }

// Lookup returns the cached result set for a query fingerprint. Never
// performs I/O; a miss means the caller must hit the provider and Store.
func (s *Session) Lookup(fingerprint string) (domain.ResultSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs, ok := s.results[fingerprint]
	return rs, ok
}

// Store records a result set and marks it as the currently displayed one.
// Storing the same fingerprint twice overwrites; identical criteria produce
// identical sets, so the mapping stays idempotent within the session.
func (s *Session) Store(fingerprint string, rs domain.ResultSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[fingerprint] = rs
	s.current = fingerprint
}

// Current returns the most recently stored result set, which is what the
// export and digest operations act on.
func (s *Session) Current() (domain.ResultSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == "" {
		return nil, false
	}
	rs, ok := s.results[s.current]
	return rs, ok
}

func (s *Session) SetCurrent(fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[fingerprint]; ok {
		s.current = fingerprint
	}
}

// Clear empties the cache. Session end is the only eviction the cache has.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[string]domain.ResultSet)
	s.current = ""
}
