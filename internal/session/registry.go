package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"jobfinder-engine/internal/domain"
)

// Registry maps session ids to live sessions. Both the registry and the
// sessions it hands out are safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Ensure returns the session for id, extending its lifetime, or creates a
// fresh one when id is empty, unknown, or expired.
func (r *Registry) Ensure(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.pruneLocked(now)

	if id != "" {
		if sess, ok := r.sessions[id]; ok {
			sess.Expire(r.ttl)
			return sess
		}
	}

	sess := &Session{
		id:      uuid.NewString(),
		results: make(map[string]domain.ResultSet),
	}
	sess.Expire(r.ttl)
	r.sessions[sess.id] = sess
	return sess
}

// Get returns the session for id without creating one.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok || sess.expired(time.Now()) {
		return nil, false
	}
	return sess, true
}

// End clears and removes the session. Idempotent.
func (r *Registry) End(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[id]; ok {
		sess.Clear()
		delete(r.sessions, id)
	}
}

func (r *Registry) pruneLocked(now time.Time) {
	for id, sess := range r.sessions {
		if sess.expired(now) {
			delete(r.sessions, id)
		}
	}
}
