package picker

import (
	"context"
	"sync"
	"time"
)

// Registry tracks open sessions by id and reaps the ones the dashboard
// abandoned without closing.
type Registry struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]*entry),
	}
}

func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID] = &entry{session: s, lastUsed: time.Now()}
	r.mu.Unlock()
}

// Get returns the session and marks it used.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = time.Now()
	return e.session, true
}

// Remove closes the session and drops it. Removing an unknown id is a
// no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		e.session.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes and removes sessions idle longer than the TTL, returning
// how many were reaped.
func (r *Registry) Sweep() int {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*entry
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			expired = append(expired, e)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		e.session.Close()
	}
	return len(expired)
}

// StartSweeper sweeps on an interval until ctx is cancelled.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
