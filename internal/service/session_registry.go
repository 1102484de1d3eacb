package service

import (
	"sync"

	"github.com/google/uuid"
)

// sessionRegistry hands out per-user editing sessions with a per-user
// lock held between acquire and release, so every workspace operation
// sees the collection and surface as a unit.
type sessionRegistry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*sessionEntry
}

type sessionEntry struct {
	mu   sync.Mutex
	sess *workspaceSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		entries: map[uuid.UUID]*sessionEntry{},
	}
}

func (r *sessionRegistry) acquire(userId uuid.UUID, build func() *workspaceSession) *workspaceSession {
	r.mu.Lock()
	e, ok := r.entries[userId]
	if !ok {
		e = &sessionEntry{}
		r.entries[userId] = e
	}
	r.mu.Unlock()

	e.mu.Lock()
	if e.sess == nil {
		e.sess = build()
	}
	return e.sess
}

func (r *sessionRegistry) release(userId uuid.UUID) {
	r.mu.Lock()
	e, ok := r.entries[userId]
	r.mu.Unlock()
	if ok {
		e.mu.Unlock()
	}
}
