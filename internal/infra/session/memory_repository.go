// Package session keeps login sessions server-side, keyed by the ID carried
// in the signed cookie.
package session

import (
	"context"
	"sync"
	"time"

	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"

	"github.com/google/uuid"
)

const sweepInterval = time.Minute

// memoryRepository implements repository.SessionRepository in process memory.
type memoryRepository struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*entity.Session
	revoked   map[uuid.UUID]time.Time // deleted ID -> expiry of the deleted session
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryRepository is the constructor for memoryRepository.
func NewMemoryRepository() repository.SessionRepository {
	return newMemoryRepository(time.Now)
}

func newMemoryRepository(now func() time.Time) *memoryRepository {
	return &memoryRepository{
		sessions: make(map[uuid.UUID]*entity.Session),
		revoked:  make(map[uuid.UUID]time.Time),
		now:      now,
	}
}

// Find returns a copy of a live session.
func (r *memoryRepository) Find(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	session, ok := r.sessions[id]
	if !ok || session.Expired(now) {
		delete(r.sessions, id)

		return nil, repository.ErrSessionNotFound
	}

	return session.Clone(), nil
}

// Save stores a copy of the session unless its ID was revoked.
func (r *memoryRepository) Save(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	if until, ok := r.revoked[session.ID]; ok && now.Before(until) {
		return repository.ErrSessionRevoked
	}
	r.sessions[session.ID] = session.Clone()

	return nil
}

// Delete forgets the session and revokes its ID for the rest of its lifetime.
func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		r.revoked[id] = session.ExpiresAt
		delete(r.sessions, id)
	}

	return nil
}

// sweep drops expired sessions, pending logins and revocations at most once per interval.
// Callers must hold mu.
func (r *memoryRepository) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now

	for id, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, id)

			continue
		}
		if session.State == entity.SessionAuthPending && session.Pending != nil && session.Pending.Expired(now) {
			session.Reset()
		}
	}
	for id, until := range r.revoked {
		if !now.Before(until) {
			delete(r.revoked, id)
		}
	}
}

// Len reports how many sessions are stored.
func (r *memoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
