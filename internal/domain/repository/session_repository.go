package repository

import (
	"context"

	"didilikeit/internal/domain/entity"
	"didilikeit/internal/errors"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionRevoked is returned when saving a session ID that was deleted,
// for example by a logout racing the request that loaded it.
var ErrSessionRevoked = errors.New("session revoked")

// SessionRepository keeps sessions between requests, including across the
// identity provider redirect.
type SessionRepository interface {
	// Find returns a copy of the stored session. Expired sessions are reported as ErrSessionNotFound.
	Find(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Save stores a copy of the session, replacing any previous version.
	// A deleted ID stays unusable until that session would have expired.
	Save(ctx context.Context, session *entity.Session) error

	// Delete forgets the session and revokes its ID. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
