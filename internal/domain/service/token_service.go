package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenService signs and verifies the session cookie value.
type TokenService interface {
	// IssueSessionToken returns a signed token naming the session, valid until expiresAt.
	IssueSessionToken(sessionID uuid.UUID, expiresAt time.Time) (string, error)

	// ParseSessionToken verifies the token and returns the session ID it names.
	ParseSessionToken(token string) (uuid.UUID, error)
}
