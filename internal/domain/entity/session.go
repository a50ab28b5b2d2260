package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is a position in the login state machine.
type SessionState string

const (
	// SessionAnonymous has no principal and no login in flight.
	SessionAnonymous SessionState = "ANONYMOUS"
	// SessionAuthPending is waiting for the identity provider callback.
	SessionAuthPending SessionState = "AUTH_PENDING"
	// SessionAuthenticated holds exactly one principal.
	SessionAuthenticated SessionState = "AUTHENTICATED"
)

// String returns the string representation of the SessionState.
func (s SessionState) String() string {
	return string(s)
}

// PendingAuth binds an authorization request to the callback that completes it.
type PendingAuth struct {
	State     string    // Anti-forgery token echoed back by the provider.
	Verifier  string    // PKCE code verifier for the code exchange.
	ExpiresAt time.Time // The token is rejected after this instant.
}

// Expired reports whether the pending token can no longer be redeemed.
func (p *PendingAuth) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// Session is the per-client login state. It is owned by the session use case
// and handed explicitly to every operation instead of living in globals.
type Session struct {
	ID        uuid.UUID
	State     SessionState
	Principal *Principal
	Pending   *PendingAuth
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewSession returns an anonymous session valid for ttl.
func NewSession(now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		State:     SessionAnonymous,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session outlived its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsAuthenticated reports whether the session currently carries a principal.
func (s *Session) IsAuthenticated(now time.Time) bool {
	return s.State == SessionAuthenticated && s.Principal != nil && !s.Expired(now)
}

// Reset drops the principal and any pending login.
func (s *Session) Reset() {
	s.State = SessionAnonymous
	s.Principal = nil
	s.Pending = nil
}

// BeginPending moves the session to AUTH_PENDING, replacing any earlier
// pending token and dropping a previous principal.
func (s *Session) BeginPending(pending *PendingAuth) {
	s.State = SessionAuthPending
	s.Principal = nil
	s.Pending = pending
}

// TakePending returns the pending login and clears it, so a token can be
// redeemed at most once.
func (s *Session) TakePending() *PendingAuth {
	pending := s.Pending
	s.Pending = nil

	return pending
}

// Install makes principal the session's single active identity.
func (s *Session) Install(principal *Principal) {
	s.State = SessionAuthenticated
	s.Principal = principal
	s.Pending = nil
}

// Clone returns a deep copy so stored sessions are not shared between requests.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	cloned := *s
	if s.Principal != nil {
		principal := *s.Principal
		cloned.Principal = &principal
	}
	if s.Pending != nil {
		pending := *s.Pending
		cloned.Pending = &pending
	}

	return &cloned
}
