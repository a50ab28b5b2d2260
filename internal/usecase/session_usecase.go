// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"didilikeit/internal/domain/entity"
)

// LoginMode tells the presentation layer which sign-in flow to offer.
type LoginMode string

const (
	// LoginModeOAuth redirects to the configured identity provider.
	LoginModeOAuth LoginMode = "oauth"
	// LoginModeLocal asks for an email and a secret.
	LoginModeLocal LoginMode = "local"
)

// LoginChallenge is where the browser goes to sign in.
type LoginChallenge struct {
	URL       string
	ExpiresAt time.Time
}

// CallbackInput carries the query parameters of the provider callback.
type CallbackInput struct {
	State string
	Code  string
	Error string // Set by the provider when the user denied consent.
}

// SessionUsecase owns the login state machine. Every operation receives the
// session explicitly and mutates it in place; the caller persists it.
type SessionUsecase interface {
	// Resume loads the session named by a cookie token, or starts a fresh
	// anonymous one when the token is empty, invalid or expired.
	Resume(ctx context.Context, token string) (*entity.Session, error)
	// Persist stores the session and returns the signed cookie token for it.
	// Anonymous sessions and sessions revoked meanwhile are not stored; the
	// token is then empty and the cookie should be cleared.
	Persist(ctx context.Context, session *entity.Session) (string, error)

	BeginLogin(ctx context.Context, session *entity.Session) (*LoginChallenge, error)
	CompleteLogin(ctx context.Context, session *entity.Session, input *CallbackInput) (*entity.Principal, error)
	Authenticate(ctx context.Context, session *entity.Session, email, secret string) (*entity.Principal, error)
	CurrentPrincipal(session *entity.Session) (*entity.Principal, error)
	Logout(ctx context.Context, session *entity.Session) error
	IsAdmin(session *entity.Session) bool

	LoginMode() LoginMode
	// LocalLoginEnabled reports whether Authenticate may be used.
	LocalLoginEnabled() bool
}
