package service

import "context"

// IdentityClaim is what a successful identity check yields.
type IdentityClaim struct {
	Email       string
	DisplayName string
}

// AuthChallenge is the redirect artifact for a delegated login.
type AuthChallenge struct {
	URL      string // Where the browser is sent to sign in.
	State    string // Anti-forgery token the callback must echo back.
	Verifier string // PKCE verifier kept server-side until the exchange.
}

// OAuthProvider performs an OAuth2 authorization-code login.
type OAuthProvider interface {
	// Initiate builds a new challenge with a fresh anti-forgery token.
	Initiate(ctx context.Context) (*AuthChallenge, error)

	// Exchange trades the callback code for a verified identity.
	Exchange(ctx context.Context, code, verifier string) (*IdentityClaim, error)
}

// CredentialVerifier checks a locally supplied email and secret.
type CredentialVerifier interface {
	// Verify returns the identity on a match and ErrInvalidCredentials otherwise.
	Verify(ctx context.Context, email, secret string) (*IdentityClaim, error)
}
