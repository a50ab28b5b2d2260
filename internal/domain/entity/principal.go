// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "strings"

// Principal is the authenticated identity bound to a session.
type Principal struct {
	Email       string // Lowercased and trimmed; the key every row is partitioned by.
	DisplayName string // Human-readable name reported by the identity provider.
}

// NewPrincipal builds a Principal with a normalized email.
// An empty display name falls back to the local part of the email.
func NewPrincipal(email, displayName string) *Principal {
	email = NormalizeEmail(email)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	return &Principal{
		Email:       email,
		DisplayName: displayName,
	}
}

// NormalizeEmail is the single normalization applied to every email that
// identifies a user, whichever login path produced it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail reports whether two addresses identify the same principal.
func SameEmail(a, b string) bool {
	a, b = NormalizeEmail(a), NormalizeEmail(b)

	return a != "" && a == b
}
