package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/mail"

	"didilikeit/config"
	"didilikeit/internal/domain/entity"
	domainerrors "didilikeit/internal/domain/errors"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/errors"
)

// dummyHash is compared against when the email is unknown, so unknown and
// known accounts take the same time to reject.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3NfZ4Rr9CzNR6uQFZqvIUbW"

// NewCredentialVerifier selects the local verifier for auth.localMode.
func NewCredentialVerifier(cfg *config.Config, hasher service.PasswordHasher, logger *slog.Logger) (service.CredentialVerifier, error) {
	switch cfg.Auth.LocalMode {
	case config.LocalModeInvite:
		if cfg.Auth.InviteCode == "" {
			logger.Warn("auth.inviteCode is empty; invite login is disabled")

			return nil, nil
		}

		return NewInviteVerifier(cfg.Auth.InviteCode), nil
	case config.LocalModePassword:
		return NewPasswordVerifier(cfg.Auth.Credentials, hasher), nil
	default:
		return nil, errors.Errorf("unknown auth.localMode %q", cfg.Auth.LocalMode)
	}
}

// inviteVerifier lets anyone holding the shared invite code sign in as any email.
type inviteVerifier struct {
	code []byte
}

// NewInviteVerifier is the constructor for inviteVerifier.
func NewInviteVerifier(code string) service.CredentialVerifier {
	return &inviteVerifier{code: []byte(code)}
}

// Verify checks the invite code and the shape of the email.
func (v *inviteVerifier) Verify(_ context.Context, email, secret string) (*service.IdentityClaim, error) {
	if subtle.ConstantTimeCompare(v.code, []byte(secret)) != 1 {
		return nil, domainerrors.ErrInvalidCredentials
	}

	normalized := entity.NormalizeEmail(email)
	if _, err := mail.ParseAddress(normalized); err != nil {
		return nil, domainerrors.ErrInvalidCredentials.WithDetails("email address is not valid")
	}

	return &service.IdentityClaim{Email: normalized}, nil
}

// passwordVerifier checks bcrypt hashes from the configured account list.
type passwordVerifier struct {
	accounts map[string]config.CredentialConfig
	hasher   service.PasswordHasher
}

// NewPasswordVerifier indexes credentials by normalized email.
func NewPasswordVerifier(credentials []config.CredentialConfig, hasher service.PasswordHasher) service.CredentialVerifier {
	accounts := make(map[string]config.CredentialConfig, len(credentials))
	for _, credential := range credentials {
		accounts[entity.NormalizeEmail(credential.Email)] = credential
	}

	return &passwordVerifier{
		accounts: accounts,
		hasher:   hasher,
	}
}

// Verify compares the secret with the account's bcrypt hash.
func (v *passwordVerifier) Verify(_ context.Context, email, secret string) (*service.IdentityClaim, error) {
	normalized := entity.NormalizeEmail(email)

	account, ok := v.accounts[normalized]
	if !ok {
		v.hasher.Check(secret, dummyHash)

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !v.hasher.Check(secret, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return &service.IdentityClaim{
		Email:       normalized,
		DisplayName: account.DisplayName,
	}, nil
}
