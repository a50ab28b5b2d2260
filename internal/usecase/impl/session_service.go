// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"didilikeit/config"
	deliverycontext "didilikeit/internal/delivery/context"
	"didilikeit/internal/domain/entity"
	domainerrors "didilikeit/internal/domain/errors"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/errors"
	"didilikeit/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessions    repository.SessionRepository
	tokens      service.TokenService
	oauth       service.OAuthProvider
	credentials service.CredentialVerifier
	adminEmail  string
	allowLocal  bool
	stateTTL    time.Duration
	sessionTTL  time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Sessions    repository.SessionRepository
	Tokens      service.TokenService
	OAuth       service.OAuthProvider      `optional:"true"`
	Credentials service.CredentialVerifier `optional:"true"`
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessions:    params.Sessions,
		tokens:      params.Tokens,
		oauth:       params.OAuth,
		credentials: params.Credentials,
		adminEmail:  entity.NormalizeEmail(params.Config.Auth.AdminEmail),
		allowLocal:  params.Config.Auth.AllowLocal,
		stateTTL:    params.Config.Auth.StateTTL,
		sessionTTL:  params.Config.Session.TTL(),
		now:         time.Now,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resume loads the session behind a cookie token or starts a new anonymous one.
func (srv *sessionService) Resume(ctx context.Context, token string) (*entity.Session, error) {
	now := srv.now()
	if token == "" {
		return entity.NewSession(now, srv.sessionTTL), nil
	}

	id, err := srv.tokens.ParseSessionToken(token)
	if err != nil {
		srv.log(ctx).Debug("Discarding unreadable session token", slog.Any("error", err))

		return entity.NewSession(now, srv.sessionTTL), nil
	}

	session, err := srv.sessions.Find(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return entity.NewSession(now, srv.sessionTTL), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}

	if session.Expired(now) {
		return entity.NewSession(now, srv.sessionTTL), nil
	}

	// An abandoned login must not keep its token redeemable.
	if session.State == entity.SessionAuthPending && (session.Pending == nil || session.Pending.Expired(now)) {
		session.Reset()
	}

	return session, nil
}

// Persist saves the session and signs a cookie token for it. A session with
// nothing to remember is dropped instead of stored.
func (srv *sessionService) Persist(ctx context.Context, session *entity.Session) (string, error) {
	if session.State == entity.SessionAnonymous && session.Pending == nil {
		if err := srv.sessions.Delete(ctx, session.ID); err != nil {
			return "", errors.Wrap(err, "failed to delete session")
		}

		return "", nil
	}

	if err := srv.sessions.Save(ctx, session); err != nil {
		if errors.Is(err, repository.ErrSessionRevoked) {
			srv.log(ctx).Info("Dropped a write to a session revoked by another request", slog.String("state", session.State.String()))

			return "", nil
		}

		return "", errors.Wrap(err, "failed to save session")
	}

	token, err := srv.tokens.IssueSessionToken(session.ID, session.ExpiresAt)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue session token")
	}

	return token, nil
}

// BeginLogin starts a delegated login and parks the session in AUTH_PENDING.
func (srv *sessionService) BeginLogin(ctx context.Context, session *entity.Session) (*usecase.LoginChallenge, error) {
	if srv.oauth == nil {
		return nil, domainerrors.ErrOAuthNotConfigured
	}

	if session.Principal != nil {
		srv.log(ctx).Info("Dropping current principal for a new login", slog.String("email", session.Principal.Email))
	}
	session.Reset()

	challenge, err := srv.oauth.Initiate(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to initiate login", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrAuthExchangeFailed, "failed to initiate login")
	}

	expiresAt := srv.now().Add(srv.stateTTL)
	session.BeginPending(&entity.PendingAuth{
		State:     challenge.State,
		Verifier:  challenge.Verifier,
		ExpiresAt: expiresAt,
	})

	return &usecase.LoginChallenge{
		URL:       challenge.URL,
		ExpiresAt: expiresAt,
	}, nil
}

// CompleteLogin redeems the pending token exactly once and exchanges the code.
func (srv *sessionService) CompleteLogin(ctx context.Context, session *entity.Session, input *usecase.CallbackInput) (*entity.Principal, error) {
	wasPending := session.State == entity.SessionAuthPending
	pending := session.TakePending()

	if !wasPending || pending == nil || pending.Expired(srv.now()) || !sameToken(pending.State, input.State) {
		session.Reset()
		srv.log(ctx).Warn("Rejected login callback with an unknown state token",
			slog.Bool("was_pending", wasPending))

		return nil, domainerrors.ErrAuthStateMismatch
	}

	if input.Error != "" {
		session.Reset()
		srv.log(ctx).Info("Identity provider returned an error", slog.String("provider_error", input.Error))

		return nil, domainerrors.ErrAuthExchangeFailed.WithDetails(input.Error)
	}

	if input.Code == "" || srv.oauth == nil {
		session.Reset()

		return nil, errors.Wrap(domainerrors.ErrAuthExchangeFailed, "missing authorization code")
	}

	claim, err := srv.oauth.Exchange(ctx, input.Code, pending.Verifier)
	if err != nil {
		session.Reset()
		srv.log(ctx).Warn("Authorization code exchange failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrAuthExchangeFailed, "code exchange failed")
	}

	return srv.install(ctx, session, claim, domainerrors.ErrAuthExchangeFailed)
}

// Authenticate signs in with local credentials, skipping AUTH_PENDING.
func (srv *sessionService) Authenticate(ctx context.Context, session *entity.Session, email, secret string) (*entity.Principal, error) {
	if !srv.LocalLoginEnabled() {
		return nil, domainerrors.ErrLocalLoginDisabled
	}

	session.Reset()

	claim, err := srv.credentials.Verify(ctx, email, secret)
	if err != nil {
		srv.log(ctx).Info("Local login rejected", slog.String("email", entity.NormalizeEmail(email)))

		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			return nil, err
		}

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, err.Error())
	}

	return srv.install(ctx, session, claim, domainerrors.ErrInvalidCredentials)
}

// install rotates the session ID and makes the claim the session's principal.
func (srv *sessionService) install(ctx context.Context, session *entity.Session, claim *service.IdentityClaim, failure error) (*entity.Principal, error) {
	principal := entity.NewPrincipal(claim.Email, claim.DisplayName)
	if principal.Email == "" {
		session.Reset()

		return nil, errors.Wrap(failure, "identity has no email")
	}

	if err := srv.rotate(ctx, session); err != nil {
		session.Reset()

		return nil, err
	}
	session.Install(principal)

	srv.log(ctx).Info("Signed in", slog.String("email", principal.Email))

	cp := *principal

	return &cp, nil
}

// CurrentPrincipal returns the signed-in identity.
func (srv *sessionService) CurrentPrincipal(session *entity.Session) (*entity.Principal, error) {
	if session == nil || !session.IsAuthenticated(srv.now()) {
		return nil, domainerrors.ErrNotAuthenticated
	}

	cp := *session.Principal

	return &cp, nil
}

// Logout forgets the stored session and leaves a fresh anonymous one behind.
func (srv *sessionService) Logout(ctx context.Context, session *entity.Session) error {
	session.Reset()

	return srv.rotate(ctx, session)
}

// IsAdmin compares the principal with the configured admin address.
func (srv *sessionService) IsAdmin(session *entity.Session) bool {
	principal, err := srv.CurrentPrincipal(session)
	if err != nil {
		return false
	}

	return entity.SameEmail(principal.Email, srv.adminEmail)
}

// LoginMode reports oauth when an identity client is configured.
func (srv *sessionService) LoginMode() usecase.LoginMode {
	if srv.oauth != nil {
		return usecase.LoginModeOAuth
	}

	return usecase.LoginModeLocal
}

// LocalLoginEnabled reports whether Authenticate may be used.
func (srv *sessionService) LocalLoginEnabled() bool {
	if srv.credentials == nil {
		return false
	}

	return srv.oauth == nil || srv.allowLocal
}

// rotate moves the session to a new ID so a token issued before a privilege
// change cannot be replayed.
func (srv *sessionService) rotate(ctx context.Context, session *entity.Session) error {
	if err := srv.sessions.Delete(ctx, session.ID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	session.ID = uuid.New()

	return nil
}

func sameToken(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
