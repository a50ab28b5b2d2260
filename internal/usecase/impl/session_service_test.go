package impl

import (
	"context"
	"testing"
	"time"

	"didilikeit/internal/domain/entity"
	domainerrors "didilikeit/internal/domain/errors"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/domain/service"
	sessionstore "didilikeit/internal/infra/session"
	mockRepo "didilikeit/internal/mocks/repository"
	mockSvc "didilikeit/internal/mocks/service"
	"didilikeit/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionMocks struct {
	sessions    *mockRepo.MockSessionRepository
	tokens      *mockSvc.MockTokenService
	oauth       *mockSvc.MockOAuthProvider
	credentials *mockSvc.MockCredentialVerifier
}

func newTestSessionService(t *testing.T, withOAuth, withCredentials bool) (*sessionService, *sessionMocks) {
	t.Helper()

	m := &sessionMocks{
		sessions: mockRepo.NewMockSessionRepository(t),
		tokens:   mockSvc.NewMockTokenService(t),
	}
	srv := &sessionService{
		sessions:   m.sessions,
		tokens:     m.tokens,
		adminEmail: adminEmail,
		stateTTL:   10 * time.Minute,
		sessionTTL: 30 * 24 * time.Hour,
		now:        func() time.Time { return fixedNow },
		logger:     testLogger(),
	}
	if withOAuth {
		m.oauth = mockSvc.NewMockOAuthProvider(t)
		srv.oauth = m.oauth
	}
	if withCredentials {
		m.credentials = mockSvc.NewMockCredentialVerifier(t)
		srv.credentials = m.credentials
	}

	return srv, m
}

func pendingSession(state string, expiresAt time.Time) *entity.Session {
	session := entity.NewSession(fixedNow, time.Hour)
	session.BeginPending(&entity.PendingAuth{State: state, Verifier: "verifier", ExpiresAt: expiresAt})

	return session
}

func TestSessionService_Resume(t *testing.T) {
	ctx := context.Background()

	t.Run("empty token starts anonymous", func(t *testing.T) {
		srv, _ := newTestSessionService(t, false, false)

		session, err := srv.Resume(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, entity.SessionAnonymous, session.State)
		assert.Equal(t, fixedNow.Add(srv.sessionTTL), session.ExpiresAt)
	})

	t.Run("unreadable token starts anonymous", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		m.tokens.EXPECT().ParseSessionToken("garbage").Return(uuid.Nil, errors.New("bad signature"))

		session, err := srv.Resume(ctx, "garbage")

		require.NoError(t, err)
		assert.Equal(t, entity.SessionAnonymous, session.State)
	})

	t.Run("unknown session starts anonymous", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		id := uuid.New()
		m.tokens.EXPECT().ParseSessionToken("token").Return(id, nil)
		m.sessions.EXPECT().Find(ctx, id).Return(nil, repository.ErrSessionNotFound)

		session, err := srv.Resume(ctx, "token")

		require.NoError(t, err)
		assert.NotEqual(t, id, session.ID)
	})

	t.Run("stored session is returned", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		stored := signedIn("alice@example.com")
		m.tokens.EXPECT().ParseSessionToken("token").Return(stored.ID, nil)
		m.sessions.EXPECT().Find(ctx, stored.ID).Return(stored, nil)

		session, err := srv.Resume(ctx, "token")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, session.ID)
		assert.True(t, session.IsAuthenticated(fixedNow))
	})

	t.Run("abandoned login is reset", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		stored := pendingSession("state", fixedNow.Add(-time.Second))
		m.tokens.EXPECT().ParseSessionToken("token").Return(stored.ID, nil)
		m.sessions.EXPECT().Find(ctx, stored.ID).Return(stored, nil)

		session, err := srv.Resume(ctx, "token")

		require.NoError(t, err)
		assert.Equal(t, entity.SessionAnonymous, session.State)
		assert.Nil(t, session.Pending)
	})

	t.Run("repository failure is an error", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		id := uuid.New()
		m.tokens.EXPECT().ParseSessionToken("token").Return(id, nil)
		m.sessions.EXPECT().Find(ctx, id).Return(nil, errors.New("boom"))

		_, err := srv.Resume(ctx, "token")

		require.Error(t, err)
	})
}

func TestSessionService_Persist(t *testing.T) {
	ctx := context.Background()

	t.Run("signed in session is stored", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		session := signedIn("alice@example.com")

		m.sessions.EXPECT().Save(ctx, session).Return(nil)
		m.tokens.EXPECT().IssueSessionToken(session.ID, session.ExpiresAt).Return("signed", nil)

		token, err := srv.Persist(ctx, session)

		require.NoError(t, err)
		assert.Equal(t, "signed", token)
	})

	t.Run("pending login is stored", func(t *testing.T) {
		srv, m := newTestSessionService(t, true, false)
		session := pendingSession("state", fixedNow.Add(time.Minute))

		m.sessions.EXPECT().Save(ctx, session).Return(nil)
		m.tokens.EXPECT().IssueSessionToken(session.ID, session.ExpiresAt).Return("signed", nil)

		token, err := srv.Persist(ctx, session)

		require.NoError(t, err)
		assert.Equal(t, "signed", token)
	})

	t.Run("anonymous session is dropped", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		session := entity.NewSession(fixedNow, time.Hour)

		m.sessions.EXPECT().Delete(ctx, session.ID).Return(nil)

		token, err := srv.Persist(ctx, session)

		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("revoked session is not revived", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		session := signedIn("alice@example.com")

		m.sessions.EXPECT().Save(ctx, session).Return(repository.ErrSessionRevoked)

		token, err := srv.Persist(ctx, session)

		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("store failure is an error", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, false)
		session := signedIn("alice@example.com")

		m.sessions.EXPECT().Save(ctx, session).Return(errors.New("disk full"))

		_, err := srv.Persist(ctx, session)

		require.Error(t, err)
	})
}

func TestSessionService_BeginLogin_NotConfigured(t *testing.T) {
	srv, _ := newTestSessionService(t, false, true)

	_, err := srv.BeginLogin(context.Background(), entity.NewSession(fixedNow, time.Hour))

	require.ErrorIs(t, err, domainerrors.ErrOAuthNotConfigured)
}

func TestSessionService_BeginLogin_DropsPrincipal(t *testing.T) {
	ctx := context.Background()
	srv, m := newTestSessionService(t, true, false)
	session := signedIn("alice@example.com")

	m.oauth.EXPECT().Initiate(ctx).Return(&service.AuthChallenge{
		URL:      "https://accounts.example.com/auth?state=s1",
		State:    "s1",
		Verifier: "v1",
	}, nil)

	challenge, err := srv.BeginLogin(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example.com/auth?state=s1", challenge.URL)
	assert.Equal(t, fixedNow.Add(10*time.Minute), challenge.ExpiresAt)
	assert.Equal(t, entity.SessionAuthPending, session.State)
	assert.Nil(t, session.Principal)
	require.NotNil(t, session.Pending)
	assert.Equal(t, "s1", session.Pending.State)
	assert.Equal(t, "v1", session.Pending.Verifier)
}

func TestSessionService_BeginLogin_InitiateFails(t *testing.T) {
	ctx := context.Background()
	srv, m := newTestSessionService(t, true, false)
	session := entity.NewSession(fixedNow, time.Hour)

	m.oauth.EXPECT().Initiate(ctx).Return(nil, errors.New("entropy"))

	_, err := srv.BeginLogin(ctx, session)

	require.ErrorIs(t, err, domainerrors.ErrAuthExchangeFailed)
	assert.Equal(t, entity.SessionAnonymous, session.State)
}

func TestSessionService_CompleteLogin_StateMismatch(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestSessionService(t, true, false)
	session := pendingSession("expected", fixedNow.Add(time.Minute))

	_, err := srv.CompleteLogin(ctx, session, &usecase.CallbackInput{State: "forged", Code: "code"})
	require.ErrorIs(t, err, domainerrors.ErrAuthStateMismatch)
	assert.Equal(t, entity.SessionAnonymous, session.State)
	assert.Nil(t, session.Pending)

	// The real token was consumed by the failed attempt and cannot be replayed.
	_, err = srv.CompleteLogin(ctx, session, &usecase.CallbackInput{State: "expected", Code: "code"})
	require.ErrorIs(t, err, domainerrors.ErrAuthStateMismatch)
	assert.Equal(t, entity.SessionAnonymous, session.State)
}

func TestSessionService_CompleteLogin_RejectsWithoutPending(t *testing.T) {
	tests := []struct {
		name    string
		session *entity.Session
		state   string
	}{
		{"anonymous session", entity.NewSession(fixedNow, time.Hour), "s1"},
		{"expired token", pendingSession("s1", fixedNow), "s1"},
		{"empty state", pendingSession("s1", fixedNow.Add(time.Minute)), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestSessionService(t, true, false)

			_, err := srv.CompleteLogin(context.Background(), tt.session, &usecase.CallbackInput{State: tt.state, Code: "code"})

			require.ErrorIs(t, err, domainerrors.ErrAuthStateMismatch)
			assert.Equal(t, entity.SessionAnonymous, tt.session.State)
		})
	}
}

func TestSessionService_CompleteLogin_ProviderError(t *testing.T) {
	srv, _ := newTestSessionService(t, true, false)
	session := pendingSession("s1", fixedNow.Add(time.Minute))

	_, err := srv.CompleteLogin(context.Background(), session, &usecase.CallbackInput{State: "s1", Error: "access_denied"})

	require.ErrorIs(t, err, domainerrors.ErrAuthExchangeFailed)
	assert.Equal(t, entity.SessionAnonymous, session.State)
}

func TestSessionService_CompleteLogin_ExchangeFails(t *testing.T) {
	ctx := context.Background()
	srv, m := newTestSessionService(t, true, false)
	session := pendingSession("s1", fixedNow.Add(time.Minute))

	m.oauth.EXPECT().Exchange(ctx, "code", "verifier").Return(nil, errors.New("invalid_grant"))

	_, err := srv.CompleteLogin(ctx, session, &usecase.CallbackInput{State: "s1", Code: "code"})

	require.ErrorIs(t, err, domainerrors.ErrAuthExchangeFailed)
	assert.Equal(t, entity.SessionAnonymous, session.State)
}

func TestSessionService_CompleteLogin_Success(t *testing.T) {
	ctx := context.Background()
	srv, m := newTestSessionService(t, true, false)
	session := pendingSession("s1", fixedNow.Add(time.Minute))
	oldID := session.ID

	m.oauth.EXPECT().Exchange(ctx, "code", "verifier").
		Return(&service.IdentityClaim{Email: " Alice@Example.com ", DisplayName: "Alice"}, nil)
	m.sessions.EXPECT().Delete(ctx, oldID).Return(nil)

	principal, err := srv.CompleteLogin(ctx, session, &usecase.CallbackInput{State: "s1", Code: "code"})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", principal.Email)
	assert.Equal(t, "Alice", principal.DisplayName)
	assert.Equal(t, entity.SessionAuthenticated, session.State)
	assert.NotEqual(t, oldID, session.ID)
	assert.Nil(t, session.Pending)
}

func TestSessionService_CompleteLogin_EmptyEmail(t *testing.T) {
	ctx := context.Background()
	srv, m := newTestSessionService(t, true, false)
	session := pendingSession("s1", fixedNow.Add(time.Minute))

	m.oauth.EXPECT().Exchange(ctx, "code", "verifier").Return(&service.IdentityClaim{Email: "  "}, nil)

	_, err := srv.CompleteLogin(ctx, session, &usecase.CallbackInput{State: "s1", Code: "code"})

	require.ErrorIs(t, err, domainerrors.ErrAuthExchangeFailed)
	assert.Equal(t, entity.SessionAnonymous, session.State)
}

func TestSessionService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled when oauth is configured", func(t *testing.T) {
		srv, _ := newTestSessionService(t, true, true)

		_, err := srv.Authenticate(ctx, entity.NewSession(fixedNow, time.Hour), "alice@example.com", "secret")

		require.ErrorIs(t, err, domainerrors.ErrLocalLoginDisabled)
	})

	t.Run("disabled without a verifier", func(t *testing.T) {
		srv, _ := newTestSessionService(t, false, false)

		_, err := srv.Authenticate(ctx, entity.NewSession(fixedNow, time.Hour), "alice@example.com", "secret")

		require.ErrorIs(t, err, domainerrors.ErrLocalLoginDisabled)
	})

	t.Run("rejected credentials leave the session anonymous", func(t *testing.T) {
		srv, m := newTestSessionService(t, false, true)
		session := signedIn("bob@example.com")
		m.credentials.EXPECT().Verify(ctx, "alice@example.com", "wrong").Return(nil, domainerrors.ErrInvalidCredentials)

		_, err := srv.Authenticate(ctx, session, "alice@example.com", "wrong")

		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		assert.Equal(t, entity.SessionAnonymous, session.State)
		assert.Nil(t, session.Principal)
	})

	t.Run("success skips AUTH_PENDING", func(t *testing.T) {
		srv, m := newTestSessionService(t, true, true)
		srv.allowLocal = true
		session := entity.NewSession(fixedNow, time.Hour)
		m.credentials.EXPECT().Verify(ctx, "Alice@Example.com", "club").
			Return(&service.IdentityClaim{Email: "Alice@Example.com"}, nil)
		m.sessions.EXPECT().Delete(ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

		principal, err := srv.Authenticate(ctx, session, "Alice@Example.com", "club")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", principal.Email)
		assert.Equal(t, "alice", principal.DisplayName)
		assert.Equal(t, entity.SessionAuthenticated, session.State)
	})
}

func TestSessionService_Logout(t *testing.T) {
	ctx := context.Background()
	srv, m := newTestSessionService(t, false, false)
	session := signedIn("alice@example.com")
	oldID := session.ID

	m.sessions.EXPECT().Delete(ctx, oldID).Return(nil)

	require.NoError(t, srv.Logout(ctx, session))
	assert.Equal(t, entity.SessionAnonymous, session.State)
	assert.NotEqual(t, oldID, session.ID)

	_, err := srv.CurrentPrincipal(session)
	require.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestSessionService_IsAdmin(t *testing.T) {
	srv, _ := newTestSessionService(t, false, false)

	assert.True(t, srv.IsAdmin(signedIn("Admin@Example.com")))
	assert.False(t, srv.IsAdmin(signedIn("alice@example.com")))
	assert.False(t, srv.IsAdmin(entity.NewSession(fixedNow, time.Hour)))

	srv.adminEmail = ""
	assert.False(t, srv.IsAdmin(signedIn("admin@example.com")))
}

func TestSessionService_CurrentPrincipal_Expired(t *testing.T) {
	srv, _ := newTestSessionService(t, false, false)
	session := entity.NewSession(fixedNow.Add(-2*time.Hour), time.Hour)
	session.Install(entity.NewPrincipal("alice@example.com", ""))

	_, err := srv.CurrentPrincipal(session)

	require.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestSessionService_LoginMode(t *testing.T) {
	srv, _ := newTestSessionService(t, true, true)
	assert.Equal(t, usecase.LoginModeOAuth, srv.LoginMode())
	assert.False(t, srv.LocalLoginEnabled())

	srv.allowLocal = true
	assert.True(t, srv.LocalLoginEnabled())

	srv, _ = newTestSessionService(t, false, true)
	assert.Equal(t, usecase.LoginModeLocal, srv.LoginMode())
	assert.True(t, srv.LocalLoginEnabled())
}

func TestSessionService_StaleCopyCannotUndoRevocation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		stored func(now time.Time) *entity.Session
		act    func(t *testing.T, srv *sessionService, session *entity.Session)
	}{
		{
			name: "logout",
			stored: func(now time.Time) *entity.Session {
				session := entity.NewSession(now, time.Hour)
				session.Install(entity.NewPrincipal("alice@example.com", ""))

				return session
			},
			act: func(t *testing.T, srv *sessionService, session *entity.Session) {
				require.NoError(t, srv.Logout(ctx, session))
			},
		},
		{
			name: "redeemed login",
			stored: func(now time.Time) *entity.Session {
				session := entity.NewSession(now, time.Hour)
				session.BeginPending(&entity.PendingAuth{State: "state", Verifier: "verifier", ExpiresAt: now.Add(time.Minute)})

				return session
			},
			act: func(t *testing.T, srv *sessionService, session *entity.Session) {
				_, err := srv.CompleteLogin(ctx, session, &usecase.CallbackInput{State: "forged", Code: "code"})
				require.ErrorIs(t, err, domainerrors.ErrAuthStateMismatch)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := sessionstore.NewMemoryRepository()
			tokens := mockSvc.NewMockTokenService(t)
			srv := &sessionService{
				sessions:   repo,
				tokens:     tokens,
				stateTTL:   10 * time.Minute,
				sessionTTL: time.Hour,
				now:        time.Now,
				logger:     testLogger(),
			}

			stored := tt.stored(time.Now())
			require.NoError(t, repo.Save(ctx, stored))
			tokens.EXPECT().ParseSessionToken("cookie").Return(stored.ID, nil).Twice()

			// Both requests load the session before either writes it back.
			slow, err := srv.Resume(ctx, "cookie")
			require.NoError(t, err)
			fast, err := srv.Resume(ctx, "cookie")
			require.NoError(t, err)

			tt.act(t, srv, fast)
			token, err := srv.Persist(ctx, fast)
			require.NoError(t, err)
			assert.Empty(t, token)

			token, err = srv.Persist(ctx, slow)
			require.NoError(t, err)
			assert.Empty(t, token)

			_, err = repo.Find(ctx, stored.ID)
			assert.ErrorIs(t, err, repository.ErrSessionNotFound)
		})
	}
}
