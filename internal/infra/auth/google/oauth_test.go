package google

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"didilikeit/config"
	domainerrors "didilikeit/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGoogle struct {
	server       *httptest.Server
	verified     bool
	email        string
	tokenStatus  int
	lastVerifier string
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()

	fake := &fakeGoogle{verified: true, email: "Alice@Example.com", tokenStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		fake.lastVerifier = r.PostForm.Get("code_verifier")
		if fake.tokenStatus != http.StatusOK || r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"invalid_grant"}`)

			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"access-123","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-123" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"email":          fake.email,
			"name":           "Alice",
			"verified_email": fake.verified,
		})
	})
	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeGoogle) provider() *OAuthProvider {
	return newOAuthProvider(&config.IdentityConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/auth/callback",
		AuthURL:      f.server.URL + "/auth",
		TokenURL:     f.server.URL + "/token",
		UserInfoURL:  f.server.URL + "/",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewOAuthProvider_NotConfigured(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	assert.Nil(t, NewOAuthProvider(cfg, slog.Default()))
}

func TestOAuthProvider_Initiate(t *testing.T) {
	provider := newFakeGoogle(t).provider()

	first, err := provider.Initiate(context.Background())
	require.NoError(t, err)
	second, err := provider.Initiate(context.Background())
	require.NoError(t, err)

	assert.Len(t, first.State, 64)
	assert.NotEqual(t, first.State, second.State)
	assert.NotEmpty(t, first.Verifier)

	parsed, err := url.Parse(first.URL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, first.State, query.Get("state"))
	assert.Equal(t, "S256", query.Get("code_challenge_method"))
	assert.NotEmpty(t, query.Get("code_challenge"))
	assert.Equal(t, "http://localhost:8080/auth/callback", query.Get("redirect_uri"))
}

func TestOAuthProvider_Exchange_Success(t *testing.T) {
	fake := newFakeGoogle(t)
	provider := fake.provider()

	claim, err := provider.Exchange(context.Background(), "good-code", "verifier-abc")

	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", claim.Email)
	assert.Equal(t, "Alice", claim.DisplayName)
	assert.Equal(t, "verifier-abc", fake.lastVerifier)
}

func TestOAuthProvider_Exchange_BadCode(t *testing.T) {
	provider := newFakeGoogle(t).provider()

	_, err := provider.Exchange(context.Background(), "bad-code", "verifier")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAuthExchangeFailed)
}

func TestOAuthProvider_Exchange_UnverifiedEmail(t *testing.T) {
	fake := newFakeGoogle(t)
	fake.verified = false

	_, err := fake.provider().Exchange(context.Background(), "good-code", "verifier")

	assert.ErrorIs(t, err, domainerrors.ErrAuthExchangeFailed)
}

func TestOAuthProvider_Exchange_MissingEmail(t *testing.T) {
	fake := newFakeGoogle(t)
	fake.email = ""

	_, err := fake.provider().Exchange(context.Background(), "good-code", "verifier")

	assert.ErrorIs(t, err, domainerrors.ErrAuthExchangeFailed)
}
