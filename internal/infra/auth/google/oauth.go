// Package google implements the delegated login against Google's OAuth2
// authorization-code flow.
package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"didilikeit/config"
	domainerrors "didilikeit/internal/domain/errors"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/errors"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const stateBytes = 32

var defaultScopes = []string{
	oauth2api.UserinfoEmailScope,
	oauth2api.UserinfoProfileScope,
}

// OAuthProvider handles Google OAuth infrastructure operations
type OAuthProvider struct {
	oauthConfig *oauth2.Config
	apiEndpoint string
	logger      *slog.Logger
}

// NewOAuthProvider returns nil when no client is configured, which switches the
// service to local login.
func NewOAuthProvider(cfg *config.Config, logger *slog.Logger) service.OAuthProvider {
	if !cfg.Identity.Configured() {
		return nil
	}

	return newOAuthProvider(cfg.Identity, logger)
}

func newOAuthProvider(cfg *config.IdentityConfig, logger *slog.Logger) *OAuthProvider {
	endpoint := googleoauth.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	return &OAuthProvider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     endpoint,
			Scopes:       defaultScopes,
		},
		apiEndpoint: cfg.UserInfoURL,
		logger:      logger,
	}
}

// Initiate builds the consent URL with a fresh state token and PKCE challenge.
func (p *OAuthProvider) Initiate(_ context.Context) (*service.AuthChallenge, error) {
	state, err := generateState()
	if err != nil {
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()

	url := p.oauthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOnline,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)

	return &service.AuthChallenge{
		URL:      url,
		State:    state,
		Verifier: verifier,
	}, nil
}

// Exchange trades the code for a token and reads the verified email from userinfo.
func (p *OAuthProvider) Exchange(ctx context.Context, code, verifier string) (*service.IdentityClaim, error) {
	token, err := p.oauthConfig.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrAuthExchangeFailed, err.Error())
	}

	opts := []option.ClientOption{option.WithTokenSource(p.oauthConfig.TokenSource(ctx, token))}
	if p.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(p.apiEndpoint))
	}

	api, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create userinfo client")
	}

	info, err := api.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrAuthExchangeFailed, "userinfo request failed: "+err.Error())
	}

	if info.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrAuthExchangeFailed, "identity has no email")
	}
	if info.VerifiedEmail != nil && !*info.VerifiedEmail {
		p.logger.Warn("Rejected unverified Google email", slog.String("email", info.Email))

		return nil, errors.Wrap(domainerrors.ErrAuthExchangeFailed, "email is not verified")
	}

	return &service.IdentityClaim{
		Email:       info.Email,
		DisplayName: info.Name,
	}, nil
}

// generateState returns 32 random bytes, hex encoded.
func generateState() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate state")
	}

	return hex.EncodeToString(buf), nil
}
