package handler

import (
	"net/http"
	"strings"

	"didilikeit/config"
	deliverycontext "didilikeit/internal/delivery/context"
	"didilikeit/internal/delivery/http/response"
	"didilikeit/internal/domain/entity"
	"didilikeit/internal/errors"
	"didilikeit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler drives the login state machine over HTTP.
type AuthHandler struct {
	sessions  usecase.SessionUsecase
	localMode string
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(sessions usecase.SessionUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		localMode: cfg.Auth.LocalMode,
	}
}

// LocalLoginRequest is the body of POST /auth/login.
type LocalLoginRequest struct {
	Email  string `json:"email" form:"email" validate:"required,email"`
	Secret string `json:"secret" form:"secret" validate:"required"`
}

// ModeResponse tells a client which sign-in form to render.
type ModeResponse struct {
	Mode       usecase.LoginMode `json:"mode"`
	LocalLogin bool              `json:"localLogin"`
	LocalMode  string            `json:"localMode,omitempty"`
}

// PrincipalResponse is the signed-in identity.
type PrincipalResponse struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

// LoginChallengeResponse is returned instead of a redirect to API clients.
type LoginChallengeResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}

// Mode reports the configured login flow.
func (h *AuthHandler) Mode(c echo.Context) error {
	out := ModeResponse{
		Mode:       h.sessions.LoginMode(),
		LocalLogin: h.sessions.LocalLoginEnabled(),
	}
	if out.LocalLogin {
		out.LocalMode = h.localMode
	}

	return response.Success(c, http.StatusOK, out, "")
}

// BeginLogin redirects to the identity provider, or returns the URL to
// clients that ask for JSON.
func (h *AuthHandler) BeginLogin(c echo.Context) error {
	challenge, err := h.sessions.BeginLogin(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return errors.WithStack(err)
	}

	if wantsJSON(c) {
		return response.Success(c, http.StatusOK, LoginChallengeResponse{
			URL:       challenge.URL,
			ExpiresAt: challenge.ExpiresAt.UTC().Format(http.TimeFormat),
		}, "Continue at the identity provider")
	}

	return c.Redirect(http.StatusFound, challenge.URL)
}

// Callback completes the delegated login.
func (h *AuthHandler) Callback(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	principal, err := h.sessions.CompleteLogin(c.Request().Context(), session, &usecase.CallbackInput{
		State: c.QueryParam("state"),
		Code:  c.QueryParam("code"),
		Error: c.QueryParam("error"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.principalResponse(session, principal), "Signed in")
}

// LocalLogin signs in with an email and the invite code or password.
func (h *AuthHandler) LocalLogin(c echo.Context) error {
	var input LocalLoginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	session := deliverycontext.GetSession(c)
	principal, err := h.sessions.Authenticate(c.Request().Context(), session, input.Email, input.Secret)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.principalResponse(session, principal), "Signed in")
}

// Logout drops the principal.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), deliverycontext.GetSession(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Signed out")
}

// Me returns the current principal.
func (h *AuthHandler) Me(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	principal, err := h.sessions.CurrentPrincipal(session)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.principalResponse(session, principal), "")
}

func (h *AuthHandler) principalResponse(session *entity.Session, principal *entity.Principal) PrincipalResponse {
	return PrincipalResponse{
		Email:       principal.Email,
		DisplayName: principal.DisplayName,
		IsAdmin:     h.sessions.IsAdmin(session),
	}
}

func wantsJSON(c echo.Context) bool {
	if c.QueryParam("format") == "json" {
		return true
	}

	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
