package middleware

import (
	"log/slog"
	"net/http"

	"didilikeit/config"
	deliverycontext "didilikeit/internal/delivery/context"
	"didilikeit/internal/errors"
	"didilikeit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware resumes the login session named by the cookie and
// persists it again right before the response headers go out.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
	cfg      *config.SessionConfig
	logger   *slog.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions usecase.SessionUsecase, cfg *config.Config, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cfg:      cfg.Session,
		logger:   logger,
	}
}

// Load attaches the session to the echo.Context.
func (m *SessionMiddleware) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ""
		if cookie, err := c.Cookie(m.cfg.CookieName); err == nil {
			token = cookie.Value
		}
		hadCookie := token != ""

		ctx := c.Request().Context()
		session, err := m.sessions.Resume(ctx, token)
		if err != nil {
			return errors.Wrap(err, "failed to resume session")
		}
		deliverycontext.SetSession(c, session)

		// Handlers may rotate or reset the session, so it is saved at the
		// last moment the cookie can still be set.
		c.Response().Before(func() {
			signed, err := m.sessions.Persist(ctx, session)
			if err != nil {
				deliverycontext.GetLoggerOrDefault(ctx, m.logger).Error("Failed to persist session", slog.Any("error", err))

				return
			}
			if signed == "" {
				if hadCookie {
					c.SetCookie(&http.Cookie{
						Name:     m.cfg.CookieName,
						Path:     "/",
						MaxAge:   -1,
						HttpOnly: true,
						Secure:   m.cfg.Secure,
						SameSite: http.SameSiteLaxMode,
					})
				}

				return
			}
			c.SetCookie(&http.Cookie{
				Name:     m.cfg.CookieName,
				Value:    signed,
				Path:     "/",
				Expires:  session.ExpiresAt,
				HttpOnly: true,
				Secure:   m.cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		})

		return next(c)
	}
}
