package middleware

import (
	deliverycontext "didilikeit/internal/delivery/context"
	domainerrors "didilikeit/internal/domain/errors"
	"didilikeit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes by session state. It must run after SessionMiddleware.Load.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth rejects requests whose session carries no principal.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := m.sessions.CurrentPrincipal(deliverycontext.GetSession(c)); err != nil {
			return err
		}

		return next(c)
	}
}

// RequireAdmin rejects every principal except the configured admin.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := deliverycontext.GetSession(c)
		if _, err := m.sessions.CurrentPrincipal(session); err != nil {
			return err
		}
		if !m.sessions.IsAdmin(session) {
			return domainerrors.ErrForbidden
		}

		return next(c)
	}
}
