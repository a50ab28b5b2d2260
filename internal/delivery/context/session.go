package context

import (
	"didilikeit/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeySession is the echo.Context key of the per-request login session.
const KeySession ContextKey = "session"

// SetSession stores the request's session in echo.Context.
func SetSession(c echo.Context, session *entity.Session) {
	c.Set(string(KeySession), session)
}

// GetSession returns the request's session, or nil outside the session middleware.
func GetSession(c echo.Context) *entity.Session {
	if session, ok := c.Get(string(KeySession)).(*entity.Session); ok {
		return session
	}

	return nil
}
