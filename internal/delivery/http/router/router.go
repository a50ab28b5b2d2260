// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"didilikeit/internal/delivery/http/middleware"
	"didilikeit/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	EntryHandler      *handler.EntryHandler
	AdminHandler      *handler.AdminHandler
	SessionMiddleware *middleware.SessionMiddleware
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	entryHandler      *handler.EntryHandler
	adminHandler      *handler.AdminHandler
	sessionMiddleware *middleware.SessionMiddleware
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		entryHandler:      params.EntryHandler,
		adminHandler:      params.AdminHandler,
		sessionMiddleware: params.SessionMiddleware,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Everything else runs with a login session.
	app := e.Group("", r.sessionMiddleware.Load)

	authGroup := app.Group("/auth")
	{
		authGroup.GET("/mode", r.authHandler.Mode)
		authGroup.GET("/login", r.authHandler.BeginLogin)
		authGroup.POST("/login", r.authHandler.LocalLogin)
		authGroup.GET("/callback", r.authHandler.Callback)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	app.GET("/me", r.authHandler.Me, r.authMiddleware.RequireAuth)

	entryGroup := app.Group("/entries", r.authMiddleware.RequireAuth)
	{
		entryGroup.GET("", r.entryHandler.List)
		entryGroup.POST("", r.entryHandler.Add)
		entryGroup.DELETE("/:id", r.entryHandler.Delete)
		entryGroup.DELETE("/at/:position", r.entryHandler.DeleteAt)
	}

	adminGroup := app.Group("/admin", r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/stats", r.adminHandler.Stats)
		adminGroup.GET("/invite.png", r.adminHandler.InviteQR)
	}
}
