// Package router wires HTTP routes to handlers and attaches the
// authentication and role middleware per route group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/handler"
	"github.com/iliyamo/lodging-reservation/internal/middleware"
	"github.com/iliyamo/lodging-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me requires a valid access token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require the JWT middleware: a client with an
	// expired access token can still revoke its refresh token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleOwner, model.RoleAdmin),
	)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// cache middleware (a no-op when Redis is absent) fronts these routes
// since they are read-only and identical for all guests.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, r *handler.ReviewHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/accommodations", b.ListAccommodations)
	g.GET("/accommodations/:id", b.GetAccommodation)
	g.GET("/accommodations/:id/room-types", b.ListRoomTypes)
	g.GET("/accommodations/:id/reviews", r.List)
}
