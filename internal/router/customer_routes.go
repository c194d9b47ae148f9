package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/handler"
	"github.com/iliyamo/lodging-reservation/internal/middleware"
	"github.com/iliyamo/lodging-reservation/internal/model"
)

// RegisterCustomer registers the customer endpoints under /v1.  Any
// authenticated role may book, review and favorite: owners and admins
// act as ordinary customers here, scoped to their own records.
func RegisterCustomer(e *echo.Echo, h *handler.BookingHandler, rv *handler.ReviewHandler, fav *handler.FavoriteHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleOwner, model.RoleAdmin),
	)
	g.POST("/bookings", h.Create)
	g.GET("/my-bookings", h.List)
	g.GET("/bookings/:id", h.Get)
	g.POST("/bookings/:id/cancel", h.Cancel)

	g.POST("/accommodations/:id/reviews", rv.Create)

	g.GET("/favorites", fav.List)
	g.GET("/favorites/:id", fav.Check)
	g.POST("/favorites/:id", fav.Add)
	g.DELETE("/favorites/:id", fav.Remove)
	g.POST("/favorites/:id/toggle", fav.Toggle)
}
