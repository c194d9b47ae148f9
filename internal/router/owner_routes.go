package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/handler"
	"github.com/iliyamo/lodging-reservation/internal/middleware"
	"github.com/iliyamo/lodging-reservation/internal/model"
)

// RegisterOwner registers the OWNER-scoped endpoints under /v1/owner.
// All routes require a valid JWT with the OWNER role; per-resource
// ownership is enforced in the service layer against the persisted
// owner, not the token.
func RegisterOwner(e *echo.Echo, catalog *handler.OwnerCatalogHandler, bookings *handler.OwnerBookingHandler, jwtSecret string) {
	g := e.Group("/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner),
	)

	// ---- Accommodations ----
	g.POST("/accommodations", catalog.CreateAccommodation)
	g.GET("/accommodations", catalog.ListAccommodations)
	g.PUT("/accommodations/:id", catalog.UpdateAccommodation)
	g.DELETE("/accommodations/:id", catalog.DeleteAccommodation)

	// ---- Room types ----
	g.POST("/accommodations/:id/room-types", catalog.CreateRoomType)
	g.PUT("/room-types/:id", catalog.UpdateRoomType)
	g.DELETE("/room-types/:id", catalog.DeleteRoomType)

	// ---- Bookings ----
	g.GET("/bookings", bookings.List)
	g.POST("/bookings/:id/confirm", bookings.Confirm)
	g.POST("/bookings/:id/cancel", bookings.Cancel)
}
