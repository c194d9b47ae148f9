package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/handler"
	"github.com/iliyamo/lodging-reservation/internal/middleware"
	"github.com/iliyamo/lodging-reservation/internal/model"
)

// RegisterAdmin registers the ADMIN-scoped endpoints under /v1/admin.
// Admin routes bypass per-resource ownership checks; the role gate here
// is the only authorization they need.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/bookings", h.ListBookings)
	g.POST("/bookings/:id/confirm", h.ConfirmBooking)
	g.POST("/bookings/:id/cancel", h.CancelBooking)

	g.POST("/accommodations", h.CreateAccommodation)
	g.PUT("/accommodations/:id", h.UpdateAccommodation)
	g.DELETE("/accommodations/:id", h.DeleteAccommodation)
	g.POST("/accommodations/:id/room-types", h.CreateRoomType)
	g.PUT("/room-types/:id", h.UpdateRoomType)
	g.DELETE("/room-types/:id", h.DeleteRoomType)
}
