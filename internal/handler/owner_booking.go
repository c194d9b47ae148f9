package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/queue"
	"github.com/iliyamo/lodging-reservation/internal/service"
)

// OwnerBookingHandler serves booking management for accommodation
// owners: listing bookings placed against their properties and moving
// those bookings through the state machine.
type OwnerBookingHandler struct {
	Bookings *service.BookingService
}

func NewOwnerBookingHandler(bookings *service.BookingService) *OwnerBookingHandler {
	return &OwnerBookingHandler{Bookings: bookings}
}

// List handles GET /owner/bookings: every booking against an
// accommodation the actor owns.
func (h *OwnerBookingHandler) List(c echo.Context) error {
	ds, err := h.Bookings.ListBookingsForOwner(c.Request().Context(), currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": ds})
}

// Confirm handles POST /owner/bookings/:id/confirm.
func (h *OwnerBookingHandler) Confirm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Bookings.ConfirmBookingAsOwner(c.Request().Context(), id, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	publishBookingEvent(queue.EventBookingConfirmed, d)
	return c.JSON(http.StatusOK, d)
}

// Cancel handles POST /owner/bookings/:id/cancel.  Owners may cancel
// regardless of the check-in date.
func (h *OwnerBookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Bookings.CancelBookingAsOwner(c.Request().Context(), id, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	publishBookingEvent(queue.EventBookingCancelled, d)
	return c.JSON(http.StatusOK, d)
}
