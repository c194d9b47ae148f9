package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/queue"
	"github.com/iliyamo/lodging-reservation/internal/service"
)

// AdminHandler serves the admin surface.  Admin operations skip the
// ownership guard entirely; only the booking state machine still
// applies.
type AdminHandler struct {
	Catalog  *service.CatalogService
	Bookings *service.BookingService
}

func NewAdminHandler(catalog *service.CatalogService, bookings *service.BookingService) *AdminHandler {
	return &AdminHandler{Catalog: catalog, Bookings: bookings}
}

// ListBookings handles GET /admin/bookings: every booking in the system.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ds, err := h.Bookings.ListAllBookings(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": ds})
}

// ConfirmBooking handles POST /admin/bookings/:id/confirm.
func (h *AdminHandler) ConfirmBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Bookings.ConfirmBookingAsAdmin(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	publishBookingEvent(queue.EventBookingConfirmed, d)
	return c.JSON(http.StatusOK, d)
}

// CancelBooking handles POST /admin/bookings/:id/cancel.
func (h *AdminHandler) CancelBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Bookings.CancelBookingAsAdmin(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	publishBookingEvent(queue.EventBookingCancelled, d)
	return c.JSON(http.StatusOK, d)
}

type adminAccommodationReq struct {
	accommodationReq
	OwnerUsername string `json:"owner_username" validate:"required"`
}

// CreateAccommodation handles POST /admin/accommodations.  Unlike the
// owner endpoint, the owner is named explicitly in the body; admins
// never own accommodations themselves.
func (h *AdminHandler) CreateAccommodation(c echo.Context) error {
	var req adminAccommodationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	created, err := h.Catalog.CreateAccommodation(c.Request().Context(), a, req.OwnerUsername)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, viewAccommodation(created))
}

// CreateRoomType handles POST /admin/accommodations/:id/room-types.
func (h *AdminHandler) CreateRoomType(c echo.Context) error {
	accID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rt, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	created, err := h.Catalog.CreateRoomTypeAsAdmin(c.Request().Context(), accID, rt)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, viewRoomType(created))
}

// UpdateAccommodation handles PUT /admin/accommodations/:id.
func (h *AdminHandler) UpdateAccommodation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req accommodationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	upd, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	a, err := h.Catalog.UpdateAccommodationAsAdmin(c.Request().Context(), id, upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewAccommodation(a))
}

// DeleteAccommodation handles DELETE /admin/accommodations/:id.
func (h *AdminHandler) DeleteAccommodation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Catalog.DeleteAccommodationAsAdmin(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateRoomType handles PUT /admin/room-types/:id.
func (h *AdminHandler) UpdateRoomType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	upd, err := req.toModel()
	if err != nil {
		return writeError(c, err)
	}
	rt, err := h.Catalog.UpdateRoomTypeAsAdmin(c.Request().Context(), id, upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewRoomType(rt))
}

// DeleteRoomType handles DELETE /admin/room-types/:id.
func (h *AdminHandler) DeleteRoomType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Catalog.DeleteRoomTypeAsAdmin(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
