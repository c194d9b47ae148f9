package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lodging-reservation/internal/model"
	"github.com/iliyamo/lodging-reservation/internal/queue"
	"github.com/iliyamo/lodging-reservation/internal/service"
	"github.com/iliyamo/lodging-reservation/internal/utils"
)

// BookingHandler serves the customer-facing booking endpoints.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type createBookingReq struct {
	RoomTypeID uint64 `json:"room_type_id" validate:"required"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	Quantity   uint32 `json:"quantity" validate:"required,min=1,max=1000"`
}

// bookingView renders a freshly created booking with dates and total
// price as strings.
type bookingView struct {
	*model.Booking
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	TotalPrice string `json:"total_price"`
}

func viewBooking(b *model.Booking) bookingView {
	return bookingView{
		Booking:    b,
		CheckIn:    b.CheckIn.UTC().Format(model.DateLayout),
		CheckOut:   b.CheckOut.UTC().Format(model.DateLayout),
		TotalPrice: utils.FormatCents(b.TotalPriceCents),
	}
}

// Create handles POST /bookings.  Dates are calendar dates in
// YYYY-MM-DD form; [check_in, check_out) is half-open, so a stay's
// check-out day never consumes inventory.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	checkIn, err := time.ParseInLocation(model.DateLayout, req.CheckIn, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := time.ParseInLocation(model.DateLayout, req.CheckOut, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}

	b, err := h.Bookings.CreateBooking(c.Request().Context(), req.RoomTypeID, checkIn, checkOut, req.Quantity, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}

	if d, derr := h.Bookings.GetBookingForUser(c.Request().Context(), b.ID, currentUsername(c)); derr == nil {
		publishBookingEvent(queue.EventBookingCreated, d)
	}
	return c.JSON(http.StatusCreated, viewBooking(b))
}

// List handles GET /bookings: the actor's own bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	ds, err := h.Bookings.ListBookingsForUser(c.Request().Context(), currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": ds})
}

// Get handles GET /bookings/:id for the booking's own user.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Bookings.GetBookingForUser(c.Request().Context(), id, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Cancel handles POST /bookings/:id/cancel.  Self-service cancellation
// is only allowed strictly before the check-in date.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Bookings.CancelBooking(c.Request().Context(), id, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	publishBookingEvent(queue.EventBookingCancelled, d)
	return c.JSON(http.StatusOK, d)
}
