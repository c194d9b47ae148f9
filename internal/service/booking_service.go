package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// BookingService is the reservation engine.  It validates input, runs
// the capacity decision under the store's per-room-type lock, computes
// prices and enforces the booking state machine:
//
//	CreateBooking           -> PENDING
//	Confirm (owner|admin)   PENDING   -> CONFIRMED
//	Cancel  (self|owner|admin) PENDING|CONFIRMED -> CANCELLED (terminal)
//
// Every mutating operation takes the actor's username; the engine
// authorizes but never authenticates.
type BookingService struct {
	users    UserStore
	bookings BookingStore
	now      func() time.Time
}

// NewBookingService constructs a BookingService.  All stores must be
// non-nil.
func NewBookingService(users UserStore, bookings BookingStore) *BookingService {
	if users == nil || bookings == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{
		users:    users,
		bookings: bookings,
		now:      time.Now,
	}
}

// CreateBooking reserves quantity rooms of a room type for the
// half-open interval [checkIn, checkOut) on behalf of actorUsername.
// The capacity check and the insert run under one exclusive
// per-room-type lock inside the store, so concurrent requests for the
// same room type can never both pass the check and oversell.  The
// booking is persisted in PENDING status with a derived, immutable
// total price.
func (s *BookingService) CreateBooking(ctx context.Context, roomTypeID uint64, checkIn, checkOut time.Time, quantity uint32, actorUsername string) (*model.Booking, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !dateOnly(checkOut).After(dateOnly(checkIn)) {
		return nil, ErrInvalidInterval
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	user, err := s.users.GetByUsername(ctx, actorUsername)
	if err != nil {
		return nil, err
	}

	return s.bookings.CreateLocked(ctx, roomTypeID, dateOnly(checkIn), dateOnly(checkOut), func(rt *model.RoomType, alreadyBooked uint32) (*model.Booking, error) {
		// Widen before adding: the sum of two uint32 quantities can wrap.
		if uint64(alreadyBooked)+uint64(quantity) > uint64(rt.TotalRooms) {
			remaining := uint32(0)
			if rt.TotalRooms > alreadyBooked {
				remaining = rt.TotalRooms - alreadyBooked
			}
			return nil, &InsufficientInventoryError{Remaining: remaining}
		}
		nights := Nights(checkIn, checkOut)
		return &model.Booking{
			Reference:       uuid.NewString(),
			RoomTypeID:      rt.ID,
			UserID:          user.ID,
			CheckIn:         dateOnly(checkIn),
			CheckOut:        dateOnly(checkOut),
			Quantity:        quantity,
			TotalPriceCents: TotalPriceCents(rt.PricePerNightCents, nights, quantity),
			Status:          model.StatusPending,
		}, nil
	})
}

// CancelBooking is the self-service cancellation path.  The actor must
// be the booking's user, the booking must not already be cancelled, and
// today must still be before the check-in date; a stay that has begun
// (or begins today) can only be cancelled by the owner or an admin.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uint64, actorUsername string) (*model.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if d.Username != actorUsername {
		return nil, ErrForbidden
	}
	if d.Status == model.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	checkIn, err := time.ParseInLocation(model.DateLayout, d.CheckIn, time.UTC)
	if err != nil {
		return nil, err
	}
	if !dateOnly(s.now()).Before(checkIn) {
		return nil, ErrTooLateToCancel
	}
	return s.transition(ctx, d, model.StatusCancelled)
}

// CancelBookingAsOwner cancels a booking on behalf of the owner of the
// booked accommodation.  Owners may cancel regardless of dates, even
// same-day or past bookings, but never twice.
func (s *BookingService) CancelBookingAsOwner(ctx context.Context, bookingID uint64, ownerUsername string) (*model.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if d.OwnerUsername != ownerUsername {
		return nil, ErrForbidden
	}
	if d.Status == model.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	return s.transition(ctx, d, model.StatusCancelled)
}

// CancelBookingAsAdmin cancels any booking.  Admins bypass ownership
// checks entirely; only the state machine still applies.
func (s *BookingService) CancelBookingAsAdmin(ctx context.Context, bookingID uint64) (*model.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if d.Status == model.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	return s.transition(ctx, d, model.StatusCancelled)
}

// ConfirmBookingAsOwner confirms a pending booking when the actor owns
// the booked accommodation.
func (s *BookingService) ConfirmBookingAsOwner(ctx context.Context, bookingID uint64, ownerUsername string) (*model.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if d.OwnerUsername != ownerUsername {
		return nil, ErrForbidden
	}
	return s.confirm(ctx, d)
}

// ConfirmBookingAsAdmin confirms any pending booking without an
// ownership check.
func (s *BookingService) ConfirmBookingAsAdmin(ctx context.Context, bookingID uint64) (*model.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.confirm(ctx, d)
}

func (s *BookingService) confirm(ctx context.Context, d *model.BookingDetail) (*model.BookingDetail, error) {
	switch d.Status {
	case model.StatusConfirmed:
		return nil, ErrAlreadyConfirmed
	case model.StatusCancelled:
		return nil, ErrCancelledCannotConfirm
	}
	return s.transition(ctx, d, model.StatusConfirmed)
}

// transition applies a status change guarded by the status the engine
// just observed, so a concurrent transition surfaces as a conflict from
// the store instead of double-applying.
func (s *BookingService) transition(ctx context.Context, d *model.BookingDetail, to string) (*model.BookingDetail, error) {
	if err := s.bookings.UpdateStatus(ctx, d.ID, d.Status, to); err != nil {
		return nil, err
	}
	d.Status = to
	return d, nil
}

// GetBookingForUser returns a single booking if it belongs to the
// actor.
func (s *BookingService) GetBookingForUser(ctx context.Context, bookingID uint64, actorUsername string) (*model.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if d.Username != actorUsername {
		return nil, ErrForbidden
	}
	return d, nil
}

// ListBookingsForUser returns the actor's own bookings.
func (s *BookingService) ListBookingsForUser(ctx context.Context, actorUsername string) ([]*model.BookingDetail, error) {
	return s.bookings.ListByUser(ctx, actorUsername)
}

// ListBookingsForOwner returns bookings placed against accommodations
// the actor owns, resolved transitively through room type and
// accommodation in one fetch.
func (s *BookingService) ListBookingsForOwner(ctx context.Context, ownerUsername string) ([]*model.BookingDetail, error) {
	return s.bookings.ListByOwner(ctx, ownerUsername)
}

// ListAllBookings returns every booking.  Routing restricts it to
// admins.
func (s *BookingService) ListAllBookings(ctx context.Context) ([]*model.BookingDetail, error) {
	return s.bookings.ListAll(ctx)
}
