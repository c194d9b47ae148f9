package model

import "time"

// Booking status values.  A booking starts PENDING, may be confirmed by
// the accommodation owner or an admin, and may be cancelled by its user
// (before check-in), the owner or an admin.  CANCELLED is terminal.
const (
    StatusPending   = "PENDING"
    StatusConfirmed = "CONFIRMED"
    StatusCancelled = "CANCELLED"
)

// DateLayout is the wire format for calendar dates.  Check-in and
// check-out are pure dates without a time-of-day component; they are
// parsed and stored in UTC.
const DateLayout = "2006-01-02"

// Booking records a user's reservation of one or more rooms of a single
// room type for a half-open date interval [CheckIn, CheckOut).  The
// room type and user references are immutable after creation, as is the
// derived total price.  Quantity counts rooms, not guests.
//
// Fields:
//  ID              – primary key identifier.
//  Reference       – opaque UUID handed to the client for support lookups.
//  RoomTypeID      – room type being booked.
//  UserID          – user who made the booking.
//  CheckIn         – first night (inclusive).
//  CheckOut        – day of departure (exclusive); strictly after CheckIn.
//  Quantity        – number of rooms booked (>= 1).
//  TotalPriceCents – nightly price × nights × quantity, in cents.
//  Status          – PENDING, CONFIRMED or CANCELLED.
//  CreatedAt       – server-assigned creation timestamp.
type Booking struct {
    ID              uint64    `json:"id"`                // bookings.id
    Reference       string    `json:"reference"`         // bookings.reference
    RoomTypeID      uint64    `json:"room_type_id"`      // bookings.room_type_id
    UserID          uint64    `json:"user_id"`           // bookings.user_id
    CheckIn         time.Time `json:"-"`                 // bookings.check_in (DATE)
    CheckOut        time.Time `json:"-"`                 // bookings.check_out (DATE)
    Quantity        uint32    `json:"quantity"`          // bookings.quantity
    TotalPriceCents int64     `json:"total_price_cents"` // bookings.total_price_cents
    Status          string    `json:"status"`            // bookings.status
    CreatedAt       time.Time `json:"created_at"`        // bookings.created_at
}

// BookingDetail is a booking joined with its full entity chain
// (user → room type → accommodation → owner) in a single fetch.  The
// role-scoped listing endpoints return it so that downstream consumers
// never have to dereference the graph themselves.  Dates are rendered
// as calendar-date strings.
type BookingDetail struct {
    ID                uint64    `json:"id"`
    Reference         string    `json:"reference"`
    RoomTypeID        uint64    `json:"room_type_id"`
    RoomTypeName      string    `json:"room_type_name"`
    AccommodationID   uint64    `json:"accommodation_id"`
    AccommodationName string    `json:"accommodation_name"`
    Location          string    `json:"location"`
    OwnerUsername     string    `json:"owner_username"`
    UserID            uint64    `json:"user_id"`
    Username          string    `json:"username"`
    CheckIn           string    `json:"check_in"`
    CheckOut          string    `json:"check_out"`
    Quantity          uint32    `json:"quantity"`
    TotalPriceCents   int64     `json:"total_price_cents"`
    TotalPrice        string    `json:"total_price"`
    Status            string    `json:"status"`
    CreatedAt         time.Time `json:"created_at"`
}
