// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair that moves them.
package queue

// Event names carried in BookingEvent.Event.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published on every booking lifecycle transition.  It
// carries enough denormalized detail for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingEvent struct {
	Event             string `json:"event"`
	BookingID         uint64 `json:"booking_id"`
	Reference         string `json:"reference"`
	UserID            uint64 `json:"user_id"`
	Username          string `json:"username"`
	RoomTypeID        uint64 `json:"room_type_id"`
	RoomTypeName      string `json:"room_type_name"`
	AccommodationID   uint64 `json:"accommodation_id"`
	AccommodationName string `json:"accommodation_name"`
	Location          string `json:"location"`
	CheckIn           string `json:"check_in"`
	CheckOut          string `json:"check_out"`
	Quantity          uint32 `json:"quantity"`
	TotalPriceCents   int64  `json:"total_price_cents"`
	Status            string `json:"status"`
	OccurredAt        string `json:"occurred_at"`
}
