package handler

import (
	"context"
	"time"

	"github.com/iliyamo/lodging-reservation/internal/model"
	"github.com/iliyamo/lodging-reservation/internal/queue"
)

// publishBookingEvent emits a lifecycle event for a booking detail.
// Publishing is best-effort: the broker must never fail the request
// that triggered the transition, so errors are logged by the publisher
// and dropped here.
func publishBookingEvent(event string, d *model.BookingDetail) {
	ev := queue.BookingEvent{
		Event:             event,
		BookingID:         d.ID,
		Reference:         d.Reference,
		UserID:            d.UserID,
		Username:          d.Username,
		RoomTypeID:        d.RoomTypeID,
		RoomTypeName:      d.RoomTypeName,
		AccommodationID:   d.AccommodationID,
		AccommodationName: d.AccommodationName,
		Location:          d.Location,
		CheckIn:           d.CheckIn,
		CheckOut:          d.CheckOut,
		Quantity:          d.Quantity,
		TotalPriceCents:   d.TotalPriceCents,
		Status:            d.Status,
		OccurredAt:        time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue.PublishBookingEvent(ctx, ev)
	}()
}
