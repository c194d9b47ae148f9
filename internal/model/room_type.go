package model

import "time"

// RoomType describes a bookable room category within an accommodation,
// for example "standard double" or "deluxe suite".  Each room type has
// its own nightly price and a finite number of physical rooms.
// TotalRooms is the hard capacity ceiling for every calendar day: the
// sum of quantities of non-cancelled bookings covering a day may never
// exceed it.  Room types are deleted together with their accommodation.
//
// Fields:
//  ID                 – primary key identifier.
//  AccommodationID    – accommodation this room type belongs to.
//  Name               – room type name, unique per accommodation.
//  Description        – optional description.
//  PricePerNightCents – nightly price in cents charged per room.
//  TotalRooms         – number of physical rooms of this type (>= 0).
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type RoomType struct {
    ID                 uint64    `json:"id"`                    // room_types.id
    AccommodationID    uint64    `json:"accommodation_id"`      // room_types.accommodation_id
    Name               string    `json:"name"`                  // room_types.name
    Description        *string   `json:"description,omitempty"` // room_types.description (nullable)
    PricePerNightCents int64     `json:"price_per_night_cents"` // room_types.price_per_night_cents
    TotalRooms         uint32    `json:"total_rooms"`           // room_types.total_rooms
    CreatedAt          time.Time `json:"created_at"`            // room_types.created_at
    UpdatedAt          time.Time `json:"updated_at"`            // room_types.updated_at
}
