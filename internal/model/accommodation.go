package model

import "time"

// Accommodation represents a lodging property owned by a user.  An
// accommodation groups one or more room types.  Each accommodation
// belongs to exactly one owner; ownership is fixed at creation and
// never transfers.  This struct corresponds to a row in the
// `accommodations` table.
//
// Fields:
//  ID                 – primary key identifier.
//  OwnerID            – user ID of the accommodation owner.
//  OwnerUsername      – username of the owner, populated by joined reads.
//  Name               – display name of the property.
//  Location           – free-form location text used for keyword search.
//  Description        – optional description.
//  PricePerNightCents – informational base price in cents; room types carry
//                       the price actually charged.
//  CreatedAt          – timestamp when the accommodation was created.
//  UpdatedAt          – timestamp of last update.
type Accommodation struct {
    ID                 uint64    `json:"id"`                    // accommodations.id
    OwnerID            uint64    `json:"owner_id"`              // accommodations.owner_id
    OwnerUsername      string    `json:"owner_username,omitempty"` // users.username via join
    Name               string    `json:"name"`                  // accommodations.name
    Location           string    `json:"location"`              // accommodations.location
    Description        *string   `json:"description,omitempty"` // accommodations.description (nullable)
    PricePerNightCents int64     `json:"price_per_night_cents"` // accommodations.price_per_night_cents
    CreatedAt          time.Time `json:"created_at"`            // accommodations.created_at
    UpdatedAt          time.Time `json:"updated_at"`            // accommodations.updated_at
}
