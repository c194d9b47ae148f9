package model

import "time"

// Review is a guest rating of an accommodation.  Each user may review
// an accommodation at most once; the rating is an integer number of
// stars from 1 to 5.  This struct corresponds to a row in the
// `reviews` table.
type Review struct {
	ID              uint64    `json:"id"`                 // reviews.id
	AccommodationID uint64    `json:"accommodation_id"`   // reviews.accommodation_id
	UserID          uint64    `json:"user_id"`            // reviews.user_id
	Username        string    `json:"username,omitempty"` // users.username via join
	Rating          uint8     `json:"rating"`             // reviews.rating (1..5)
	Comment         *string   `json:"comment,omitempty"`  // reviews.comment (nullable)
	CreatedAt       time.Time `json:"created_at"`         // reviews.created_at
	UpdatedAt       time.Time `json:"updated_at"`         // reviews.updated_at
}
