// Package service implements the reservation engine: input validation,
// the inventory capacity decision, deterministic pricing, the booking
// status state machine and the ownership guard.  Persistence is
// consumed through the store interfaces in stores.go; handlers
// translate the errors defined here into HTTP responses.
package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval is returned when check-in or check-out is missing
// or check-out is not strictly after check-in.
var ErrInvalidInterval = errors.New("check-out must be after check-in")

// ErrInvalidQuantity is returned when the requested quantity is below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ErrForbidden is returned when the acting user lacks the ownership
// required for an operation.  Admin code paths never produce it.
var ErrForbidden = errors.New("forbidden")

// State-machine precondition violations.  Each one names the exact
// precondition that failed so callers can report it without inspecting
// booking state themselves.
var (
	ErrAlreadyCancelled       = errors.New("booking is already cancelled")
	ErrAlreadyConfirmed       = errors.New("booking is already confirmed")
	ErrCancelledCannotConfirm = errors.New("cancelled booking cannot be confirmed")
	ErrTooLateToCancel        = errors.New("booking can no longer be cancelled on or after check-in")
)

// ErrInvalidRating is returned when a review rating falls outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ErrAlreadyReviewed is returned when a user reviews the same
// accommodation twice.
var ErrAlreadyReviewed = errors.New("accommodation already reviewed by this user")

// Favorite relation violations.
var (
	ErrAlreadyFavorited = errors.New("accommodation already favorited")
	ErrNotFavorited     = errors.New("accommodation is not favorited")
)

// InsufficientInventoryError reports a failed capacity check.  Remaining
// is max(totalRooms - alreadyBooked, 0) for the requested interval, so
// the caller can tell the user how many rooms are actually left.
type InsufficientInventoryError struct {
	Remaining uint32
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory: %d room(s) remaining for the requested dates", e.Remaining)
}
