// Package repository defines error values that are reused across
// multiple repositories.  These sentinel values allow higher layers
// such as the service and handler packages to distinguish failure
// scenarios with errors.Is instead of string matching.
package repository

import "errors"

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as deleting a room type that still has
// bookings, or a status transition raced by a concurrent update.
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
