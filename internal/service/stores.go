package service

import (
	"context"
	"time"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// The engine consumes persistence through these interfaces.  The MySQL
// implementations live in internal/repository; tests substitute
// in-memory fakes.  Not-found conditions are reported with the
// repository sentinel errors (repository.ErrUserNotFound and friends),
// which the engine passes through unchanged.

// UserStore resolves actor identities.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// AccommodationStore persists accommodations.
type AccommodationStore interface {
	Create(ctx context.Context, a *model.Accommodation) error
	GetByID(ctx context.Context, id uint64) (*model.Accommodation, error)
	Update(ctx context.Context, a *model.Accommodation) error
	Delete(ctx context.Context, id uint64) error
	ListAll(ctx context.Context, keyword, sortBy string) ([]*model.Accommodation, error)
	ListByOwner(ctx context.Context, ownerUsername string) ([]*model.Accommodation, error)
}

// RoomTypeStore persists room types.
type RoomTypeStore interface {
	Create(ctx context.Context, rt *model.RoomType) error
	GetByID(ctx context.Context, id uint64) (*model.RoomType, error)
	Update(ctx context.Context, rt *model.RoomType) error
	Delete(ctx context.Context, id uint64) error
	ListByAccommodation(ctx context.Context, accommodationID uint64) ([]*model.RoomType, error)
}

// ReviewStore persists accommodation reviews.
type ReviewStore interface {
	Create(ctx context.Context, rv *model.Review) error
	Exists(ctx context.Context, accommodationID, userID uint64) (bool, error)
	ListByAccommodation(ctx context.Context, accommodationID uint64) ([]*model.Review, error)
}

// FavoriteStore persists the user→accommodation favorite relation.
type FavoriteStore interface {
	Add(ctx context.Context, userID, accommodationID uint64) error
	Remove(ctx context.Context, userID, accommodationID uint64) error
	Exists(ctx context.Context, userID, accommodationID uint64) (bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Accommodation, error)
}

// BookingStore persists bookings and owns the serialization primitive
// for booking creation.  CreateLocked must execute decide with the room
// type and the overlap sum read under an exclusive per-room-type lock,
// and must keep that lock until the returned booking is durably
// inserted (or the decision error aborts the write).  The invariant the
// engine relies on is atomicity of the whole sequence, not any
// particular locking primitive.
type BookingStore interface {
	CreateLocked(ctx context.Context, roomTypeID uint64, checkIn, checkOut time.Time, decide func(rt *model.RoomType, alreadyBooked uint32) (*model.Booking, error)) (*model.Booking, error)
	GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error)
	UpdateStatus(ctx context.Context, id uint64, from, to string) error
	ListByUser(ctx context.Context, username string) ([]*model.BookingDetail, error)
	ListByOwner(ctx context.Context, ownerUsername string) ([]*model.BookingDetail, error)
	ListAll(ctx context.Context) ([]*model.BookingDetail, error)
}
