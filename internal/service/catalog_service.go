package service

import (
	"context"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// CatalogService manages accommodations and their room types.  Every
// owner-scoped mutation passes through CheckAccommodationOwnership
// against the currently persisted owner; the ...AsAdmin variants skip
// the guard by design, so an admin never needs fake ownership of the
// rows it manages.
type CatalogService struct {
	users          UserStore
	accommodations AccommodationStore
	roomTypes      RoomTypeStore
}

// NewCatalogService constructs a CatalogService.  All stores must be
// non-nil.
func NewCatalogService(users UserStore, accommodations AccommodationStore, roomTypes RoomTypeStore) *CatalogService {
	if users == nil || accommodations == nil || roomTypes == nil {
		panic("nil store passed to NewCatalogService")
	}
	return &CatalogService{users: users, accommodations: accommodations, roomTypes: roomTypes}
}

// CheckAccommodationOwnership asserts that actorUsername owns the
// accommodation.  It reads the current owner from the store on every
// call; ownership never transfers, but the guard must not trust a
// cached value.  Returns ErrForbidden on mismatch and the store's
// not-found error when the accommodation does not exist.
func (s *CatalogService) CheckAccommodationOwnership(ctx context.Context, accommodationID uint64, actorUsername string) error {
	a, err := s.accommodations.GetByID(ctx, accommodationID)
	if err != nil {
		return err
	}
	if a.OwnerUsername != actorUsername {
		return ErrForbidden
	}
	return nil
}

// --- accommodations ---

// CreateAccommodation creates an accommodation owned by ownerUsername.
// Owners create for themselves; the admin surface passes an explicit
// owner username instead.
func (s *CatalogService) CreateAccommodation(ctx context.Context, a *model.Accommodation, ownerUsername string) (*model.Accommodation, error) {
	owner, err := s.users.GetByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}
	a.OwnerID = owner.ID
	if err := s.accommodations.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAccommodation overwrites the mutable fields after the ownership
// guard passes.
func (s *CatalogService) UpdateAccommodation(ctx context.Context, id uint64, upd *model.Accommodation, actorUsername string) (*model.Accommodation, error) {
	if err := s.CheckAccommodationOwnership(ctx, id, actorUsername); err != nil {
		return nil, err
	}
	return s.updateAccommodation(ctx, id, upd)
}

// UpdateAccommodationAsAdmin updates without an ownership check.
func (s *CatalogService) UpdateAccommodationAsAdmin(ctx context.Context, id uint64, upd *model.Accommodation) (*model.Accommodation, error) {
	return s.updateAccommodation(ctx, id, upd)
}

func (s *CatalogService) updateAccommodation(ctx context.Context, id uint64, upd *model.Accommodation) (*model.Accommodation, error) {
	existing, err := s.accommodations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = upd.Name
	existing.Location = upd.Location
	existing.Description = upd.Description
	existing.PricePerNightCents = upd.PricePerNightCents
	if err := s.accommodations.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteAccommodation removes an accommodation and, through the schema
// cascade, its room types.  The ownership guard runs first.
func (s *CatalogService) DeleteAccommodation(ctx context.Context, id uint64, actorUsername string) error {
	if err := s.CheckAccommodationOwnership(ctx, id, actorUsername); err != nil {
		return err
	}
	return s.accommodations.Delete(ctx, id)
}

// DeleteAccommodationAsAdmin deletes without an ownership check.
func (s *CatalogService) DeleteAccommodationAsAdmin(ctx context.Context, id uint64) error {
	return s.accommodations.Delete(ctx, id)
}

// GetAccommodation returns one accommodation with its owner resolved.
func (s *CatalogService) GetAccommodation(ctx context.Context, id uint64) (*model.Accommodation, error) {
	return s.accommodations.GetByID(ctx, id)
}

// ListAccommodations is the public listing: optional keyword filter
// over name/location and a whitelisted sort key.
func (s *CatalogService) ListAccommodations(ctx context.Context, keyword, sortBy string) ([]*model.Accommodation, error) {
	return s.accommodations.ListAll(ctx, keyword, sortBy)
}

// ListAccommodationsForOwner returns the accommodations the actor owns.
func (s *CatalogService) ListAccommodationsForOwner(ctx context.Context, ownerUsername string) ([]*model.Accommodation, error) {
	return s.accommodations.ListByOwner(ctx, ownerUsername)
}

// --- room types ---

// CreateRoomType adds a room type under an accommodation the actor
// owns.
func (s *CatalogService) CreateRoomType(ctx context.Context, accommodationID uint64, rt *model.RoomType, actorUsername string) (*model.RoomType, error) {
	if err := s.CheckAccommodationOwnership(ctx, accommodationID, actorUsername); err != nil {
		return nil, err
	}
	return s.createRoomType(ctx, accommodationID, rt)
}

// CreateRoomTypeAsAdmin adds a room type without an ownership check.
func (s *CatalogService) CreateRoomTypeAsAdmin(ctx context.Context, accommodationID uint64, rt *model.RoomType) (*model.RoomType, error) {
	if _, err := s.accommodations.GetByID(ctx, accommodationID); err != nil {
		return nil, err
	}
	return s.createRoomType(ctx, accommodationID, rt)
}

func (s *CatalogService) createRoomType(ctx context.Context, accommodationID uint64, rt *model.RoomType) (*model.RoomType, error) {
	rt.AccommodationID = accommodationID
	if err := s.roomTypes.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// UpdateRoomType overwrites a room type's mutable fields (name,
// description, nightly price, total rooms) after resolving its
// accommodation and checking ownership.  Raising or lowering
// total_rooms takes effect on the next capacity check; existing
// bookings are never touched.
func (s *CatalogService) UpdateRoomType(ctx context.Context, roomTypeID uint64, upd *model.RoomType, actorUsername string) (*model.RoomType, error) {
	existing, err := s.roomTypes.GetByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckAccommodationOwnership(ctx, existing.AccommodationID, actorUsername); err != nil {
		return nil, err
	}
	return s.updateRoomType(ctx, existing, upd)
}

// UpdateRoomTypeAsAdmin updates without an ownership check.
func (s *CatalogService) UpdateRoomTypeAsAdmin(ctx context.Context, roomTypeID uint64, upd *model.RoomType) (*model.RoomType, error) {
	existing, err := s.roomTypes.GetByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	return s.updateRoomType(ctx, existing, upd)
}

func (s *CatalogService) updateRoomType(ctx context.Context, existing, upd *model.RoomType) (*model.RoomType, error) {
	existing.Name = upd.Name
	existing.Description = upd.Description
	existing.PricePerNightCents = upd.PricePerNightCents
	existing.TotalRooms = upd.TotalRooms
	if err := s.roomTypes.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteRoomType removes a room type the actor owns.  The store
// reports a conflict when bookings still reference it.
func (s *CatalogService) DeleteRoomType(ctx context.Context, roomTypeID uint64, actorUsername string) error {
	existing, err := s.roomTypes.GetByID(ctx, roomTypeID)
	if err != nil {
		return err
	}
	if err := s.CheckAccommodationOwnership(ctx, existing.AccommodationID, actorUsername); err != nil {
		return err
	}
	return s.roomTypes.Delete(ctx, roomTypeID)
}

// DeleteRoomTypeAsAdmin deletes without an ownership check.
func (s *CatalogService) DeleteRoomTypeAsAdmin(ctx context.Context, roomTypeID uint64) error {
	if _, err := s.roomTypes.GetByID(ctx, roomTypeID); err != nil {
		return err
	}
	return s.roomTypes.Delete(ctx, roomTypeID)
}

// ListRoomTypes returns the room types of an accommodation.
func (s *CatalogService) ListRoomTypes(ctx context.Context, accommodationID uint64) ([]*model.RoomType, error) {
	if _, err := s.accommodations.GetByID(ctx, accommodationID); err != nil {
		return nil, err
	}
	return s.roomTypes.ListByAccommodation(ctx, accommodationID)
}
