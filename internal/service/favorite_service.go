package service

import (
	"context"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// FavoriteService maintains each user's set of favorited
// accommodations.  The relation is a plain set: adding twice and
// removing what was never added are reported as errors, and Toggle
// flips membership for callers that do not track state.
type FavoriteService struct {
	users          UserStore
	accommodations AccommodationStore
	favorites      FavoriteStore
}

// NewFavoriteService constructs a FavoriteService.  All stores must be
// non-nil.
func NewFavoriteService(users UserStore, accommodations AccommodationStore, favorites FavoriteStore) *FavoriteService {
	if users == nil || accommodations == nil || favorites == nil {
		panic("nil store passed to NewFavoriteService")
	}
	return &FavoriteService{users: users, accommodations: accommodations, favorites: favorites}
}

// AddFavorite adds an accommodation to the actor's favorites.
func (s *FavoriteService) AddFavorite(ctx context.Context, actorUsername string, accommodationID uint64) error {
	user, err := s.users.GetByUsername(ctx, actorUsername)
	if err != nil {
		return err
	}
	if _, err := s.accommodations.GetByID(ctx, accommodationID); err != nil {
		return err
	}
	favorited, err := s.favorites.Exists(ctx, user.ID, accommodationID)
	if err != nil {
		return err
	}
	if favorited {
		return ErrAlreadyFavorited
	}
	return s.favorites.Add(ctx, user.ID, accommodationID)
}

// RemoveFavorite removes an accommodation from the actor's favorites.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, actorUsername string, accommodationID uint64) error {
	user, err := s.users.GetByUsername(ctx, actorUsername)
	if err != nil {
		return err
	}
	favorited, err := s.favorites.Exists(ctx, user.ID, accommodationID)
	if err != nil {
		return err
	}
	if !favorited {
		return ErrNotFavorited
	}
	return s.favorites.Remove(ctx, user.ID, accommodationID)
}

// ToggleFavorite flips the favorite state and reports the new one:
// true when the accommodation is now favorited.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, actorUsername string, accommodationID uint64) (bool, error) {
	user, err := s.users.GetByUsername(ctx, actorUsername)
	if err != nil {
		return false, err
	}
	favorited, err := s.favorites.Exists(ctx, user.ID, accommodationID)
	if err != nil {
		return false, err
	}
	if favorited {
		return false, s.favorites.Remove(ctx, user.ID, accommodationID)
	}
	if _, err := s.accommodations.GetByID(ctx, accommodationID); err != nil {
		return false, err
	}
	return true, s.favorites.Add(ctx, user.ID, accommodationID)
}

// IsFavorited reports whether the actor has favorited the accommodation.
func (s *FavoriteService) IsFavorited(ctx context.Context, actorUsername string, accommodationID uint64) (bool, error) {
	user, err := s.users.GetByUsername(ctx, actorUsername)
	if err != nil {
		return false, err
	}
	return s.favorites.Exists(ctx, user.ID, accommodationID)
}

// ListFavorites returns the actor's favorited accommodations.
func (s *FavoriteService) ListFavorites(ctx context.Context, actorUsername string) ([]*model.Accommodation, error) {
	user, err := s.users.GetByUsername(ctx, actorUsername)
	if err != nil {
		return nil, err
	}
	return s.favorites.ListByUser(ctx, user.ID)
}
