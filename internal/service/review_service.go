package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// ReviewService handles guest reviews of accommodations: one review
// per user per accommodation, integer ratings from 1 to 5, and the
// aggregate average computed on read rather than persisted.
type ReviewService struct {
	users          UserStore
	accommodations AccommodationStore
	reviews        ReviewStore
}

// NewReviewService constructs a ReviewService.  All stores must be
// non-nil.
func NewReviewService(users UserStore, accommodations AccommodationStore, reviews ReviewStore) *ReviewService {
	if users == nil || accommodations == nil || reviews == nil {
		panic("nil store passed to NewReviewService")
	}
	return &ReviewService{users: users, accommodations: accommodations, reviews: reviews}
}

// AddReview records a review of an accommodation by the actor.  The
// rating must lie in 1..5 and the actor must not have reviewed this
// accommodation before.
func (s *ReviewService) AddReview(ctx context.Context, accommodationID uint64, actorUsername string, rating uint8, comment *string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	user, err := s.users.GetByUsername(ctx, actorUsername)
	if err != nil {
		return nil, err
	}
	if _, err := s.accommodations.GetByID(ctx, accommodationID); err != nil {
		return nil, err
	}
	reviewed, err := s.reviews.Exists(ctx, accommodationID, user.ID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}

	rv := &model.Review{
		AccommodationID: accommodationID,
		UserID:          user.ID,
		Username:        user.Username,
		Rating:          rating,
		Comment:         comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// ReviewSummary bundles an accommodation's reviews with their
// aggregate: the count and the average rating rounded half-up to two
// decimal places ("" when there are no reviews).
type ReviewSummary struct {
	Reviews       []*model.Review
	ReviewCount   int
	AverageRating string
}

// ListReviews returns the reviews of an accommodation together with
// the computed aggregate.
func (s *ReviewService) ListReviews(ctx context.Context, accommodationID uint64) (*ReviewSummary, error) {
	if _, err := s.accommodations.GetByID(ctx, accommodationID); err != nil {
		return nil, err
	}
	rvs, err := s.reviews.ListByAccommodation(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	sum := &ReviewSummary{Reviews: rvs, ReviewCount: len(rvs)}
	if len(rvs) > 0 {
		var total int64
		for _, rv := range rvs {
			total += int64(rv.Rating)
		}
		sum.AverageRating = formatAverage(total, int64(len(rvs)))
	}
	return sum, nil
}

// formatAverage renders total/count as a fixed two-decimal string,
// rounding half-up.
func formatAverage(total, count int64) string {
	hundredths := (total*100*2 + count) / (count * 2)
	return fmt.Sprintf("%d.%02d", hundredths/100, hundredths%100)
}
