package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// ErrReviewNotFound is returned when a review lookup fails.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepo provides access to the reviews table.  A UNIQUE key on
// (accommodation_id, user_id) enforces one review per user per
// accommodation at the database level.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = `r.id, r.accommodation_id, r.user_id, u.username, r.rating, r.comment, r.created_at, r.updated_at`

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var rv model.Review
	var comment sql.NullString
	if err := row.Scan(&rv.ID, &rv.AccommodationID, &rv.UserID, &rv.Username, &rv.Rating, &comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, err
	}
	if comment.Valid {
		c := comment.String
		rv.Comment = &c
	}
	return &rv, nil
}

// Create inserts a new review and reads it back so generated fields and
// the joined username are populated.  A duplicate (accommodation, user)
// pair surfaces as ErrConflict; a missing accommodation FK as
// ErrAccommodationNotFound.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews (accommodation_id, user_id, rating, comment)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rv.AccommodationID, rv.UserID, rv.Rating, rv.Comment)
	if err != nil {
		if strings.Contains(err.Error(), "1062") { // duplicate (accommodation_id, user_id)
			return ErrConflict
		}
		if strings.Contains(err.Error(), "1452") { // missing accommodation FK
			return ErrAccommodationNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)

	got, err := r.GetByID(ctx, rv.ID)
	if err != nil {
		return err
	}
	*rv = *got
	return nil
}

// GetByID retrieves a review joined with its author's username.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + `
	           FROM reviews r
	           JOIN users u ON u.id = r.user_id
	           WHERE r.id = ?`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

// Exists reports whether the given user has already reviewed the given
// accommodation.
func (r *ReviewRepo) Exists(ctx context.Context, accommodationID, userID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE accommodation_id = ? AND user_id = ?`,
		accommodationID, userID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByAccommodation returns all reviews of an accommodation, newest
// first, each joined with the author's username.
func (r *ReviewRepo) ListByAccommodation(ctx context.Context, accommodationID uint64) ([]*model.Review, error) {
	const q = `SELECT ` + reviewColumns + `
	           FROM reviews r
	           JOIN users u ON u.id = r.user_id
	           WHERE r.accommodation_id = ?
	           ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, accommodationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
