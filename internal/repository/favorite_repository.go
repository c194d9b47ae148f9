package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// ErrFavoriteNotFound is returned when a user removes a favorite they
// never added.
var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoriteRepo persists the user→accommodation favorite relation.  A
// UNIQUE key on (user_id, accommodation_id) keeps the relation a set.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo constructs a FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts a favorite.  Adding twice surfaces as ErrConflict; a
// missing accommodation as ErrAccommodationNotFound.
func (r *FavoriteRepo) Add(ctx context.Context, userID, accommodationID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, accommodation_id) VALUES (?, ?)`,
		userID, accommodationID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") { // already favorited
			return ErrConflict
		}
		if strings.Contains(err.Error(), "1452") { // missing accommodation FK
			return ErrAccommodationNotFound
		}
		return err
	}
	return nil
}

// Remove deletes a favorite, reporting ErrFavoriteNotFound when the
// pair was never favorited.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, accommodationID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND accommodation_id = ?`,
		userID, accommodationID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// Exists reports whether the user has favorited the accommodation.
func (r *FavoriteRepo) Exists(ctx context.Context, userID, accommodationID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND accommodation_id = ?`,
		userID, accommodationID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByUser returns the accommodations the user has favorited, most
// recently added first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Accommodation, error) {
	const q = `SELECT ` + accommodationColumns + `
	           FROM favorites f
	           JOIN accommodations a ON a.id = f.accommodation_id
	           JOIN users u ON u.id = a.owner_id
	           WHERE f.user_id = ?
	           ORDER BY f.created_at DESC, f.accommodation_id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Accommodation, 0)
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
