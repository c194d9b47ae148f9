package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// ErrAccommodationNotFound is returned when an accommodation lookup fails.
var ErrAccommodationNotFound = errors.New("accommodation not found")

// AccommodationRepo provides methods to create, read, update and delete
// accommodations.  Reads join the owner's username so that the
// ownership guard always sees the current persisted owner.
type AccommodationRepo struct {
	db *sql.DB
}

// NewAccommodationRepo constructs an AccommodationRepo with the given DB handle.
func NewAccommodationRepo(db *sql.DB) *AccommodationRepo {
	return &AccommodationRepo{db: db}
}

const accommodationColumns = `a.id, a.owner_id, u.username, a.name, a.location, a.description, a.price_per_night_cents, a.created_at, a.updated_at`

func scanAccommodation(row interface{ Scan(...any) error }) (*model.Accommodation, error) {
	var a model.Accommodation
	var desc sql.NullString
	if err := row.Scan(&a.ID, &a.OwnerID, &a.OwnerUsername, &a.Name, &a.Location, &desc, &a.PricePerNightCents, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		a.Description = &d
	}
	return &a, nil
}

// Create inserts a new accommodation.  OwnerID, Name and Location must
// be set.  After insert the record is read back so generated fields are
// populated.
func (r *AccommodationRepo) Create(ctx context.Context, a *model.Accommodation) error {
	const qInsert = `INSERT INTO accommodations (owner_id, name, location, description, price_per_night_cents)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, a.OwnerID, a.Name, a.Location, a.Description, a.PricePerNightCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	got, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *got
	return nil
}

// GetByID retrieves an accommodation together with its owner's
// username.  It returns ErrAccommodationNotFound when no row exists.
func (r *AccommodationRepo) GetByID(ctx context.Context, id uint64) (*model.Accommodation, error) {
	const q = `SELECT ` + accommodationColumns + `
	           FROM accommodations a
	           JOIN users u ON u.id = a.owner_id
	           WHERE a.id = ?`
	a, err := scanAccommodation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccommodationNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update overwrites the mutable fields (name, location, description,
// nightly price).  Owner and ID never change.  Returns
// ErrAccommodationNotFound when the row does not exist.
func (r *AccommodationRepo) Update(ctx context.Context, a *model.Accommodation) error {
	const q = `UPDATE accommodations
	           SET name = ?, location = ?, description = ?, price_per_night_cents = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Location, a.Description, a.PricePerNightCents, a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAccommodationNotFound
	}
	return nil
}

// Delete removes an accommodation.  Room types are removed by the
// ON DELETE CASCADE foreign key; bookings referencing those room types
// restrict the delete, which surfaces as ErrConflict.
func (r *AccommodationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accommodations WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") { // FK restriction from bookings
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAccommodationNotFound
	}
	return nil
}

// sortClauses whitelists the public listing sort keys.  Anything not in
// the map falls back to insertion order.
var sortClauses = map[string]string{
	"price_asc":  "a.price_per_night_cents ASC",
	"price_desc": "a.price_per_night_cents DESC",
	"name_asc":   "a.name ASC",
	"name_desc":  "a.name DESC",
}

// ListAll returns accommodations for the public listing.  When keyword
// is non-empty, only rows whose name or location contains it
// (case-insensitive) are returned.  sortBy selects one of the
// whitelisted orderings.
func (r *AccommodationRepo) ListAll(ctx context.Context, keyword, sortBy string) ([]*model.Accommodation, error) {
	q := `SELECT ` + accommodationColumns + `
	      FROM accommodations a
	      JOIN users u ON u.id = a.owner_id`
	var args []any
	if kw := strings.TrimSpace(keyword); kw != "" {
		q += ` WHERE LOWER(a.name) LIKE ? OR LOWER(a.location) LIKE ?`
		pat := "%" + strings.ToLower(kw) + "%"
		args = append(args, pat, pat)
	}
	if clause, ok := sortClauses[strings.ToLower(strings.TrimSpace(sortBy))]; ok {
		q += ` ORDER BY ` + clause
	} else {
		q += ` ORDER BY a.id`
	}
	return r.list(ctx, q, args...)
}

// ListByOwner returns all accommodations owned by the given username.
func (r *AccommodationRepo) ListByOwner(ctx context.Context, ownerUsername string) ([]*model.Accommodation, error) {
	const q = `SELECT ` + accommodationColumns + `
	           FROM accommodations a
	           JOIN users u ON u.id = a.owner_id
	           WHERE u.username = ?
	           ORDER BY a.id`
	return r.list(ctx, q, ownerUsername)
}

func (r *AccommodationRepo) list(ctx context.Context, q string, args ...any) ([]*model.Accommodation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
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
