package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// ErrRoomTypeNotFound is returned when a room type lookup fails.
var ErrRoomTypeNotFound = errors.New("room type not found")

// RoomTypeRepo provides CRUD access to the room_types table.  Room
// types are the unit of inventory: their total_rooms column is the
// capacity ceiling the booking ledger checks against.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo constructs a RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

const roomTypeColumns = `id, accommodation_id, name, description, price_per_night_cents, total_rooms, created_at, updated_at`

func scanRoomType(row interface{ Scan(...any) error }) (*model.RoomType, error) {
	var rt model.RoomType
	var desc sql.NullString
	if err := row.Scan(&rt.ID, &rt.AccommodationID, &rt.Name, &desc, &rt.PricePerNightCents, &rt.TotalRooms, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		rt.Description = &d
	}
	return &rt, nil
}

// Create inserts a new room type under an accommodation and reads the
// record back to populate generated fields.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
	const q = `INSERT INTO room_types (accommodation_id, name, description, price_per_night_cents, total_rooms)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.AccommodationID, rt.Name, rt.Description, rt.PricePerNightCents, rt.TotalRooms)
	if err != nil {
		if strings.Contains(err.Error(), "1452") { // missing accommodation FK
			return ErrAccommodationNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)

	got, err := r.GetByID(ctx, rt.ID)
	if err != nil {
		return err
	}
	*rt = *got
	return nil
}

// GetByID retrieves a room type by its ID.  It returns
// ErrRoomTypeNotFound when no row exists.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
	const q = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ?`
	rt, err := scanRoomType(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return rt, nil
}

// Update overwrites the mutable fields (name, description, nightly
// price, total rooms).  The owning accommodation never changes.
func (r *RoomTypeRepo) Update(ctx context.Context, rt *model.RoomType) error {
	const q = `UPDATE room_types
	           SET name = ?, description = ?, price_per_night_cents = ?, total_rooms = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rt.Name, rt.Description, rt.PricePerNightCents, rt.TotalRooms, rt.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}

// Delete removes a room type.  Bookings reference room types with a
// restricting foreign key, so deleting a room type that has bookings
// returns ErrConflict.
func (r *RoomTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM room_types WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}

// ListByAccommodation returns all room types of an accommodation in
// insertion order.
func (r *RoomTypeRepo) ListByAccommodation(ctx context.Context, accommodationID uint64) ([]*model.RoomType, error) {
	const q = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE accommodation_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, accommodationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.RoomType, 0)
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
