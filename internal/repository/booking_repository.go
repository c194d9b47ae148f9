package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/lodging-reservation/internal/model"
	"github.com/iliyamo/lodging-reservation/internal/utils"
)

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides access to the bookings table and the inventory
// ledger built on top of it.  The ledger treats booking intervals as
// half-open: a booking checking out on day X does not occupy day X, so
// another booking may check in the same day.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateLocked runs the read-then-decide-then-write sequence of a
// booking creation under an exclusive per-room-type row lock.  Inside
// one transaction it locks the room_types row (SELECT ... FOR UPDATE),
// sums the quantities of non-cancelled bookings overlapping
// [checkIn, checkOut), and hands both to decide.  When decide returns a
// booking it is inserted and the transaction committed; when it returns
// an error the transaction rolls back and the error is propagated
// unchanged.  Two concurrent calls for the same room type serialize on
// the row lock, so the sum each one reads stays consistent with its
// insert.  Returns ErrRoomTypeNotFound when the room type is absent.
func (r *BookingRepo) CreateLocked(ctx context.Context, roomTypeID uint64, checkIn, checkOut time.Time, decide func(rt *model.RoomType, alreadyBooked uint32) (*model.Booking, error)) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const lockQ = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ? FOR UPDATE`
	rt, err := scanRoomType(tx.QueryRowContext(ctx, lockQ, roomTypeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}

	// Overlap predicate: existing.check_in < new.check_out AND
	// existing.check_out > new.check_in.  Touching intervals do not
	// overlap, which allows same-day turnover.
	const sumQ = `SELECT COALESCE(SUM(quantity), 0)
	              FROM bookings
	              WHERE room_type_id = ?
	                AND check_in < ?
	                AND check_out > ?
	                AND status != 'CANCELLED'`
	var alreadyBooked uint32
	if err := tx.QueryRowContext(ctx, sumQ, roomTypeID, checkOut, checkIn).Scan(&alreadyBooked); err != nil {
		return nil, err
	}

	b, err := decide(rt, alreadyBooked)
	if err != nil {
		return nil, err
	}

	const insQ = `INSERT INTO bookings (reference, room_type_id, user_id, check_in, check_out, quantity, total_price_cents, status)
	              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insQ, b.Reference, b.RoomTypeID, b.UserID, b.CheckIn, b.CheckOut, b.Quantity, b.TotalPriceCents, b.Status)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	b.ID = uint64(id)

	// Read the row back so the server-assigned creation timestamp is set.
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// detailQuery joins a booking with its full entity chain in one fetch:
// booking -> user -> room type -> accommodation -> owner.
const detailQuery = `SELECT b.id, b.reference, b.room_type_id, rt.name,
                            acc.id, acc.name, acc.location, o.username,
                            b.user_id, u.username,
                            b.check_in, b.check_out, b.quantity, b.total_price_cents, b.status, b.created_at
                     FROM bookings b
                     JOIN users u ON u.id = b.user_id
                     JOIN room_types rt ON rt.id = b.room_type_id
                     JOIN accommodations acc ON acc.id = rt.accommodation_id
                     JOIN users o ON o.id = acc.owner_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (*model.BookingDetail, error) {
	var d model.BookingDetail
	var checkIn, checkOut time.Time
	if err := row.Scan(
		&d.ID, &d.Reference, &d.RoomTypeID, &d.RoomTypeName,
		&d.AccommodationID, &d.AccommodationName, &d.Location, &d.OwnerUsername,
		&d.UserID, &d.Username,
		&checkIn, &checkOut, &d.Quantity, &d.TotalPriceCents, &d.Status, &d.CreatedAt,
	); err != nil {
		return nil, err
	}
	d.CheckIn = checkIn.UTC().Format(model.DateLayout)
	d.CheckOut = checkOut.UTC().Format(model.DateLayout)
	d.TotalPrice = utils.FormatCents(d.TotalPriceCents)
	return &d, nil
}

// GetDetail returns a single booking joined with its entity chain.  It
// returns ErrBookingNotFound when the booking does not exist.  The
// engine performs its ownership and status checks against the returned
// detail, so this read always reflects the current persisted owner.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, detailQuery+` WHERE b.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return d, nil
}

// UpdateStatus transitions a booking from one status to another.  The
// WHERE clause carries the expected current status so that a raced
// transition never double-applies: when no row matches, the method
// reports ErrBookingNotFound for a missing booking and ErrConflict for
// a booking whose status changed underneath the caller.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = ?`,
		to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var current string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	return ErrConflict
}

// ListByUser returns all bookings made by the given username, newest
// first.
func (r *BookingRepo) ListByUser(ctx context.Context, username string) ([]*model.BookingDetail, error) {
	return r.listDetails(ctx, detailQuery+` WHERE u.username = ? ORDER BY b.created_at DESC`, username)
}

// ListByOwner returns all bookings placed against accommodations owned
// by the given username, newest first.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerUsername string) ([]*model.BookingDetail, error) {
	return r.listDetails(ctx, detailQuery+` WHERE o.username = ? ORDER BY b.created_at DESC`, ownerUsername)
}

// ListAll returns every booking in the system, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]*model.BookingDetail, error) {
	return r.listDetails(ctx, detailQuery+` ORDER BY b.created_at DESC`)
}

func (r *BookingRepo) listDetails(ctx context.Context, q string, args ...any) ([]*model.BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
