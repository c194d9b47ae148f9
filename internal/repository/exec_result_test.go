package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/iliyamo/lodging-reservation/internal/model"
)

// errRowsAffected is what the stub driver's results fail with.  Some
// drivers cannot report affected rows; the repositories must surface
// that instead of treating the write as a no-op.
var errRowsAffected = errors.New("rows affected unavailable")

type rowsErrDriver struct{}

func (rowsErrDriver) Open(string) (driver.Conn, error) { return rowsErrConn{}, nil }

type rowsErrConn struct{}

func (rowsErrConn) Prepare(string) (driver.Stmt, error) { return rowsErrStmt{}, nil }
func (rowsErrConn) Close() error                        { return nil }
func (rowsErrConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

type rowsErrStmt struct{}

func (rowsErrStmt) Close() error  { return nil }
func (rowsErrStmt) NumInput() int { return -1 }
func (rowsErrStmt) Exec([]driver.Value) (driver.Result, error) {
	return rowsErrResult{}, nil
}
func (rowsErrStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("unexpected query")
}

type rowsErrResult struct{}

func (rowsErrResult) LastInsertId() (int64, error) { return 0, nil }
func (rowsErrResult) RowsAffected() (int64, error) { return 0, errRowsAffected }

func init() {
	sql.Register("rows-affected-err", rowsErrDriver{})
}

func TestWritesPropagateRowsAffectedError(t *testing.T) {
	db, err := sql.Open("rows-affected-err", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"booking status transition", func() error {
			return NewBookingRepo(db).UpdateStatus(ctx, 1, model.StatusPending, model.StatusConfirmed)
		}},
		{"accommodation update", func() error {
			return NewAccommodationRepo(db).Update(ctx, &model.Accommodation{ID: 1, Name: "Inn", Location: "Lisbon"})
		}},
		{"accommodation delete", func() error {
			return NewAccommodationRepo(db).Delete(ctx, 1)
		}},
		{"room type update", func() error {
			return NewRoomTypeRepo(db).Update(ctx, &model.RoomType{ID: 1, Name: "Double"})
		}},
		{"room type delete", func() error {
			return NewRoomTypeRepo(db).Delete(ctx, 1)
		}},
		{"favorite remove", func() error {
			return NewFavoriteRepo(db).Remove(ctx, 1, 1)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, errRowsAffected) {
				t.Errorf("err = %v, want the driver's RowsAffected error", err)
			}
		})
	}
}
