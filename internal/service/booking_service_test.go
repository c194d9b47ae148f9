package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/lodging-reservation/internal/model"
	"github.com/iliyamo/lodging-reservation/internal/repository"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// bookingEnv wires a BookingService against a seeded memStore:
// alice (USER), carol (USER), bob (OWNER) with accommodation 10
// "Seaside Inn", room type 1 (5 rooms at 1000.00 per night).
type bookingEnv struct {
	store *memStore
	svc   *BookingService
}

func newBookingEnv(t *testing.T) *bookingEnv {
	t.Helper()
	store := newMemStore()
	store.addUser(1, "alice", model.RoleUser)
	store.addUser(2, "carol", model.RoleUser)
	bob := store.addUser(3, "bob", model.RoleOwner)
	store.addAccommodation(10, bob, "Seaside Inn", "Lisbon")
	store.addRoomType(1, 10, "Double", 100000, 5)
	return &bookingEnv{store: store, svc: NewBookingService(store, store)}
}

func TestCreateBookingComputesTotalPrice(t *testing.T) {
	env := newBookingEnv(t)
	env.store.addRoomType(2, 10, "Suite", 200000, 5)

	// 3 nights x 2 rooms at 2000.00 = 12000.00 exactly.
	b, err := env.svc.CreateBooking(context.Background(), 2, date(2026, time.June, 1), date(2026, time.June, 4), 2, "alice")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.TotalPriceCents != 1200000 {
		t.Errorf("TotalPriceCents = %d, want 1200000", b.TotalPriceCents)
	}
	if b.Status != model.StatusPending {
		t.Errorf("Status = %q, want %q", b.Status, model.StatusPending)
	}
	if b.Reference == "" {
		t.Error("Reference is empty")
	}
	if b.UserID != 1 {
		t.Errorf("UserID = %d, want 1", b.UserID)
	}
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	jun1 := date(2026, time.June, 1)
	jun4 := date(2026, time.June, 4)

	cases := []struct {
		name     string
		in, out  time.Time
		quantity uint32
		roomType uint64
		user     string
		wantErr  error
	}{
		{"equal dates", jun1, jun1, 1, 1, "alice", ErrInvalidInterval},
		{"reversed dates", jun4, jun1, 1, 1, "alice", ErrInvalidInterval},
		{"zero check-in", time.Time{}, jun4, 1, 1, "alice", ErrInvalidInterval},
		{"zero quantity", jun1, jun4, 0, 1, "alice", ErrInvalidQuantity},
		{"unknown room type", jun1, jun4, 1, 99, "alice", repository.ErrRoomTypeNotFound},
		{"unknown user", jun1, jun4, 1, 1, "mallory", repository.ErrUserNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.CreateBooking(ctx, tc.roomType, tc.in, tc.out, tc.quantity, tc.user)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateBookingInsufficientInventory(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	jun1, jun4 := date(2026, time.June, 1), date(2026, time.June, 4)

	if _, err := env.svc.CreateBooking(ctx, 1, jun1, jun4, 3, "alice"); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := env.svc.CreateBooking(ctx, 1, jun1, jun4, 3, "carol")
	var insufficient *InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientInventoryError", err)
	}
	if insufficient.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", insufficient.Remaining)
	}

	// Retrying with the reported remainder succeeds.
	b, err := env.svc.CreateBooking(ctx, 1, jun1, jun4, 2, "carol")
	if err != nil {
		t.Fatalf("retry with quantity 2: %v", err)
	}
	if b.TotalPriceCents != 600000 {
		t.Errorf("TotalPriceCents = %d, want 600000", b.TotalPriceCents)
	}
}

func TestCreateBookingQuantityOverflowRejected(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	jun1, jun4 := date(2026, time.June, 1), date(2026, time.June, 4)

	// Room type with 10 rooms, fully booked for the interval.
	env.store.addRoomType(3, 10, "Twin", 80000, 10)
	if _, err := env.svc.CreateBooking(ctx, 3, jun1, jun4, 10, "alice"); err != nil {
		t.Fatalf("fill capacity: %v", err)
	}

	// A quantity near MaxUint32 wraps the 32-bit sum past the capacity
	// ceiling; the check must still reject it.
	_, err := env.svc.CreateBooking(ctx, 3, jun1, jun4, math.MaxUint32-5, "carol")
	var insufficient *InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientInventoryError", err)
	}
	if insufficient.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", insufficient.Remaining)
	}

	// Same wrap against an empty interval: quantity alone exceeds capacity.
	jul1, jul4 := date(2026, time.July, 1), date(2026, time.July, 4)
	if _, err := env.svc.CreateBooking(ctx, 3, jul1, jul4, math.MaxUint32, "carol"); err == nil {
		t.Fatal("booking with MaxUint32 rooms succeeded")
	}
}

func TestCreateBookingTouchingIntervalsDoNotConflict(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()

	// Check-out day equals check-in day: no shared night.
	if _, err := env.svc.CreateBooking(ctx, 1, date(2026, time.June, 1), date(2026, time.June, 4), 5, "alice"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := env.svc.CreateBooking(ctx, 1, date(2026, time.June, 4), date(2026, time.June, 7), 5, "carol"); err != nil {
		t.Fatalf("back-to-back booking: %v", err)
	}
}

func TestCreateBookingCancelledFreesCapacity(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	jun1, jun4 := date(2026, time.June, 1), date(2026, time.June, 4)

	b, err := env.svc.CreateBooking(ctx, 1, jun1, jun4, 5, "alice")
	if err != nil {
		t.Fatalf("fill capacity: %v", err)
	}
	if _, err := env.svc.CreateBooking(ctx, 1, jun1, jun4, 1, "carol"); err == nil {
		t.Fatal("overbooking succeeded")
	}

	if _, err := env.svc.CancelBookingAsAdmin(ctx, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := env.svc.CreateBooking(ctx, 1, jun1, jun4, 5, "carol"); err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
}

func TestCreateBookingConcurrentNeverOversells(t *testing.T) {
	env := newBookingEnv(t)
	jun1, jun4 := date(2026, time.June, 1), date(2026, time.June, 4)

	// 5 rooms, two simultaneous requests for 3: exactly one may win.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, user := range []string{"alice", "carol"} {
		wg.Add(1)
		go func(i int, user string) {
			defer wg.Done()
			_, errs[i] = env.svc.CreateBooking(context.Background(), 1, jun1, jun4, 3, user)
		}(i, user)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			var e *InsufficientInventoryError
			if errors.As(err, &e) {
				insufficient++
			} else {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}
	if ok != 1 || insufficient != 1 {
		t.Fatalf("got %d successes and %d capacity rejections, want 1 and 1", ok, insufficient)
	}
}

func TestCancelBookingSelf(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	env.svc.now = func() time.Time { return date(2026, time.May, 20) }

	b, err := env.svc.CreateBooking(ctx, 1, date(2026, time.June, 1), date(2026, time.June, 4), 1, "alice")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := env.svc.CancelBooking(ctx, b.ID, "carol"); !errors.Is(err, ErrForbidden) {
		t.Errorf("cancel by stranger: err = %v, want ErrForbidden", err)
	}

	d, err := env.svc.CancelBooking(ctx, b.ID, "alice")
	if err != nil {
		t.Fatalf("cancel by booker: %v", err)
	}
	if d.Status != model.StatusCancelled {
		t.Errorf("Status = %q, want %q", d.Status, model.StatusCancelled)
	}

	if _, err := env.svc.CancelBooking(ctx, b.ID, "alice"); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("double cancel: err = %v, want ErrAlreadyCancelled", err)
	}
}

func TestCancelBookingSelfTooLate(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	checkIn := date(2026, time.June, 1)

	b, err := env.svc.CreateBooking(ctx, 1, checkIn, date(2026, time.June, 4), 1, "alice")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Check-in day itself is already too late, even mid-morning.
	env.svc.now = func() time.Time { return date(2026, time.June, 1).Add(9 * time.Hour) }
	if _, err := env.svc.CancelBooking(ctx, b.ID, "alice"); !errors.Is(err, ErrTooLateToCancel) {
		t.Errorf("same-day cancel: err = %v, want ErrTooLateToCancel", err)
	}

	// The day before is fine.
	env.svc.now = func() time.Time { return date(2026, time.May, 31).Add(23 * time.Hour) }
	if _, err := env.svc.CancelBooking(ctx, b.ID, "alice"); err != nil {
		t.Errorf("day-before cancel: %v", err)
	}
}

func TestCancelBookingAsOwner(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()
	env.svc.now = func() time.Time { return date(2026, time.June, 2) }

	// Stay already began: only owner or admin may cancel.
	b, err := env.svc.CreateBooking(ctx, 1, date(2026, time.June, 1), date(2026, time.June, 4), 1, "alice")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := env.svc.CancelBookingAsOwner(ctx, b.ID, "alice"); !errors.Is(err, ErrForbidden) {
		t.Errorf("cancel by non-owner: err = %v, want ErrForbidden", err)
	}
	d, err := env.svc.CancelBookingAsOwner(ctx, b.ID, "bob")
	if err != nil {
		t.Fatalf("cancel by owner: %v", err)
	}
	if d.Status != model.StatusCancelled {
		t.Errorf("Status = %q, want %q", d.Status, model.StatusCancelled)
	}
	if _, err := env.svc.CancelBookingAsOwner(ctx, b.ID, "bob"); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("double cancel by owner: err = %v, want ErrAlreadyCancelled", err)
	}
}

func TestConfirmStateMachine(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()

	b, err := env.svc.CreateBooking(ctx, 1, date(2026, time.June, 1), date(2026, time.June, 4), 1, "alice")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := env.svc.ConfirmBookingAsOwner(ctx, b.ID, "carol"); !errors.Is(err, ErrForbidden) {
		t.Errorf("confirm by stranger: err = %v, want ErrForbidden", err)
	}

	d, err := env.svc.ConfirmBookingAsOwner(ctx, b.ID, "bob")
	if err != nil {
		t.Fatalf("confirm by owner: %v", err)
	}
	if d.Status != model.StatusConfirmed {
		t.Errorf("Status = %q, want %q", d.Status, model.StatusConfirmed)
	}

	if _, err := env.svc.ConfirmBookingAsOwner(ctx, b.ID, "bob"); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("double confirm: err = %v, want ErrAlreadyConfirmed", err)
	}

	// Confirmed bookings can still be cancelled by the owner.
	if _, err := env.svc.CancelBookingAsOwner(ctx, b.ID, "bob"); err != nil {
		t.Fatalf("cancel confirmed: %v", err)
	}

	// Cancelled is terminal.
	if _, err := env.svc.ConfirmBookingAsAdmin(ctx, b.ID); !errors.Is(err, ErrCancelledCannotConfirm) {
		t.Errorf("confirm cancelled: err = %v, want ErrCancelledCannotConfirm", err)
	}
}

func TestConfirmAsAdminBypassesOwnership(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()

	b, err := env.svc.CreateBooking(ctx, 1, date(2026, time.June, 1), date(2026, time.June, 4), 1, "alice")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	d, err := env.svc.ConfirmBookingAsAdmin(ctx, b.ID)
	if err != nil {
		t.Fatalf("admin confirm: %v", err)
	}
	if d.Status != model.StatusConfirmed {
		t.Errorf("Status = %q, want %q", d.Status, model.StatusConfirmed)
	}
}

func TestBookingViews(t *testing.T) {
	env := newBookingEnv(t)
	ctx := context.Background()

	// Second owner with their own property so scoping is observable.
	dana := env.store.addUser(4, "dana", model.RoleOwner)
	env.store.addAccommodation(11, dana, "Mountain Lodge", "Innsbruck")
	env.store.addRoomType(2, 11, "Cabin", 50000, 3)

	b1, err := env.svc.CreateBooking(ctx, 1, date(2026, time.June, 1), date(2026, time.June, 4), 1, "alice")
	if err != nil {
		t.Fatalf("booking 1: %v", err)
	}
	if _, err := env.svc.CreateBooking(ctx, 2, date(2026, time.July, 1), date(2026, time.July, 2), 1, "alice"); err != nil {
		t.Fatalf("booking 2: %v", err)
	}
	if _, err := env.svc.CreateBooking(ctx, 1, date(2026, time.June, 10), date(2026, time.June, 12), 1, "carol"); err != nil {
		t.Fatalf("booking 3: %v", err)
	}

	mine, err := env.svc.ListBookingsForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListBookingsForUser: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("alice sees %d bookings, want 2", len(mine))
	}
	for _, d := range mine {
		if d.Username != "alice" {
			t.Errorf("foreign booking %d in alice's view", d.ID)
		}
	}

	bobs, err := env.svc.ListBookingsForOwner(ctx, "bob")
	if err != nil {
		t.Fatalf("ListBookingsForOwner: %v", err)
	}
	if len(bobs) != 2 {
		t.Errorf("bob sees %d bookings, want 2", len(bobs))
	}
	for _, d := range bobs {
		if d.OwnerUsername != "bob" {
			t.Errorf("booking %d for owner %q in bob's view", d.ID, d.OwnerUsername)
		}
	}

	all, err := env.svc.ListAllBookings(ctx)
	if err != nil {
		t.Fatalf("ListAllBookings: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin sees %d bookings, want 3", len(all))
	}

	d, err := env.svc.GetBookingForUser(ctx, b1.ID, "alice")
	if err != nil {
		t.Fatalf("GetBookingForUser: %v", err)
	}
	if d.AccommodationName != "Seaside Inn" || d.RoomTypeName != "Double" || d.TotalPrice != "3000.00" {
		t.Errorf("detail = %q/%q/%q, want Seaside Inn/Double/3000.00", d.AccommodationName, d.RoomTypeName, d.TotalPrice)
	}
	if _, err := env.svc.GetBookingForUser(ctx, b1.ID, "carol"); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign get: err = %v, want ErrForbidden", err)
	}
}
