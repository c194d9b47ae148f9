package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/lodging-reservation/internal/model"
	"github.com/iliyamo/lodging-reservation/internal/repository"
	"github.com/iliyamo/lodging-reservation/internal/utils"
)

// memStore is an in-memory stand-in for the MySQL repositories.  It
// implements the store interfaces with the same error contract and
// the same half-open overlap semantics, and serializes CreateLocked per
// room type with a mutex so the engine's concurrency behavior can be
// exercised without a database.
type memStore struct {
	mu        sync.Mutex
	locks     map[uint64]*sync.Mutex
	users     map[string]*model.User
	accs      map[uint64]*model.Accommodation
	roomTypes map[uint64]*model.RoomType
	bookings  map[uint64]*model.Booking
	reviews   map[uint64]*model.Review
	favorites map[[2]uint64]time.Time // (userID, accommodationID) -> added at
	nextID    uint64
}

func newMemStore() *memStore {
	return &memStore{
		locks:     make(map[uint64]*sync.Mutex),
		users:     make(map[string]*model.User),
		accs:      make(map[uint64]*model.Accommodation),
		roomTypes: make(map[uint64]*model.RoomType),
		bookings:  make(map[uint64]*model.Booking),
		reviews:   make(map[uint64]*model.Review),
		favorites: make(map[[2]uint64]time.Time),
	}
}

// --- fixture helpers ---

func (m *memStore) addUser(id uint64, username, role string) *model.User {
	u := &model.User{ID: id, Username: username, Role: role, IsActive: true}
	m.users[username] = u
	return u
}

func (m *memStore) addAccommodation(id uint64, owner *model.User, name, location string) *model.Accommodation {
	a := &model.Accommodation{ID: id, OwnerID: owner.ID, OwnerUsername: owner.Username, Name: name, Location: location}
	m.accs[id] = a
	return a
}

func (m *memStore) addRoomType(id, accID uint64, name string, priceCents int64, totalRooms uint32) *model.RoomType {
	rt := &model.RoomType{ID: id, AccommodationID: accID, Name: name, PricePerNightCents: priceCents, TotalRooms: totalRooms}
	m.roomTypes[id] = rt
	return rt
}

// --- UserStore ---

func (m *memStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// accommodationStore and roomTypeStore wrap memStore so that store
// methods whose names collide across interfaces (Create, GetByID,
// ListAll, ListByOwner) can coexist in one fixture.
type accommodationStore struct{ m *memStore }

func (s accommodationStore) Create(_ context.Context, a *model.Accommodation) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.nextID++
	a.ID = s.m.nextID + 1000
	for _, u := range s.m.users {
		if u.ID == a.OwnerID {
			a.OwnerUsername = u.Username
		}
	}
	cp := *a
	s.m.accs[a.ID] = &cp
	return nil
}

func (s accommodationStore) GetByID(_ context.Context, id uint64) (*model.Accommodation, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a, ok := s.m.accs[id]
	if !ok {
		return nil, repository.ErrAccommodationNotFound
	}
	cp := *a
	return &cp, nil
}

func (s accommodationStore) Update(_ context.Context, a *model.Accommodation) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.accs[a.ID]; !ok {
		return repository.ErrAccommodationNotFound
	}
	cp := *a
	s.m.accs[a.ID] = &cp
	return nil
}

func (s accommodationStore) Delete(_ context.Context, id uint64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.accs[id]; !ok {
		return repository.ErrAccommodationNotFound
	}
	for _, b := range s.m.bookings {
		rt, ok := s.m.roomTypes[b.RoomTypeID]
		if ok && rt.AccommodationID == id {
			return repository.ErrConflict
		}
	}
	for rtID, rt := range s.m.roomTypes {
		if rt.AccommodationID == id {
			delete(s.m.roomTypes, rtID)
		}
	}
	delete(s.m.accs, id)
	return nil
}

func (s accommodationStore) ListAll(_ context.Context, keyword, sortBy string) ([]*model.Accommodation, error) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()
	kw := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]*model.Accommodation, 0)
	for _, a := range m.accs {
		if kw != "" &&
			!strings.Contains(strings.ToLower(a.Name), kw) &&
			!strings.Contains(strings.ToLower(a.Location), kw) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		switch sortBy {
		case "price_asc":
			return out[i].PricePerNightCents < out[j].PricePerNightCents
		case "price_desc":
			return out[i].PricePerNightCents > out[j].PricePerNightCents
		case "name_asc":
			return out[i].Name < out[j].Name
		case "name_desc":
			return out[i].Name > out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s accommodationStore) ListByOwner(_ context.Context, ownerUsername string) ([]*model.Accommodation, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]*model.Accommodation, 0)
	for _, a := range s.m.accs {
		if a.OwnerUsername == ownerUsername {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type roomTypeStore struct{ m *memStore }

func (s roomTypeStore) Create(_ context.Context, rt *model.RoomType) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.accs[rt.AccommodationID]; !ok {
		return repository.ErrAccommodationNotFound
	}
	s.m.nextID++
	rt.ID = s.m.nextID + 2000
	cp := *rt
	s.m.roomTypes[rt.ID] = &cp
	return nil
}

func (s roomTypeStore) GetByID(_ context.Context, id uint64) (*model.RoomType, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	rt, ok := s.m.roomTypes[id]
	if !ok {
		return nil, repository.ErrRoomTypeNotFound
	}
	cp := *rt
	return &cp, nil
}

func (s roomTypeStore) Update(_ context.Context, rt *model.RoomType) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.roomTypes[rt.ID]; !ok {
		return repository.ErrRoomTypeNotFound
	}
	cp := *rt
	s.m.roomTypes[rt.ID] = &cp
	return nil
}

func (s roomTypeStore) Delete(_ context.Context, id uint64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.roomTypes[id]; !ok {
		return repository.ErrRoomTypeNotFound
	}
	for _, b := range s.m.bookings {
		if b.RoomTypeID == id {
			return repository.ErrConflict
		}
	}
	delete(s.m.roomTypes, id)
	return nil
}

func (s roomTypeStore) ListByAccommodation(_ context.Context, accID uint64) ([]*model.RoomType, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]*model.RoomType, 0)
	for _, rt := range s.m.roomTypes {
		if rt.AccommodationID == accID {
			cp := *rt
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- ReviewStore ---

// reviewStore wraps memStore for the same reason accommodationStore
// does: Create and friends collide across interfaces.
type reviewStore struct{ m *memStore }

func (s reviewStore) Create(_ context.Context, rv *model.Review) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.reviews {
		if existing.AccommodationID == rv.AccommodationID && existing.UserID == rv.UserID {
			return repository.ErrConflict
		}
	}
	if _, ok := s.m.accs[rv.AccommodationID]; !ok {
		return repository.ErrAccommodationNotFound
	}
	s.m.nextID++
	rv.ID = s.m.nextID + 4000
	rv.CreatedAt = time.Now().UTC()
	rv.UpdatedAt = rv.CreatedAt
	cp := *rv
	s.m.reviews[rv.ID] = &cp
	return nil
}

func (s reviewStore) Exists(_ context.Context, accommodationID, userID uint64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, rv := range s.m.reviews {
		if rv.AccommodationID == accommodationID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s reviewStore) ListByAccommodation(_ context.Context, accommodationID uint64) ([]*model.Review, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]*model.Review, 0)
	for _, rv := range s.m.reviews {
		if rv.AccommodationID == accommodationID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// --- FavoriteStore ---

type favoriteStore struct{ m *memStore }

func (s favoriteStore) Add(_ context.Context, userID, accommodationID uint64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := [2]uint64{userID, accommodationID}
	if _, ok := s.m.favorites[key]; ok {
		return repository.ErrConflict
	}
	if _, ok := s.m.accs[accommodationID]; !ok {
		return repository.ErrAccommodationNotFound
	}
	s.m.favorites[key] = time.Now().UTC()
	return nil
}

func (s favoriteStore) Remove(_ context.Context, userID, accommodationID uint64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := [2]uint64{userID, accommodationID}
	if _, ok := s.m.favorites[key]; !ok {
		return repository.ErrFavoriteNotFound
	}
	delete(s.m.favorites, key)
	return nil
}

func (s favoriteStore) Exists(_ context.Context, userID, accommodationID uint64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_, ok := s.m.favorites[[2]uint64{userID, accommodationID}]
	return ok, nil
}

func (s favoriteStore) ListByUser(_ context.Context, userID uint64) ([]*model.Accommodation, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]*model.Accommodation, 0)
	for key := range s.m.favorites {
		if key[0] != userID {
			continue
		}
		if a, ok := s.m.accs[key[1]]; ok {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// --- BookingStore ---

func (m *memStore) roomTypeLock(id uint64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

func (m *memStore) CreateLocked(_ context.Context, roomTypeID uint64, checkIn, checkOut time.Time, decide func(rt *model.RoomType, alreadyBooked uint32) (*model.Booking, error)) (*model.Booking, error) {
	lock := m.roomTypeLock(roomTypeID)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	rt, ok := m.roomTypes[roomTypeID]
	if !ok {
		m.mu.Unlock()
		return nil, repository.ErrRoomTypeNotFound
	}
	rtCopy := *rt
	var already uint32
	for _, b := range m.bookings {
		if b.RoomTypeID != roomTypeID || b.Status == model.StatusCancelled {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			already += b.Quantity
		}
	}
	m.mu.Unlock()

	b, err := decide(&rtCopy, already)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = m.nextID + 3000
	b.CreatedAt = time.Now().UTC()
	cp := *b
	m.bookings[b.ID] = &cp
	return b, nil
}

func (m *memStore) detail(b *model.Booking) *model.BookingDetail {
	rt := m.roomTypes[b.RoomTypeID]
	acc := m.accs[rt.AccommodationID]
	var username string
	for _, u := range m.users {
		if u.ID == b.UserID {
			username = u.Username
		}
	}
	return &model.BookingDetail{
		ID:                b.ID,
		Reference:         b.Reference,
		RoomTypeID:        rt.ID,
		RoomTypeName:      rt.Name,
		AccommodationID:   acc.ID,
		AccommodationName: acc.Name,
		Location:          acc.Location,
		OwnerUsername:     acc.OwnerUsername,
		UserID:            b.UserID,
		Username:          username,
		CheckIn:           b.CheckIn.UTC().Format(model.DateLayout),
		CheckOut:          b.CheckOut.UTC().Format(model.DateLayout),
		Quantity:          b.Quantity,
		TotalPriceCents:   b.TotalPriceCents,
		TotalPrice:        utils.FormatCents(b.TotalPriceCents),
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
	}
}

func (m *memStore) GetDetail(_ context.Context, id uint64) (*model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return m.detail(b), nil
}

func (m *memStore) UpdateStatus(_ context.Context, id uint64, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	if b.Status != from {
		return repository.ErrConflict
	}
	b.Status = to
	return nil
}

func (m *memStore) ListByUser(_ context.Context, username string) ([]*model.BookingDetail, error) {
	return m.listDetails(func(d *model.BookingDetail) bool { return d.Username == username }), nil
}

func (m *memStore) ListByOwner(_ context.Context, ownerUsername string) ([]*model.BookingDetail, error) {
	return m.listDetails(func(d *model.BookingDetail) bool { return d.OwnerUsername == ownerUsername }), nil
}

func (m *memStore) ListAll(_ context.Context) ([]*model.BookingDetail, error) {
	return m.listDetails(func(*model.BookingDetail) bool { return true }), nil
}

func (m *memStore) listDetails(keep func(*model.BookingDetail) bool) []*model.BookingDetail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.BookingDetail, 0)
	for _, b := range m.bookings {
		d := m.detail(b)
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}
