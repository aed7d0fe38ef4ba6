package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"safari-backend/internal/domain"
	"safari-backend/internal/domain/models"
)

// MemoryStore is the single-writer local mode. Every transaction holds one
// process-wide lock, works on a copy of the whole state and swaps it back on
// success. It is not safe to share its data between processes.
type MemoryStore struct {
	mu    sync.Mutex
	state memoryState
}

type memoryState struct {
	bookings      []models.Booking
	vehicles      []models.VehicleAssignment
	staff         []models.StaffUser
	nextBookingID int64
	nextVehicleID int64
	nextStaffID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s memoryState) clone() memoryState {
	out := s
	out.bookings = append([]models.Booking(nil), s.bookings...)
	out.staff = append([]models.StaffUser(nil), s.staff...)
	out.vehicles = make([]models.VehicleAssignment, len(s.vehicles))
	for i, v := range s.vehicles {
		v.Passengers = append([]models.Passenger(nil), v.Passengers...)
		out.vehicles[i] = v
	}
	return out
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(&memoryTx{st: &work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

type memoryTx struct {
	st *memoryState
}

// LockDate is a no-op: the store lock already serializes everything.
func (t *memoryTx) LockDate(ctx context.Context, date string) error {
	return nil
}

func (t *memoryTx) SumHeldSeats(ctx context.Context, date, slot string, now time.Time) (int, error) {
	return domain.HeldSeats(t.st.bookings, date, slot, now), nil
}

func (t *memoryTx) MaxToken(ctx context.Context, date string) (int, error) {
	max := 0
	for _, b := range t.st.bookings {
		if b.SafariDate == date && b.Token > max {
			max = b.Token
		}
	}
	return max, nil
}

func (t *memoryTx) InsertBooking(ctx context.Context, b *models.Booking) error {
	for _, existing := range t.st.bookings {
		if existing.SafariDate == b.SafariDate && existing.Token == b.Token {
			return ErrDuplicate
		}
	}
	t.st.nextBookingID++
	b.ID = t.st.nextBookingID
	b.Version = 1
	t.st.bookings = append(t.st.bookings, *b)
	return nil
}

func (t *memoryTx) bookingIndex(id int64) int {
	for i, b := range t.st.bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (t *memoryTx) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	i := t.bookingIndex(id)
	if i < 0 {
		return models.Booking{}, ErrNotFound
	}
	return t.st.bookings[i], nil
}

func (t *memoryTx) GetBookingByToken(ctx context.Context, date string, token int) (models.Booking, error) {
	for _, b := range t.st.bookings {
		if b.SafariDate == date && b.Token == token {
			return b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

func (t *memoryTx) UpdateBooking(ctx context.Context, b *models.Booking) error {
	i := t.bookingIndex(b.ID)
	if i < 0 {
		return ErrNotFound
	}
	if t.st.bookings[i].Version != b.Version {
		return ErrVersionConflict
	}
	b.Version++
	t.st.bookings[i] = *b
	return nil
}

func (t *memoryTx) ListBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range t.st.bookings {
		if f.SafariDate != "" && b.SafariDate != f.SafariDate {
			continue
		}
		if f.Status != "" && b.SafariStatus != f.Status {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SafariDate != out[j].SafariDate {
			return out[i].SafariDate > out[j].SafariDate
		}
		return out[i].Token < out[j].Token
	})
	return out, nil
}

func (t *memoryTx) ListStaleHolds(ctx context.Context, now time.Time) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range t.st.bookings {
		if !b.PaymentDone && !b.Expired && !now.Before(b.ExpiryTime) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (t *memoryTx) vehicleIndex(id int64) int {
	for i, v := range t.st.vehicles {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func (t *memoryTx) ListVehicles(ctx context.Context, date string) ([]models.VehicleAssignment, error) {
	out := []models.VehicleAssignment{}
	for _, v := range t.st.vehicles {
		if v.SafariDate == date {
			v.Passengers = append([]models.Passenger{}, v.Passengers...)
			out = append(out, v)
		}
	}
	return out, nil
}

func (t *memoryTx) GetVehicle(ctx context.Context, id int64) (models.VehicleAssignment, error) {
	i := t.vehicleIndex(id)
	if i < 0 {
		return models.VehicleAssignment{}, ErrNotFound
	}
	v := t.st.vehicles[i]
	v.Passengers = append([]models.Passenger{}, v.Passengers...)
	return v, nil
}

func (t *memoryTx) InsertVehicle(ctx context.Context, v *models.VehicleAssignment) error {
	for _, existing := range t.st.vehicles {
		if existing.SafariDate == v.SafariDate && existing.VehicleNumber == v.VehicleNumber {
			return ErrDuplicate
		}
	}
	t.st.nextVehicleID++
	v.ID = t.st.nextVehicleID
	v.Version = 1
	stored := *v
	stored.Passengers = nil
	t.st.vehicles = append(t.st.vehicles, stored)
	return nil
}

func (t *memoryTx) UpdateVehicle(ctx context.Context, v *models.VehicleAssignment) error {
	i := t.vehicleIndex(v.ID)
	if i < 0 {
		return ErrNotFound
	}
	if t.st.vehicles[i].Version != v.Version {
		return ErrVersionConflict
	}
	v.Version++
	stored := *v
	stored.Passengers = t.st.vehicles[i].Passengers
	t.st.vehicles[i] = stored
	return nil
}

func (t *memoryTx) AddPassengers(ctx context.Context, vehicleID int64, date string, firstSeq int, ps []models.Passenger) error {
	i := t.vehicleIndex(vehicleID)
	if i < 0 {
		return ErrNotFound
	}
	for _, p := range ps {
		for _, v := range t.st.vehicles {
			if v.SafariDate != date {
				continue
			}
			for _, existing := range v.Passengers {
				if existing.SubToken == p.SubToken {
					return ErrDuplicate
				}
			}
		}
		t.st.vehicles[i].Passengers = append(t.st.vehicles[i].Passengers, p)
	}
	return nil
}

func (t *memoryTx) GetStaffUser(ctx context.Context, username string) (models.StaffUser, error) {
	for _, u := range t.st.staff {
		if u.Username == username {
			return u, nil
		}
	}
	return models.StaffUser{}, ErrNotFound
}

func (t *memoryTx) UpsertStaffUser(ctx context.Context, u *models.StaffUser) error {
	for i, existing := range t.st.staff {
		if existing.Username == u.Username {
			u.ID = existing.ID
			t.st.staff[i] = *u
			return nil
		}
	}
	t.st.nextStaffID++
	u.ID = t.st.nextStaffID
	t.st.staff = append(t.st.staff, *u)
	return nil
}
