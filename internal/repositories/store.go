package repositories

import (
	"context"
	"errors"
	"time"

	"safari-backend/internal/domain/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrVersionConflict = errors.New("record was modified concurrently")
	ErrDuplicate       = errors.New("duplicate record")
)

// Store runs units of work. Implementations guarantee that fn observes and
// commits a consistent view, and that nothing fn wrote survives an error.
// fn may run more than once, so it must reset any state it accumulates.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
}

// Tx is the persistence port used by the booking core.
type Tx interface {
	// LockDate serializes every capacity, token and packing decision for a
	// safari date until the transaction ends.
	LockDate(ctx context.Context, date string) error

	SumHeldSeats(ctx context.Context, date, slot string, now time.Time) (int, error)
	MaxToken(ctx context.Context, date string) (int, error)
	InsertBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id int64) (models.Booking, error)
	GetBookingByToken(ctx context.Context, date string, token int) (models.Booking, error)
	// UpdateBooking writes the mutable fields when b.Version still matches
	// and bumps b.Version.
	UpdateBooking(ctx context.Context, b *models.Booking) error
	ListBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	ListStaleHolds(ctx context.Context, now time.Time) ([]models.Booking, error)

	ListVehicles(ctx context.Context, date string) ([]models.VehicleAssignment, error)
	GetVehicle(ctx context.Context, id int64) (models.VehicleAssignment, error)
	// InsertVehicle and UpdateVehicle persist the manifest header only;
	// passengers are appended with AddPassengers.
	InsertVehicle(ctx context.Context, v *models.VehicleAssignment) error
	UpdateVehicle(ctx context.Context, v *models.VehicleAssignment) error
	AddPassengers(ctx context.Context, vehicleID int64, date string, firstSeq int, ps []models.Passenger) error

	GetStaffUser(ctx context.Context, username string) (models.StaffUser, error)
	UpsertStaffUser(ctx context.Context, u *models.StaffUser) error
}
