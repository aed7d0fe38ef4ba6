package services

import (
	"context"
	"fmt"
	"time"

	"safari-backend/internal/domain"
	"safari-backend/internal/domain/models"
	"safari-backend/internal/metrics"
	"safari-backend/internal/repositories"
	"safari-backend/internal/utils"
)

// VehicleService manages the per-date vehicle manifests.
type VehicleService struct {
	Store     repositories.Store
	Rules     domain.Rules
	Now       func() time.Time
	RequestID string
}

// packSeats runs the packing allocator for a paid booking inside tx.
// The caller must already hold the booking's date lock.
func packSeats(ctx context.Context, tx repositories.Tx, b models.Booking, capacity int, now time.Time) ([]models.SeatAssignment, int, error) {
	fleet, err := tx.ListVehicles(ctx, b.SafariDate)
	if err != nil {
		return nil, 0, err
	}
	res := domain.PackBooking(fleet, b, capacity, now)

	opened := 0
	for _, i := range res.Touched() {
		v := res.Vehicles[i]
		added := res.Added[i]
		firstSeq := len(v.Passengers) - len(added)
		if v.ID == 0 {
			if err := tx.InsertVehicle(ctx, &v); err != nil {
				return nil, 0, err
			}
			opened++
			for j := range res.Placed {
				if res.Placed[j].VehicleNumber == v.VehicleNumber {
					res.Placed[j].VehicleID = v.ID
				}
			}
		} else if err := tx.UpdateVehicle(ctx, &v); err != nil {
			return nil, 0, err
		}
		if err := tx.AddPassengers(ctx, v.ID, v.SafariDate, firstSeq, added); err != nil {
			return nil, 0, err
		}
	}
	return res.Placed, opened, nil
}

// AssignToVehicle packs any seats of a paid booking that are not yet on a
// manifest. Running it for a fully packed booking returns no assignments.
func (s VehicleService) AssignToVehicle(ctx context.Context, bookingID int64) ([]models.SeatAssignment, error) {
	if bookingID <= 0 {
		return nil, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}
	now := clock(s.Now)
	var (
		placed []models.SeatAssignment
		opened int
	)
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return storeError("booking", err)
		}
		if !b.PaymentDone {
			return domain.InvalidTransitionError{Resource: "booking", From: string(b.SafariStatus), To: "vehicle assignment"}
		}
		if err := tx.LockDate(ctx, b.SafariDate); err != nil {
			return err
		}
		placed, opened, err = packSeats(ctx, tx, b, s.Rules.VehicleCapacity, now)
		return err
	})
	if err != nil {
		return nil, storeError("vehicle", err)
	}
	metrics.AddVehiclesOpened(opened)
	utils.LogEvent(s.RequestID, "vehicle", "assign", fmt.Sprintf("booking_id=%d placed=%d opened=%d", bookingID, len(placed), opened))
	return placed, nil
}

func (s VehicleService) ListVehicles(ctx context.Context, date string) ([]models.VehicleAssignment, error) {
	if _, err := s.Rules.ParseSafariDate(date); err != nil {
		return nil, err
	}
	var out []models.VehicleAssignment
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		var err error
		out, err = tx.ListVehicles(ctx, date)
		return err
	})
	if err != nil {
		return nil, storeError("vehicle", err)
	}
	return out, nil
}

func (s VehicleService) SetDriver(ctx context.Context, vehicleID int64, driver string) (models.VehicleAssignment, error) {
	return s.update(ctx, vehicleID, "set_driver", func(v *models.VehicleAssignment, now time.Time) error {
		return domain.AssignDriver(v, driver, now)
	})
}

func (s VehicleService) MoveToSafari(ctx context.Context, vehicleID int64) (models.VehicleAssignment, error) {
	return s.update(ctx, vehicleID, "move", domain.MoveToSafari)
}

func (s VehicleService) RecordGate(ctx context.Context, vehicleID int64, u models.GateUpdate) (models.VehicleAssignment, error) {
	return s.update(ctx, vehicleID, "gate", func(v *models.VehicleAssignment, now time.Time) error {
		return domain.ApplyGate(v, u, now)
	})
}

// update serializes header changes with packing through the date lock so a
// driver change or move never interleaves with seats being added.
func (s VehicleService) update(ctx context.Context, vehicleID int64, action string, apply func(*models.VehicleAssignment, time.Time) error) (models.VehicleAssignment, error) {
	if vehicleID <= 0 {
		return models.VehicleAssignment{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	now := clock(s.Now)
	var out models.VehicleAssignment
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		v, err := tx.GetVehicle(ctx, vehicleID)
		if err != nil {
			return storeError("vehicle", err)
		}
		if err := tx.LockDate(ctx, v.SafariDate); err != nil {
			return err
		}
		if v, err = tx.GetVehicle(ctx, vehicleID); err != nil {
			return err
		}
		if err := apply(&v, now); err != nil {
			return err
		}
		if err := tx.UpdateVehicle(ctx, &v); err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return models.VehicleAssignment{}, storeError("vehicle", err)
	}
	utils.LogEvent(s.RequestID, "vehicle", action, fmt.Sprintf("vehicle_id=%d number=%d status=%s", out.ID, out.VehicleNumber, out.Status))
	return out, nil
}
