package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"safari-backend/internal/domain/models"
)

func TestMemoryStoreDiscardsFailedTx(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.InTx(ctx, func(tx Tx) error {
		b := models.Booking{Token: 1, SafariDate: "2026-03-10"}
		if err := tx.InsertBooking(ctx, &b); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_ = store.InTx(ctx, func(tx Tx) error {
		max, _ := tx.MaxToken(ctx, "2026-03-10")
		if max != 0 {
			t.Fatalf("failed tx leaked a booking, max token %d", max)
		}
		return nil
	})
}

func TestMemoryStoreBookingLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 4, 0, 0, 0, time.UTC)

	err := store.InTx(ctx, func(tx Tx) error {
		for token := 1; token <= 2; token++ {
			b := models.Booking{Token: token, SafariDate: "2026-03-10", TimeSlot: "14:00 - 16:00", TotalSeats: 4, ExpiryTime: now.Add(15 * time.Minute)}
			if err := tx.InsertBooking(ctx, &b); err != nil {
				return err
			}
		}
		dup := models.Booking{Token: 2, SafariDate: "2026-03-10"}
		if err := tx.InsertBooking(ctx, &dup); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected duplicate token error, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	err = store.InTx(ctx, func(tx Tx) error {
		held, _ := tx.SumHeldSeats(ctx, "2026-03-10", "14:00 - 16:00", now)
		if held != 8 {
			t.Fatalf("held: got %d want 8", held)
		}
		stale, _ := tx.ListStaleHolds(ctx, now.Add(15*time.Minute))
		if len(stale) != 2 {
			t.Fatalf("stale: got %d want 2", len(stale))
		}

		b, err := tx.GetBooking(ctx, 1)
		if err != nil {
			return err
		}
		old := b
		b.Expired = true
		if err := tx.UpdateBooking(ctx, &b); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, &old); !errors.Is(err, ErrVersionConflict) {
			t.Fatalf("stale write should conflict, got %v", err)
		}
		held, _ = tx.SumHeldSeats(ctx, "2026-03-10", "14:00 - 16:00", now)
		if held != 4 {
			t.Fatalf("held after expiry: got %d want 4", held)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestMemoryStoreVehiclePassengers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.InTx(ctx, func(tx Tx) error {
		v := models.VehicleAssignment{VehicleNumber: 1, SafariDate: "2026-03-10", Capacity: 6, SeatsFilled: 2, Status: models.VehicleWaiting,
			Passengers: []models.Passenger{{SubToken: "ignored"}}}
		if err := tx.InsertVehicle(ctx, &v); err != nil {
			return err
		}
		ps := []models.Passenger{{SubToken: "1-A"}, {SubToken: "1-B"}}
		if err := tx.AddPassengers(ctx, v.ID, v.SafariDate, 0, ps); err != nil {
			return err
		}
		if err := tx.AddPassengers(ctx, v.ID, v.SafariDate, 2, ps[:1]); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("duplicate sub-token should be rejected, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("vehicle tx: %v", err)
	}

	_ = store.InTx(ctx, func(tx Tx) error {
		got, _ := tx.ListVehicles(ctx, "2026-03-10")
		if len(got) != 1 || len(got[0].Passengers) != 2 || got[0].Passengers[0].SubToken != "1-A" {
			t.Fatalf("unexpected fleet: %+v", got)
		}
		return nil
	})
}
