package services

import (
	"context"
	"testing"

	"safari-backend/internal/domain"
	"safari-backend/internal/domain/models"
	"safari-backend/internal/repositories"
)

func paidFleet(t *testing.T, seats ...int) (VehicleService, []models.VehicleAssignment) {
	t.Helper()
	clk := newTestClock()
	store := repositories.NewMemoryStore()
	bookings := newBookingService(store, clk)
	ctx := context.Background()
	for _, n := range seats {
		b, err := bookings.CreateBooking(ctx, input("14:00 - 16:00", n, 0))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := bookings.ConfirmPayment(ctx, b.ID, "cash"); err != nil {
			t.Fatalf("confirm: %v", err)
		}
	}
	svc := VehicleService{Store: store, Rules: testRules(), Now: clk.Now}
	fleet, err := svc.ListVehicles(ctx, testDate)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return svc, fleet
}

func TestMoveToSafariNeedsDriverAndFullVehicle(t *testing.T) {
	svc, fleet := paidFleet(t, 6, 2)
	ctx := context.Background()
	full, partial := fleet[0], fleet[1]

	if _, err := svc.MoveToSafari(ctx, full.ID); !domain.IsValidation(err) {
		t.Fatalf("move without driver should fail validation, got %v", err)
	}
	if _, err := svc.SetDriver(ctx, full.ID, "  "); !domain.IsValidation(err) {
		t.Fatalf("blank driver should fail, got %v", err)
	}
	if _, err := svc.SetDriver(ctx, full.ID, "Ravi"); err != nil {
		t.Fatalf("set driver: %v", err)
	}
	moved, err := svc.MoveToSafari(ctx, full.ID)
	if err != nil || moved.Status != models.VehicleMoved {
		t.Fatalf("move: %+v %v", moved, err)
	}
	if _, err := svc.SetDriver(ctx, full.ID, "Someone"); !domain.IsInvalidTransition(err) {
		t.Fatalf("driver change after move should fail, got %v", err)
	}

	if _, err := svc.SetDriver(ctx, partial.ID, "Kiran"); err != nil {
		t.Fatalf("set driver: %v", err)
	}
	if _, err := svc.MoveToSafari(ctx, partial.ID); !domain.IsInvalidTransition(err) {
		t.Fatalf("partial vehicle should not move, got %v", err)
	}
	if _, err := svc.MoveToSafari(ctx, 404); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMovedVehicleIsSkippedByPacking(t *testing.T) {
	clk := newTestClock()
	store := repositories.NewMemoryStore()
	bookings := newBookingService(store, clk)
	vehicles := VehicleService{Store: store, Rules: testRules(), Now: clk.Now}
	ctx := context.Background()

	for _, n := range []int{6, 1} {
		b, _ := bookings.CreateBooking(ctx, input("14:00 - 16:00", n, 0))
		if _, err := bookings.ConfirmPayment(ctx, b.ID, "cash"); err != nil {
			t.Fatalf("confirm: %v", err)
		}
	}
	fleet, _ := vehicles.ListVehicles(ctx, testDate)
	if _, err := vehicles.SetDriver(ctx, fleet[0].ID, "Ravi"); err != nil {
		t.Fatalf("set driver: %v", err)
	}
	if _, err := vehicles.MoveToSafari(ctx, fleet[0].ID); err != nil {
		t.Fatalf("move: %v", err)
	}

	b, _ := bookings.CreateBooking(ctx, input("14:00 - 16:00", 2, 0))
	res, err := bookings.ConfirmPayment(ctx, b.ID, "cash")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	for _, seat := range res.Assignments {
		if seat.VehicleNumber != 2 {
			t.Fatalf("seat went to %d, want vehicle 2", seat.VehicleNumber)
		}
	}
	fleet, _ = vehicles.ListVehicles(ctx, testDate)
	if fleet[1].SeatsFilled != 3 || len(fleet[1].Passengers) != 3 {
		t.Fatalf("vehicle 2: %+v", fleet[1])
	}
}

func TestRecordGate(t *testing.T) {
	svc, fleet := paidFleet(t, 3)
	ctx := context.Background()
	in := 12
	bad := -1

	if _, err := svc.RecordGate(ctx, fleet[0].ID, models.GateUpdate{PlasticCountOut: &bad}); !domain.IsValidation(err) {
		t.Fatalf("negative count should fail, got %v", err)
	}
	got, err := svc.RecordGate(ctx, fleet[0].ID, models.GateUpdate{PlasticCountIn: &in})
	if err != nil {
		t.Fatalf("gate: %v", err)
	}
	if got.PlasticCountIn == nil || *got.PlasticCountIn != 12 || got.SeatsFilled != 3 {
		t.Fatalf("unexpected vehicle: %+v", got)
	}
}

func TestAssignToVehicleRequiresPayment(t *testing.T) {
	clk := newTestClock()
	store := repositories.NewMemoryStore()
	bookings := newBookingService(store, clk)
	vehicles := VehicleService{Store: store, Rules: testRules(), Now: clk.Now}
	ctx := context.Background()

	b, _ := bookings.CreateBooking(ctx, input("14:00 - 16:00", 2, 0))
	if _, err := vehicles.AssignToVehicle(ctx, b.ID); !domain.IsInvalidTransition(err) {
		t.Fatalf("unpaid booking should not be packed, got %v", err)
	}
}
