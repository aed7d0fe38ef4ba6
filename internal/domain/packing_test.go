package domain

import (
	"testing"
	"time"

	"safari-backend/internal/domain/models"
)

func paidBooking(id int64, token, seats int) models.Booking {
	return models.Booking{
		ID: id, Token: token, Name: "Group", Phone: "9000000000",
		SafariDate: "2026-03-10", TotalSeats: seats, PaymentDone: true,
	}
}

func TestSubTokens(t *testing.T) {
	got := SubTokens(12, 3)
	want := []string{"12-A", "12-B", "12-C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if SubToken(1, 25) != "1-Z" || SubToken(1, 26) != "1-AA" || SubToken(1, 27) != "1-AB" {
		t.Fatalf("letter overflow broken: %s %s %s", SubToken(1, 25), SubToken(1, 26), SubToken(1, 27))
	}
	seen := map[string]bool{}
	for _, st := range SubTokens(5, 60) {
		if seen[st] {
			t.Fatalf("duplicate sub-token %s", st)
		}
		seen[st] = true
	}
}

func TestPackSevenSeatsIntoCapacitySix(t *testing.T) {
	res := PackBooking(nil, paidBooking(1, 1, 7), 6, testDay)

	if len(res.Vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(res.Vehicles))
	}
	first, second := res.Vehicles[0], res.Vehicles[1]
	if first.SeatsFilled != 6 || first.Status != models.VehicleReady || len(first.Passengers) != 6 {
		t.Fatalf("first vehicle: %+v", first)
	}
	if second.SeatsFilled != 1 || second.Status != models.VehicleWaiting || second.Passengers[0].SubToken != "1-G" {
		t.Fatalf("second vehicle: %+v", second)
	}
	if first.VehicleNumber != 1 || second.VehicleNumber != 2 {
		t.Fatalf("vehicle numbers: %d %d", first.VehicleNumber, second.VehicleNumber)
	}
	if len(res.Placed) != 7 || len(res.Touched()) != 2 {
		t.Fatalf("placed=%d touched=%v", len(res.Placed), res.Touched())
	}
}

func TestPackNonPositiveCapacityUsesDefault(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		res := PackBooking(nil, paidBooking(1, 1, 7), capacity, testDay)
		if len(res.Vehicles) != 2 || len(res.Placed) != 7 {
			t.Fatalf("capacity %d: vehicles=%d placed=%d", capacity, len(res.Vehicles), len(res.Placed))
		}
		if res.Vehicles[0].Capacity != DefaultVehicleCapacity || res.Vehicles[0].SeatsFilled != DefaultVehicleCapacity {
			t.Fatalf("capacity %d: first vehicle %+v", capacity, res.Vehicles[0])
		}
	}
}

func TestPackFirstFitSkipsMovedAndFull(t *testing.T) {
	fleet := []models.VehicleAssignment{
		{ID: 1, VehicleNumber: 1, Capacity: 6, SeatsFilled: 2, Status: models.VehicleMoved, DriverName: "Ravi"},
		{ID: 2, VehicleNumber: 2, Capacity: 6, SeatsFilled: 6, Status: models.VehicleReady},
		{ID: 3, VehicleNumber: 3, Capacity: 6, SeatsFilled: 4, Status: models.VehicleWaiting},
		{ID: 4, VehicleNumber: 4, Capacity: 6, SeatsFilled: 1, Status: models.VehicleWaiting},
	}
	res := PackBooking(fleet, paidBooking(9, 9, 3), 6, testDay)

	if res.Vehicles[0].SeatsFilled != 2 || res.Vehicles[1].SeatsFilled != 6 {
		t.Fatalf("moved or full vehicle was touched")
	}
	if res.Vehicles[2].SeatsFilled != 6 || res.Vehicles[2].Status != models.VehicleReady {
		t.Fatalf("vehicle 3 should fill first: %+v", res.Vehicles[2])
	}
	if res.Vehicles[3].SeatsFilled != 2 || res.Vehicles[3].Passengers[0].SubToken != "9-C" {
		t.Fatalf("overflow should spill into vehicle 4: %+v", res.Vehicles[3])
	}
	if fleet[2].SeatsFilled != 4 || len(fleet[2].Passengers) != 0 {
		t.Fatalf("input fleet was mutated")
	}
}

func TestPackIsIdempotent(t *testing.T) {
	b := paidBooking(3, 3, 8)
	first := PackBooking(nil, b, 6, testDay)
	again := PackBooking(first.Vehicles, b, 6, testDay)

	if len(again.Placed) != 0 || len(again.Touched()) != 0 {
		t.Fatalf("second pack placed %d seats", len(again.Placed))
	}
	total := 0
	for _, v := range again.Vehicles {
		total += v.SeatsFilled
		if v.SeatsFilled != len(v.Passengers) || v.SeatsFilled > v.Capacity {
			t.Fatalf("vehicle over capacity or inconsistent: %+v", v)
		}
	}
	if total != 8 {
		t.Fatalf("seats filled: got %d want 8", total)
	}
}

func TestPackResumesPartialAssignment(t *testing.T) {
	fleet := []models.VehicleAssignment{{
		ID: 1, VehicleNumber: 1, Capacity: 6, SeatsFilled: 1, Status: models.VehicleWaiting,
		Passengers: []models.Passenger{{SubToken: "5-A", BookingID: 5}},
	}}
	res := PackBooking(fleet, paidBooking(5, 5, 3), 6, testDay)
	if len(res.Placed) != 2 || res.Placed[0].SubToken != "5-B" {
		t.Fatalf("expected B and C to be placed, got %+v", res.Placed)
	}
	if res.Vehicles[0].SeatsFilled != 3 {
		t.Fatalf("seats filled: %d", res.Vehicles[0].SeatsFilled)
	}
}

func TestVehicleTransitions(t *testing.T) {
	now := testDay.Add(time.Hour)
	v := models.VehicleAssignment{Capacity: 6, SeatsFilled: 6, Status: models.VehicleReady}
	if err := MoveToSafari(&v, now); !IsValidation(err) {
		t.Fatalf("move without driver should fail validation, got %v", err)
	}
	if err := AssignDriver(&v, "  ", now); !IsValidation(err) {
		t.Fatalf("blank driver should fail, got %v", err)
	}
	if err := AssignDriver(&v, "Ravi", now); err != nil {
		t.Fatalf("assign driver: %v", err)
	}
	if err := MoveToSafari(&v, now); err != nil || v.Status != models.VehicleMoved {
		t.Fatalf("move: %v %+v", err, v)
	}
	if err := AssignDriver(&v, "Anil", now); !IsInvalidTransition(err) {
		t.Fatalf("driver change after move should fail, got %v", err)
	}
	if err := MoveToSafari(&v, now); !IsInvalidTransition(err) {
		t.Fatalf("second move should fail, got %v", err)
	}

	half := models.VehicleAssignment{Capacity: 6, SeatsFilled: 3, Status: models.VehicleWaiting, DriverName: "Ravi"}
	if err := MoveToSafari(&half, now); !IsInvalidTransition(err) {
		t.Fatalf("moving a partly filled vehicle should fail, got %v", err)
	}

	in := 12
	if err := ApplyGate(&v, models.GateUpdate{PlasticCountIn: &in, GateInTime: &now}, now); err != nil {
		t.Fatalf("gate: %v", err)
	}
	if *v.PlasticCountIn != 12 || v.DriverName != "Ravi" {
		t.Fatalf("gate update: %+v", v)
	}
	neg := -1
	if err := ApplyGate(&v, models.GateUpdate{PlasticCountOut: &neg}, now); !IsValidation(err) {
		t.Fatalf("negative plastic count should fail, got %v", err)
	}
}
