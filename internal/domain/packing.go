package domain

import (
	"strconv"
	"time"

	"safari-backend/internal/domain/models"
)

// SubToken returns the per-seat identifier for seat index i (zero based):
// "{token}-A" .. "{token}-Z", then "{token}-AA", "{token}-AB" and so on.
func SubToken(token, i int) string {
	suffix := []byte{}
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		suffix = append([]byte{byte('A' + (n-1)%26)}, suffix...)
	}
	return strconv.Itoa(token) + "-" + string(suffix)
}

// SubTokens lists every seat identifier of a booking in letter order.
func SubTokens(token, seats int) []string {
	out := make([]string, 0, seats)
	for i := 0; i < seats; i++ {
		out = append(out, SubToken(token, i))
	}
	return out
}

// PackResult is the outcome of packing one booking.
type PackResult struct {
	// Vehicles is the date's fleet after packing, in creation order.
	// Entries with ID 0 were opened by this pack.
	Vehicles []models.VehicleAssignment
	// Added maps an index of Vehicles to the passengers appended to it.
	Added  map[int][]models.Passenger
	Placed []models.SeatAssignment
}

// Touched lists the indexes of Vehicles that changed, ascending.
func (p PackResult) Touched() []int {
	out := make([]int, 0, len(p.Added))
	for i := range p.Vehicles {
		if _, ok := p.Added[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// PackBooking packs a paid booking's unassigned seats into the date's
// vehicles first-fit in creation order, opening vehicles of the given
// capacity when none has room. Seats whose sub-token is already on a
// manifest are skipped, so packing the same booking twice is a no-op.
// The input slice is not modified. A non-positive capacity falls back to
// DefaultVehicleCapacity.
func PackBooking(fleet []models.VehicleAssignment, b models.Booking, capacity int, now time.Time) PackResult {
	if capacity <= 0 {
		capacity = DefaultVehicleCapacity
	}
	res := PackResult{
		Vehicles: cloneFleet(fleet),
		Added:    map[int][]models.Passenger{},
	}

	assigned := map[string]bool{}
	nextNumber := 1
	for _, v := range res.Vehicles {
		for _, p := range v.Passengers {
			assigned[p.SubToken] = true
		}
		if v.VehicleNumber >= nextNumber {
			nextNumber = v.VehicleNumber + 1
		}
	}

	pending := []string{}
	for _, st := range SubTokens(b.Token, b.TotalSeats) {
		if !assigned[st] {
			pending = append(pending, st)
		}
	}

	for len(pending) > 0 {
		idx := firstFit(res.Vehicles)
		if idx < 0 {
			res.Vehicles = append(res.Vehicles, models.VehicleAssignment{
				VehicleNumber: nextNumber,
				SafariDate:    b.SafariDate,
				Capacity:      capacity,
				Status:        models.VehicleWaiting,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
			nextNumber++
			idx = len(res.Vehicles) - 1
		}

		v := &res.Vehicles[idx]
		n := min(v.Capacity-v.SeatsFilled, len(pending))
		for _, st := range pending[:n] {
			p := models.Passenger{SubToken: st, BookingID: b.ID, Name: b.Name, Phone: b.Phone}
			v.Passengers = append(v.Passengers, p)
			res.Added[idx] = append(res.Added[idx], p)
			res.Placed = append(res.Placed, models.SeatAssignment{VehicleID: v.ID, VehicleNumber: v.VehicleNumber, SubToken: st})
		}
		pending = pending[n:]
		v.SeatsFilled += n
		v.UpdatedAt = now
		if v.SeatsFilled >= v.Capacity {
			v.Status = models.VehicleReady
		}
	}
	return res
}

func firstFit(fleet []models.VehicleAssignment) int {
	for i, v := range fleet {
		if v.Status != models.VehicleMoved && v.SeatsFilled < v.Capacity {
			return i
		}
	}
	return -1
}

func cloneFleet(fleet []models.VehicleAssignment) []models.VehicleAssignment {
	out := make([]models.VehicleAssignment, len(fleet))
	for i, v := range fleet {
		v.Passengers = append([]models.Passenger(nil), v.Passengers...)
		out[i] = v
	}
	return out
}
