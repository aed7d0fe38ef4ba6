package domain

import (
	"time"

	"safari-backend/internal/domain/models"
)

// OccupiesCapacity is the seat-holding predicate: paid, or an unpaid hold
// that is neither marked expired nor past its expiry time.
func OccupiesCapacity(b models.Booking, now time.Time) bool {
	if b.PaymentDone {
		return true
	}
	return !b.Expired && now.Before(b.ExpiryTime)
}

// HeldSeats sums totalSeats of capacity-occupying bookings for (date, slot).
func HeldSeats(bookings []models.Booking, date, slot string, now time.Time) int {
	held := 0
	for _, b := range bookings {
		if b.SafariDate != date || b.TimeSlot != slot {
			continue
		}
		if OccupiesCapacity(b, now) {
			held += b.TotalSeats
		}
	}
	return held
}

// RemainingSeats never goes below zero, even when a slot is oversubscribed.
func (r Rules) RemainingSeats(held int) int {
	left := r.SlotLimit - held
	if left < 0 {
		return 0
	}
	return left
}

// NextToken continues a date's token sequence. Expired bookings keep their
// tokens, so the sequence never rolls back.
func NextToken(maxToken int) int {
	if maxToken < 0 {
		maxToken = 0
	}
	return maxToken + 1
}
