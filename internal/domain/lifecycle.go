package domain

import (
	"strings"
	"time"

	"safari-backend/internal/domain/models"
	"safari-backend/internal/utils"
)

// NormalizeCreate trims the submission and validates everything that can be
// checked without reading the store.
func (r Rules) NormalizeCreate(in models.CreateBookingInput) (models.CreateBookingInput, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.SafariDate = strings.TrimSpace(in.SafariDate)
	in.TimeSlot = strings.TrimSpace(in.TimeSlot)

	switch {
	case in.Name == "":
		return in, ValidationError{Field: "name", Msg: "is required"}
	case in.Email == "":
		return in, ValidationError{Field: "email", Msg: "is required"}
	case in.SafariDate == "":
		return in, ValidationError{Field: "safariDate", Msg: "is required"}
	case in.TimeSlot == "":
		return in, ValidationError{Field: "timeSlot", Msg: "is required"}
	}
	if !isTenDigits(in.Phone) {
		return in, ValidationError{Field: "phone", Msg: "phone number must be 10 digits"}
	}
	if in.Adults < 0 || in.Children < 0 {
		return in, ValidationError{Field: "adults", Msg: "visitor counts cannot be negative"}
	}
	seats := in.Adults + in.Children
	if seats < 1 {
		return in, ValidationError{Field: "adults", Msg: "at least one adult or child is required"}
	}
	if seats > r.SlotLimit {
		return in, ValidationError{Field: "adults", Msg: "group is larger than a slot"}
	}
	if _, err := r.ParseSafariDate(in.SafariDate); err != nil {
		return in, err
	}
	if err := r.ValidateSlot(in.TimeSlot); err != nil {
		return in, err
	}
	return in, nil
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NewHold builds a HELD booking for a normalized submission.
func (r Rules) NewHold(in models.CreateBookingInput, token int, now time.Time) models.Booking {
	return models.Booking{
		Token:         token,
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		SafariDate:    in.SafariDate,
		TimeSlot:      in.TimeSlot,
		Adults:        in.Adults,
		Children:      in.Children,
		TotalSeats:    in.Adults + in.Children,
		PaymentAmount: utils.ComputeFare(in.Adults, in.Children, r.AdultRate, r.ChildRate),
		ExpiryTime:    now.Add(r.HoldDuration),
		SafariStatus:  models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ParsePaymentMode accepts cash, upi or card; empty defaults to cash.
func ParsePaymentMode(raw string) (models.PaymentMode, error) {
	switch models.PaymentMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", models.PaymentCash:
		return models.PaymentCash, nil
	case models.PaymentUPI:
		return models.PaymentUPI, nil
	case models.PaymentCard:
		return models.PaymentCard, nil
	}
	return "", ValidationError{Field: "paymentMode", Msg: "must be cash, upi or card"}
}

// ExpireIfStale marks an unpaid hold expired once now reaches its expiry
// time. It reports whether the booking changed.
func ExpireIfStale(b *models.Booking, now time.Time) bool {
	if b.PaymentDone || b.Expired || now.Before(b.ExpiryTime) {
		return false
	}
	b.Expired = true
	b.SafariStatus = models.StatusExpired
	b.UpdatedAt = now
	return true
}

// ConfirmPayment moves a live hold to PAID. Callers must persist an
// expiry performed here even though an error is returned.
func ConfirmPayment(b *models.Booking, mode models.PaymentMode, now time.Time) error {
	if b.Expired {
		return ExpiredError{BookingID: b.ID}
	}
	if b.PaymentDone {
		return InvalidTransitionError{Resource: "booking", From: string(b.SafariStatus), To: string(models.StatusConfirmed)}
	}
	if ExpireIfStale(b, now) {
		return ExpiredError{BookingID: b.ID}
	}
	b.PaymentDone = true
	b.PaymentMode = mode
	b.SafariStatus = models.StatusConfirmed
	b.UpdatedAt = now
	return nil
}

// StartSafari is the gate check-in: confirmed -> started.
func StartSafari(b *models.Booking, now time.Time) error {
	if b.SafariStatus != models.StatusConfirmed {
		return InvalidTransitionError{Resource: "booking", From: string(b.SafariStatus), To: string(models.StatusStarted)}
	}
	t := now
	b.SafariStatus = models.StatusStarted
	b.GateInTime = &t
	b.UpdatedAt = now
	return nil
}

// EndSafari is the gate check-out: started -> completed.
func EndSafari(b *models.Booking, now time.Time) error {
	if b.SafariStatus != models.StatusStarted {
		return InvalidTransitionError{Resource: "booking", From: string(b.SafariStatus), To: string(models.StatusCompleted)}
	}
	t := now
	b.SafariStatus = models.StatusCompleted
	b.GateOutTime = &t
	b.UpdatedAt = now
	return nil
}
