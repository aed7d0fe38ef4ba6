package domain

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseSafariDate validates a YYYY-MM-DD date in the park's time zone.
func (r Rules) ParseSafariDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), r.location())
	if err != nil {
		return time.Time{}, ValidationError{Field: "safariDate", Msg: "must be YYYY-MM-DD", Err: err}
	}
	return t, nil
}

// ValidateSlot rejects slots outside the configured set.
func (r Rules) ValidateSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return ValidationError{Field: "timeSlot", Msg: "is required"}
	}
	if !r.HasSlot(slot) {
		return ValidationError{Field: "timeSlot", Msg: "unknown slot " + slot}
	}
	return nil
}

// SlotStart returns the instant a slot departs on the given date.
// The start is the HH:MM before the " - " separator of the slot label.
func (r Rules) SlotStart(date, slot string) (time.Time, error) {
	if err := r.ValidateSlot(slot); err != nil {
		return time.Time{}, err
	}
	day, err := r.ParseSafariDate(date)
	if err != nil {
		return time.Time{}, err
	}
	startLabel, _, _ := strings.Cut(strings.TrimSpace(slot), "-")
	hm, err := time.Parse("15:04", strings.TrimSpace(startLabel))
	if err != nil {
		return time.Time{}, ValidationError{Field: "timeSlot", Msg: "slot has no start time", Err: err}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, r.location()), nil
}

// SlotStarted reports whether the slot can no longer be booked because its
// start time is at or before now. Seat counts do not matter here.
func (r Rules) SlotStarted(date, slot string, now time.Time) (bool, error) {
	start, err := r.SlotStart(date, slot)
	if err != nil {
		return false, err
	}
	return !now.Before(start), nil
}
