package domain

import (
	"strings"
	"time"
)

const (
	DefaultSlotLimit       = 60
	DefaultHoldDuration    = 15 * time.Minute
	DefaultAdultRate       = 600
	DefaultChildRate       = 300
	DefaultVehicleCapacity = 6
	// MaxSweepInterval bounds how long a lapsed hold may keep blocking seats
	// in listings before the sweeper marks it expired.
	MaxSweepInterval = 30 * time.Second
)

// DefaultTimeSlots are the departure windows offered every day.
var DefaultTimeSlots = []string{
	"06:00 - 08:00",
	"08:00 - 10:00",
	"14:00 - 16:00",
	"16:00 - 18:00",
}

// Rules holds the per-deployment booking constants.
type Rules struct {
	SlotLimit       int
	HoldDuration    time.Duration
	AdultRate       int64
	ChildRate       int64
	TimeSlots       []string
	VehicleCapacity int
	// Location is the park's time zone; slot start times are read in it.
	Location *time.Location
}

func DefaultRules() Rules {
	return Rules{
		SlotLimit:       DefaultSlotLimit,
		HoldDuration:    DefaultHoldDuration,
		AdultRate:       DefaultAdultRate,
		ChildRate:       DefaultChildRate,
		TimeSlots:       append([]string(nil), DefaultTimeSlots...),
		VehicleCapacity: DefaultVehicleCapacity,
		Location:        time.Local,
	}
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// HasSlot reports whether slot is one of the configured windows.
func (r Rules) HasSlot(slot string) bool {
	slot = strings.TrimSpace(slot)
	for _, s := range r.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
