package models

import "time"

type VehicleStatus string

const (
	VehicleWaiting VehicleStatus = "waiting"
	VehicleReady   VehicleStatus = "ready"
	VehicleMoved   VehicleStatus = "moved"
)

// Passenger is one packed seat.
type Passenger struct {
	SubToken  string `json:"subToken"`
	BookingID int64  `json:"bookingId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}

// VehicleAssignment is one vehicle's manifest for one safari date.
type VehicleAssignment struct {
	ID              int64         `json:"id"`
	VehicleNumber   int           `json:"vehicleNumber"`
	SafariDate      string        `json:"safariDate"`
	Capacity        int           `json:"capacity"`
	SeatsFilled     int           `json:"seatsFilled"`
	Passengers      []Passenger   `json:"passengers"`
	DriverName      string        `json:"driverName,omitempty"`
	Status          VehicleStatus `json:"status"`
	PlasticCountIn  *int          `json:"plasticCountIn,omitempty"`
	PlasticCountOut *int          `json:"plasticCountOut,omitempty"`
	GateInTime      *time.Time    `json:"gateInTime,omitempty"`
	GateOutTime     *time.Time    `json:"gateOutTime,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	Version         int           `json:"-"`
}

// SeatAssignment records where a sub-token was packed.
type SeatAssignment struct {
	VehicleID     int64  `json:"vehicleId"`
	VehicleNumber int    `json:"vehicleNumber"`
	SubToken      string `json:"subToken"`
}

// GateUpdate carries gate logistics; nil fields are left untouched.
type GateUpdate struct {
	PlasticCountIn  *int       `json:"plasticCountIn"`
	PlasticCountOut *int       `json:"plasticCountOut"`
	GateInTime      *time.Time `json:"gateInTime"`
	GateOutTime     *time.Time `json:"gateOutTime"`
}
