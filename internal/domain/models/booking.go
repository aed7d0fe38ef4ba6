package models

import "time"

// SafariStatus tracks a booking from hold to completed trip.
type SafariStatus string

const (
	StatusPending   SafariStatus = "pending"
	StatusConfirmed SafariStatus = "confirmed"
	StatusStarted   SafariStatus = "started"
	StatusCompleted SafariStatus = "completed"
	StatusExpired   SafariStatus = "expired"
)

type PaymentMode string

const (
	PaymentCash PaymentMode = "cash"
	PaymentUPI  PaymentMode = "upi"
	PaymentCard PaymentMode = "card"
)

// Booking is one visitor group's reservation for a date and slot.
type Booking struct {
	ID            int64        `json:"id"`
	Token         int          `json:"token"`
	Name          string       `json:"name"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	SafariDate    string       `json:"safariDate"`
	TimeSlot      string       `json:"timeSlot"`
	Adults        int          `json:"adults"`
	Children      int          `json:"children"`
	TotalSeats    int          `json:"totalSeats"`
	PaymentAmount int64        `json:"paymentAmount"`
	PaymentDone   bool         `json:"paymentDone"`
	PaymentMode   PaymentMode  `json:"paymentMode,omitempty"`
	ExpiryTime    time.Time    `json:"expiryTime"`
	Expired       bool         `json:"expired"`
	SafariStatus  SafariStatus `json:"safariStatus"`
	GateInTime    *time.Time   `json:"gateInTime,omitempty"`
	GateOutTime   *time.Time   `json:"gateOutTime,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Version       int          `json:"-"`
}

// CreateBookingInput is the visitor submission.
type CreateBookingInput struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	SafariDate string `json:"safariDate"`
	TimeSlot   string `json:"timeSlot"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`
}

// BookingFilter narrows ListBookings; empty fields match everything.
type BookingFilter struct {
	SafariDate string
	Status     SafariStatus
}

// SlotAvailability is one row of the available-slots answer.
type SlotAvailability struct {
	Slot           string `json:"slot"`
	RemainingSeats int    `json:"remainingSeats"`
	Available      bool   `json:"available"`
	Started        bool   `json:"started"`
}

// BookingDetail joins a booking with the vehicles carrying its seats.
type BookingDetail struct {
	Booking
	SubTokens      []string            `json:"subTokens"`
	Vehicles       []VehicleAssignment `json:"vehicles"`
	VehicleNumbers string              `json:"vehicleNumbers"`
	Drivers        string              `json:"drivers"`
}

// PaymentConfirmation is the result of confirming a hold: the paid booking
// and the seats packed into vehicles by this confirmation.
type PaymentConfirmation struct {
	Booking     Booking          `json:"booking"`
	Assignments []SeatAssignment `json:"assignments"`
}
