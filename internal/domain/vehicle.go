package domain

import (
	"strings"
	"time"

	"safari-backend/internal/domain/models"
)

// AssignDriver sets or replaces the driver of a vehicle that has not left.
func AssignDriver(v *models.VehicleAssignment, driver string, now time.Time) error {
	driver = strings.TrimSpace(driver)
	if driver == "" {
		return ValidationError{Field: "driverName", Msg: "is required"}
	}
	if v.Status == models.VehicleMoved {
		return InvalidTransitionError{Resource: "vehicle", From: string(v.Status), To: "driver change"}
	}
	v.DriverName = driver
	v.UpdatedAt = now
	return nil
}

// MoveToSafari dispatches a full vehicle with a driver. Moved is terminal.
func MoveToSafari(v *models.VehicleAssignment, now time.Time) error {
	if v.Status == models.VehicleMoved {
		return InvalidTransitionError{Resource: "vehicle", From: string(v.Status), To: string(models.VehicleMoved)}
	}
	if strings.TrimSpace(v.DriverName) == "" {
		return ValidationError{Field: "driverName", Msg: "select driver first"}
	}
	if v.Status != models.VehicleReady || v.SeatsFilled < v.Capacity {
		return InvalidTransitionError{Resource: "vehicle", From: string(v.Status), To: string(models.VehicleMoved)}
	}
	v.Status = models.VehicleMoved
	v.UpdatedAt = now
	return nil
}

// ApplyGate records gate logistics. Passengers and driver are never touched.
func ApplyGate(v *models.VehicleAssignment, u models.GateUpdate, now time.Time) error {
	if u.PlasticCountIn != nil && *u.PlasticCountIn < 0 {
		return ValidationError{Field: "plasticCountIn", Msg: "cannot be negative"}
	}
	if u.PlasticCountOut != nil && *u.PlasticCountOut < 0 {
		return ValidationError{Field: "plasticCountOut", Msg: "cannot be negative"}
	}
	if u.PlasticCountIn != nil {
		v.PlasticCountIn = u.PlasticCountIn
	}
	if u.PlasticCountOut != nil {
		v.PlasticCountOut = u.PlasticCountOut
	}
	if u.GateInTime != nil {
		v.GateInTime = u.GateInTime
	}
	if u.GateOutTime != nil {
		v.GateOutTime = u.GateOutTime
	}
	v.UpdatedAt = now
	return nil
}
