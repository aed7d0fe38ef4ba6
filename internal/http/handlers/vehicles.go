package handlers

import (
	"net/http"

	"safari-backend/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicle-assignments?date=
func (h Handlers) ListVehicles(c *gin.Context) {
	list, err := h.vehicles(c).ListVehicles(c.Request.Context(), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", list)
}

type driverRequest struct {
	DriverName string `json:"driverName"`
}

// PUT /api/vehicle-assignments/:id/driver
func (h Handlers) SetDriver(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req driverRequest
	if err := bindJSON(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}
	v, err := h.vehicles(c).SetDriver(c.Request.Context(), id, req.DriverName)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "driver assigned", v)
}

// PUT /api/vehicle-assignments/:id/move
func (h Handlers) MoveVehicle(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	v, err := h.vehicles(c).MoveToSafari(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "vehicle moved to safari", v)
}

// PUT /api/vehicle-assignments/:id/gate
func (h Handlers) RecordGate(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req models.GateUpdate
	if err := bindJSON(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}
	v, err := h.vehicles(c).RecordGate(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "gate details saved", v)
}
