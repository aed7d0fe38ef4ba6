package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"safari-backend/internal/domain"
	"safari-backend/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func (h Handlers) CreateBooking(c *gin.Context) {
	var in models.CreateBookingInput
	if err := bindJSON(c, &in); err != nil {
		RespondDomainError(c, err)
		return
	}
	b, err := h.bookings(c).CreateBooking(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "booking held, pay at reception before it expires", b)
}

// GET /api/bookings/available-slots?safariDate=&totalSeats=
func (h Handlers) AvailableSlots(c *gin.Context) {
	seats, err := queryInt(c, "totalSeats", 1)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	svc := h.bookings(c)
	if slot := strings.TrimSpace(c.Query("slot")); slot != "" {
		remaining, err := svc.RemainingSeats(c.Request.Context(), c.Query("safariDate"), slot)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "", gin.H{"slot": slot, "remainingSeats": remaining})
		return
	}
	slots, err := svc.AvailableSlots(c.Request.Context(), c.Query("safariDate"), seats)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", slots)
}

// GET /api/bookings/:id/:safariDate where :id is the date's token.
func (h Handlers) GetBookingByToken(c *gin.Context) {
	token, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "token", Msg: "must be a number", Err: err})
		return
	}
	detail, err := h.bookings(c).GetBookingByToken(c.Request.Context(), c.Param("safariDate"), token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", detail)
}

// GET /api/bookings?safariDate=&status=
func (h Handlers) ListBookings(c *gin.Context) {
	f := models.BookingFilter{
		SafariDate: c.Query("safariDate"),
		Status:     models.SafariStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
	}
	list, err := h.bookings(c).ListBookings(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", list)
}

type confirmPaymentRequest struct {
	PaymentMode string `json:"paymentMode"`
}

// PUT /api/bookings/:id/confirm-payment
func (h Handlers) ConfirmPayment(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req confirmPaymentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := h.bookings(c).ConfirmPayment(c.Request.Context(), id, req.PaymentMode)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "payment confirmed", res)
}

// PUT /api/bookings/:id/start
func (h Handlers) StartSafari(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	b, err := h.bookings(c).StartSafari(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "safari started", b)
}

// PUT /api/bookings/:id/end
func (h Handlers) EndSafari(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	b, err := h.bookings(c).EndSafari(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "safari completed", b)
}

// PUT /api/bookings/:id/assign-vehicle
func (h Handlers) AssignVehicle(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	placed, err := h.vehicles(c).AssignToVehicle(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", placed)
}

// GET /api/bookings/:id/:safariDate/ticket
func (h Handlers) BookingTicket(c *gin.Context) {
	token, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "token", Msg: "must be a number", Err: err})
		return
	}
	pdf, filename, err := h.docs(c).GenerateTicket(c.Request.Context(), c.Param("safariDate"), token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdfInline(c, filename, pdf)
}
