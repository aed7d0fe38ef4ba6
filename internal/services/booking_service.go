package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"safari-backend/internal/domain"
	"safari-backend/internal/domain/models"
	"safari-backend/internal/metrics"
	"safari-backend/internal/repositories"
	"safari-backend/internal/utils"
)

// BookingService owns holds, payment and the gate transitions.
type BookingService struct {
	Store     repositories.Store
	Rules     domain.Rules
	Now       func() time.Time
	RequestID string
}

// CreateBooking places a 15 minute hold. Capacity check, token allocation
// and insert share one transaction under the date lock.
func (s BookingService) CreateBooking(ctx context.Context, in models.CreateBookingInput) (models.Booking, error) {
	in, err := s.Rules.NormalizeCreate(in)
	if err != nil {
		return models.Booking{}, err
	}
	now := clock(s.Now)
	started, err := s.Rules.SlotStarted(in.SafariDate, in.TimeSlot, now)
	if err != nil {
		return models.Booking{}, err
	}
	if started {
		return models.Booking{}, domain.ValidationError{Field: "timeSlot", Msg: "slot has already started"}
	}

	var out models.Booking
	err = s.Store.InTx(ctx, func(tx repositories.Tx) error {
		if err := tx.LockDate(ctx, in.SafariDate); err != nil {
			return err
		}
		held, err := tx.SumHeldSeats(ctx, in.SafariDate, in.TimeSlot, now)
		if err != nil {
			return err
		}
		remaining := s.Rules.RemainingSeats(held)
		seats := in.Adults + in.Children
		if remaining < seats {
			return domain.CapacityExceededError{Slot: in.TimeSlot, Requested: seats, Remaining: remaining}
		}
		maxToken, err := tx.MaxToken(ctx, in.SafariDate)
		if err != nil {
			return err
		}
		b := s.Rules.NewHold(in, domain.NextToken(maxToken), now)
		if err := tx.InsertBooking(ctx, &b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		if domain.IsCapacityExceeded(err) {
			metrics.IncCapacityRejection()
			utils.LogEvent(s.RequestID, "booking", "create", "rejected: "+err.Error())
		}
		return models.Booking{}, storeError("booking", err)
	}
	metrics.IncBookingCreated(out.TimeSlot)
	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("booking_id=%d date=%s token=%d seats=%d", out.ID, out.SafariDate, out.Token, out.TotalSeats))
	return out, nil
}

// RemainingSeats reads the slot ledger. Started slots still report their seats.
func (s BookingService) RemainingSeats(ctx context.Context, date, slot string) (int, error) {
	if _, err := s.Rules.ParseSafariDate(date); err != nil {
		return 0, err
	}
	if err := s.Rules.ValidateSlot(slot); err != nil {
		return 0, err
	}
	now := clock(s.Now)
	var held int
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		var err error
		held, err = tx.SumHeldSeats(ctx, date, strings.TrimSpace(slot), now)
		return err
	})
	if err != nil {
		return 0, storeError("booking", err)
	}
	return s.Rules.RemainingSeats(held), nil
}

// AvailableSlots lists every configured slot for the date in order.
func (s BookingService) AvailableSlots(ctx context.Context, date string, seatsNeeded int) ([]models.SlotAvailability, error) {
	if _, err := s.Rules.ParseSafariDate(date); err != nil {
		return nil, err
	}
	if seatsNeeded <= 0 {
		seatsNeeded = 1
	}
	now := clock(s.Now)
	out := make([]models.SlotAvailability, 0, len(s.Rules.TimeSlots))
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		out = out[:0]
		for _, slot := range s.Rules.TimeSlots {
			held, err := tx.SumHeldSeats(ctx, date, slot, now)
			if err != nil {
				return err
			}
			started, err := s.Rules.SlotStarted(date, slot, now)
			if err != nil {
				return err
			}
			remaining := s.Rules.RemainingSeats(held)
			out = append(out, models.SlotAvailability{
				Slot:           slot,
				RemainingSeats: remaining,
				Available:      !started && remaining >= seatsNeeded,
				Started:        started,
			})
		}
		return nil
	})
	if err != nil {
		return nil, storeError("booking", err)
	}
	return out, nil
}

// ConfirmPayment marks a live hold paid and packs its seats into vehicles
// in the same transaction. A hold found lapsed is expired and stored even
// though the call fails with ExpiredError.
func (s BookingService) ConfirmPayment(ctx context.Context, bookingID int64, rawMode string) (models.PaymentConfirmation, error) {
	if bookingID <= 0 {
		return models.PaymentConfirmation{}, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}
	mode, err := domain.ParsePaymentMode(rawMode)
	if err != nil {
		return models.PaymentConfirmation{}, err
	}
	now := clock(s.Now)

	var (
		out       models.PaymentConfirmation
		opened    int
		lapsedErr error
	)
	err = s.Store.InTx(ctx, func(tx repositories.Tx) error {
		lapsedErr = nil
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return storeError("booking", err)
		}
		if err := tx.LockDate(ctx, b.SafariDate); err != nil {
			return err
		}
		if b, err = tx.GetBooking(ctx, bookingID); err != nil {
			return err
		}
		wasExpired := b.Expired
		if err := domain.ConfirmPayment(&b, mode, now); err != nil {
			if domain.IsExpired(err) && !wasExpired {
				lapsedErr = err
				return tx.UpdateBooking(ctx, &b)
			}
			return err
		}
		if err := tx.UpdateBooking(ctx, &b); err != nil {
			return err
		}
		placed, n, err := packSeats(ctx, tx, b, s.Rules.VehicleCapacity, now)
		if err != nil {
			return err
		}
		out = models.PaymentConfirmation{Booking: b, Assignments: placed}
		opened = n
		return nil
	})
	if err != nil {
		return models.PaymentConfirmation{}, storeError("booking", err)
	}
	if lapsedErr != nil {
		metrics.AddHoldsExpired(1)
		utils.LogEvent(s.RequestID, "booking", "confirm_payment", fmt.Sprintf("booking_id=%d expired on confirm", bookingID))
		return models.PaymentConfirmation{}, lapsedErr
	}
	metrics.IncPaymentConfirmed(string(mode))
	metrics.AddVehiclesOpened(opened)
	utils.LogEvent(s.RequestID, "booking", "confirm_payment", fmt.Sprintf("booking_id=%d mode=%s seats_packed=%d vehicles_opened=%d", bookingID, mode, len(out.Assignments), opened))
	return out, nil
}

func (s BookingService) StartSafari(ctx context.Context, bookingID int64) (models.Booking, error) {
	return s.transition(ctx, bookingID, "start_safari", domain.StartSafari)
}

func (s BookingService) EndSafari(ctx context.Context, bookingID int64) (models.Booking, error) {
	return s.transition(ctx, bookingID, "end_safari", domain.EndSafari)
}

func (s BookingService) transition(ctx context.Context, bookingID int64, action string, apply func(*models.Booking, time.Time) error) (models.Booking, error) {
	if bookingID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}
	now := clock(s.Now)
	var out models.Booking
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return storeError("booking", err)
		}
		if err := apply(&b, now); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, &b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return models.Booking{}, storeError("booking", err)
	}
	utils.LogEvent(s.RequestID, "booking", action, fmt.Sprintf("booking_id=%d status=%s", out.ID, out.SafariStatus))
	return out, nil
}

func (s BookingService) GetBooking(ctx context.Context, bookingID int64) (models.Booking, error) {
	var out models.Booking
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		var err error
		out, err = tx.GetBooking(ctx, bookingID)
		return err
	})
	if err != nil {
		return models.Booking{}, storeError("booking", err)
	}
	return out, nil
}

// GetBookingByToken returns the booking with its sub-tokens and the
// vehicles carrying them.
func (s BookingService) GetBookingByToken(ctx context.Context, date string, token int) (models.BookingDetail, error) {
	if _, err := s.Rules.ParseSafariDate(date); err != nil {
		return models.BookingDetail{}, err
	}
	if token <= 0 {
		return models.BookingDetail{}, domain.ValidationError{Field: "token", Msg: "invalid token"}
	}
	var out models.BookingDetail
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		b, err := tx.GetBookingByToken(ctx, date, token)
		if err != nil {
			return err
		}
		fleet, err := tx.ListVehicles(ctx, date)
		if err != nil {
			return err
		}
		out = bookingDetail(b, fleet)
		return nil
	})
	if err != nil {
		return models.BookingDetail{}, storeError("booking", err)
	}
	return out, nil
}

func bookingDetail(b models.Booking, fleet []models.VehicleAssignment) models.BookingDetail {
	out := models.BookingDetail{
		Booking:   b,
		SubTokens: domain.SubTokens(b.Token, b.TotalSeats),
		Vehicles:  []models.VehicleAssignment{},
	}
	numbers := []string{}
	drivers := []string{}
	for _, v := range fleet {
		for _, p := range v.Passengers {
			if p.BookingID != b.ID {
				continue
			}
			out.Vehicles = append(out.Vehicles, v)
			numbers = append(numbers, strconv.Itoa(v.VehicleNumber))
			drivers = append(drivers, v.DriverName)
			break
		}
	}
	sort.SliceStable(out.Vehicles, func(i, j int) bool {
		return out.Vehicles[i].VehicleNumber < out.Vehicles[j].VehicleNumber
	})
	out.VehicleNumbers = utils.JoinDistinct(numbers)
	out.Drivers = utils.JoinDistinct(drivers)
	return out
}

// ListBookings includes expired holds; they are retained for audit.
func (s BookingService) ListBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	f.SafariDate = strings.TrimSpace(f.SafariDate)
	if f.SafariDate != "" {
		if _, err := s.Rules.ParseSafariDate(f.SafariDate); err != nil {
			return nil, err
		}
	}
	switch f.Status {
	case "", models.StatusPending, models.StatusConfirmed, models.StatusStarted, models.StatusCompleted, models.StatusExpired:
	default:
		return nil, domain.ValidationError{Field: "status", Msg: "unknown status " + string(f.Status)}
	}
	var out []models.Booking
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		var err error
		out, err = tx.ListBookings(ctx, f)
		return err
	})
	if err != nil {
		return nil, storeError("booking", err)
	}
	return out, nil
}
