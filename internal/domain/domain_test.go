package domain

import (
	"testing"
	"time"

	"safari-backend/internal/domain/models"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func testRules() Rules {
	r := DefaultRules()
	r.Location = time.UTC
	return r
}

func TestSlotStartedAtStartTime(t *testing.T) {
	r := testRules()
	start := testDay.Add(6 * time.Hour)

	started, err := r.SlotStarted("2026-03-10", "06:00 - 08:00", start.Add(-time.Second))
	if err != nil || started {
		t.Fatalf("slot should still be open one second before start, started=%v err=%v", started, err)
	}
	started, err = r.SlotStarted("2026-03-10", "06:00 - 08:00", start)
	if err != nil || !started {
		t.Fatalf("slot should be closed at its start time, started=%v err=%v", started, err)
	}
	started, _ = r.SlotStarted("2026-03-11", "06:00 - 08:00", start)
	if started {
		t.Fatalf("next day's slot must stay open")
	}
}

func TestSlotValidation(t *testing.T) {
	r := testRules()
	if _, err := r.SlotStarted("2026-03-10", "09:00 - 11:00", testDay); !IsValidation(err) {
		t.Fatalf("unknown slot should be a validation error, got %v", err)
	}
	if _, err := r.SlotStarted("10-03-2026", "06:00 - 08:00", testDay); !IsValidation(err) {
		t.Fatalf("bad date should be a validation error, got %v", err)
	}
}

func TestOccupiesCapacity(t *testing.T) {
	now := testDay.Add(5 * time.Hour)
	cases := []struct {
		name string
		b    models.Booking
		want bool
	}{
		{"paid", models.Booking{PaymentDone: true, ExpiryTime: now.Add(-time.Hour)}, true},
		{"live hold", models.Booking{ExpiryTime: now.Add(time.Minute)}, true},
		{"lapsed hold", models.Booking{ExpiryTime: now}, false},
		{"expired flag", models.Booking{Expired: true, ExpiryTime: now.Add(time.Minute)}, false},
	}
	for _, tc := range cases {
		if got := OccupiesCapacity(tc.b, now); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestHeldSeatsAndRemaining(t *testing.T) {
	r := testRules()
	now := testDay
	slot := "14:00 - 16:00"
	bookings := []models.Booking{
		{SafariDate: "2026-03-10", TimeSlot: slot, TotalSeats: 40, PaymentDone: true},
		{SafariDate: "2026-03-10", TimeSlot: slot, TotalSeats: 15, ExpiryTime: now.Add(time.Minute)},
		{SafariDate: "2026-03-10", TimeSlot: slot, TotalSeats: 9, Expired: true, ExpiryTime: now.Add(-time.Minute)},
		{SafariDate: "2026-03-10", TimeSlot: "06:00 - 08:00", TotalSeats: 5, PaymentDone: true},
		{SafariDate: "2026-03-11", TimeSlot: slot, TotalSeats: 5, PaymentDone: true},
	}
	held := HeldSeats(bookings, "2026-03-10", slot, now)
	if held != 55 {
		t.Fatalf("held: got %d want 55", held)
	}
	if left := r.RemainingSeats(held); left != 5 {
		t.Fatalf("remaining: got %d want 5", left)
	}
	if left := r.RemainingSeats(75); left != 0 {
		t.Fatalf("oversubscribed slot must report 0, got %d", left)
	}
}

func TestNextToken(t *testing.T) {
	if NextToken(0) != 1 || NextToken(7) != 8 {
		t.Fatalf("unexpected token sequence")
	}
}

func TestNormalizeCreate(t *testing.T) {
	r := testRules()
	ok := models.CreateBookingInput{
		Name: "  Asha   Rao ", Phone: "9876543210", Email: "asha@example.com",
		SafariDate: "2026-03-10", TimeSlot: "14:00 - 16:00", Adults: 2, Children: 1,
	}
	got, err := r.NormalizeCreate(ok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Asha Rao" {
		t.Fatalf("name not normalized: %q", got.Name)
	}

	bad := []func(in *models.CreateBookingInput){
		func(in *models.CreateBookingInput) { in.Phone = "98765" },
		func(in *models.CreateBookingInput) { in.Phone = "98765432ab" },
		func(in *models.CreateBookingInput) { in.Name = " " },
		func(in *models.CreateBookingInput) { in.Email = "" },
		func(in *models.CreateBookingInput) { in.Adults, in.Children = 0, 0 },
		func(in *models.CreateBookingInput) { in.Children = -1 },
		func(in *models.CreateBookingInput) { in.TimeSlot = "noon" },
		func(in *models.CreateBookingInput) { in.Adults = 61 },
	}
	for i, mutate := range bad {
		in := ok
		mutate(&in)
		if _, err := r.NormalizeCreate(in); !IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestNewHold(t *testing.T) {
	r := testRules()
	now := testDay.Add(time.Hour)
	b := r.NewHold(models.CreateBookingInput{Adults: 2, Children: 3, SafariDate: "2026-03-10", TimeSlot: "14:00 - 16:00"}, 4, now)
	if b.TotalSeats != 5 || b.PaymentAmount != 2100 || b.Token != 4 {
		t.Fatalf("unexpected hold: %+v", b)
	}
	if !b.ExpiryTime.Equal(now.Add(15*time.Minute)) || b.SafariStatus != models.StatusPending {
		t.Fatalf("unexpected hold state: %+v", b)
	}
}

func TestExpireIfStale(t *testing.T) {
	created := testDay
	b := models.Booking{ExpiryTime: created.Add(15 * time.Minute), SafariStatus: models.StatusPending}
	if ExpireIfStale(&b, created.Add(14*time.Minute)) {
		t.Fatalf("hold expired early")
	}
	if !ExpireIfStale(&b, created.Add(15*time.Minute+time.Second)) {
		t.Fatalf("hold should expire")
	}
	if !b.Expired || b.SafariStatus != models.StatusExpired {
		t.Fatalf("unexpected state: %+v", b)
	}
	if ExpireIfStale(&b, created.Add(time.Hour)) {
		t.Fatalf("second expiry must be a no-op")
	}
	paid := models.Booking{PaymentDone: true, ExpiryTime: created}
	if ExpireIfStale(&paid, created.Add(time.Hour)) {
		t.Fatalf("paid booking must never expire")
	}
}

func TestConfirmPaymentTransitions(t *testing.T) {
	now := testDay
	b := models.Booking{ID: 1, ExpiryTime: now.Add(time.Minute), SafariStatus: models.StatusPending}
	if err := ConfirmPayment(&b, models.PaymentUPI, now); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !b.PaymentDone || b.PaymentMode != models.PaymentUPI || b.SafariStatus != models.StatusConfirmed {
		t.Fatalf("unexpected state: %+v", b)
	}
	if err := ConfirmPayment(&b, models.PaymentCash, now); !IsInvalidTransition(err) {
		t.Fatalf("double confirm should be invalid transition, got %v", err)
	}

	lapsed := models.Booking{ID: 2, ExpiryTime: now, SafariStatus: models.StatusPending}
	if err := ConfirmPayment(&lapsed, models.PaymentCash, now); !IsExpired(err) {
		t.Fatalf("lapsed hold should be expired, got %v", err)
	}
	if !lapsed.Expired || lapsed.PaymentDone {
		t.Fatalf("lapsed hold should be marked expired and unpaid: %+v", lapsed)
	}

	swept := models.Booking{ID: 3, Expired: true, ExpiryTime: now.Add(time.Hour)}
	if err := ConfirmPayment(&swept, models.PaymentCash, now); !IsExpired(err) {
		t.Fatalf("expired booking should be rejected, got %v", err)
	}
}

func TestParsePaymentMode(t *testing.T) {
	if m, err := ParsePaymentMode(""); err != nil || m != models.PaymentCash {
		t.Fatalf("empty mode should default to cash, got %q %v", m, err)
	}
	if m, err := ParsePaymentMode(" UPI "); err != nil || m != models.PaymentUPI {
		t.Fatalf("got %q %v", m, err)
	}
	if _, err := ParsePaymentMode("cheque"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGateTransitions(t *testing.T) {
	now := testDay
	b := models.Booking{SafariStatus: models.StatusPending}
	if err := StartSafari(&b, now); !IsInvalidTransition(err) {
		t.Fatalf("start from pending should fail, got %v", err)
	}
	b.SafariStatus = models.StatusConfirmed
	if err := EndSafari(&b, now); !IsInvalidTransition(err) {
		t.Fatalf("end before start should fail, got %v", err)
	}
	if err := StartSafari(&b, now); err != nil || b.GateInTime == nil {
		t.Fatalf("start: %v %+v", err, b)
	}
	if err := StartSafari(&b, now); !IsInvalidTransition(err) {
		t.Fatalf("second start should fail, got %v", err)
	}
	if err := EndSafari(&b, now.Add(2*time.Hour)); err != nil || b.SafariStatus != models.StatusCompleted || b.GateOutTime == nil {
		t.Fatalf("end: %v %+v", err, b)
	}
}
