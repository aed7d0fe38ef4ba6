package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestCountersAccumulate(t *testing.T) {
	Register()
	Register()

	before := counterValue(t, holdsExpired)
	AddHoldsExpired(3)
	AddHoldsExpired(0)
	if got := counterValue(t, holdsExpired) - before; got != 3 {
		t.Fatalf("holds expired delta: got %v want 3", got)
	}

	slot := bookingsCreated.WithLabelValues("06:00 - 08:00")
	before = counterValue(t, slot)
	IncBookingCreated("06:00 - 08:00")
	if got := counterValue(t, slot) - before; got != 1 {
		t.Fatalf("bookings created delta: got %v want 1", got)
	}
}
