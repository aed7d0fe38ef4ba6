package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "safari",
			Name:      "bookings_created_total",
			Help:      "Count of holds created by time slot.",
		},
		[]string{"slot"},
	)

	capacityRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "safari",
			Name:      "capacity_rejections_total",
			Help:      "Count of bookings rejected because the slot was full.",
		},
	)

	paymentsConfirmed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "safari",
			Name:      "payments_confirmed_total",
			Help:      "Count of confirmed payments by mode.",
		},
		[]string{"mode"},
	)

	holdsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "safari",
			Name:      "holds_expired_total",
			Help:      "Count of unpaid holds marked expired.",
		},
	)

	vehiclesOpened = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "safari",
			Name:      "vehicles_opened_total",
			Help:      "Count of vehicle manifests opened by seat packing.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, capacityRejections, paymentsConfirmed, holdsExpired, vehiclesOpened)
	})
}

func IncBookingCreated(slot string) {
	bookingsCreated.WithLabelValues(slot).Inc()
}

func IncCapacityRejection() {
	capacityRejections.Inc()
}

func IncPaymentConfirmed(mode string) {
	paymentsConfirmed.WithLabelValues(mode).Inc()
}

func AddHoldsExpired(n int) {
	if n > 0 {
		holdsExpired.Add(float64(n))
	}
}

func AddVehiclesOpened(n int) {
	if n > 0 {
		vehiclesOpened.Add(float64(n))
	}
}
