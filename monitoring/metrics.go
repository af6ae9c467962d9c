package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "Total booking operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	sevaBookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seva_booking_operations_total",
			Help: "Total seva booking operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

func RecordBookingOperation(operation, outcome string) {
	bookingOperations.WithLabelValues(operation, outcome).Inc()
}

func RecordSevaBookingOperation(operation, outcome string) {
	sevaBookingOperations.WithLabelValues(operation, outcome).Inc()
}
