package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// bookingsCreated counts successful booking creations by cylinder type.
	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of bookings created.",
		},
		[]string{"cylinder_type"},
	)

	// bookingsCancelled counts successful cancellations.
	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Total number of bookings cancelled.",
		},
	)
)

func init() {
	prometheus.MustRegister(bookingsCreated, bookingsCancelled)
}
