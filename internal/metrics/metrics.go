package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_bookings_created_total",
		Help: "The total number of bookings created",
	})

	PaymentTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_payment_transitions_total",
			Help: "Payment status transitions by target status",
		},
		[]string{"to"},
	)

	BookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_booking_transitions_total",
			Help: "Booking status transitions applied from trip status messages",
		},
		[]string{"to"},
	)

	UploadsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_uploads_rejected_total",
			Help: "Uploaded files rejected by validation",
		},
		[]string{"kind"},
	)

	MessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_messages_consumed_total",
			Help: "Broker messages handled by outcome",
		},
		[]string{"routing_key", "outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_dashboard_cache_lookups_total",
			Help: "Dashboard cache lookups by result",
		},
		[]string{"result"},
	)
)
