package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/metrics"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys published by the operations side when a trip ends.
const (
	KeyTripCompleted = "trip.completed"
	KeyTripCancelled = "trip.cancelled"
)

// TripKeys lists the routing keys TripConsumer understands.
var TripKeys = []string{KeyTripCompleted, KeyTripCancelled}

type BookingTransitions interface {
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*models.Booking, error)
}

type tripMessage struct {
	BookingID string `json:"bookingId"`
	Reason    string `json:"reason"`
}

// TripConsumer moves bookings to completed or cancelled when the trip
// status changes upstream.
type TripConsumer struct {
	bookings BookingTransitions
}

func NewTripConsumer(bookings BookingTransitions) *TripConsumer {
	return &TripConsumer{bookings: bookings}
}

// Start handles deliveries until msgs is closed or ctx is done.
func (tc *TripConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				log.Println("[TripConsumer] context done, stopping consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Println("[TripConsumer] channel closed, stopping consumer")
					return
				}
				tc.handleMessage(ctx, msg)
			}
		}
	}()
	return done
}

func (tc *TripConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	outcome := tc.process(ctx, msg)
	metrics.MessagesConsumed.WithLabelValues(msg.RoutingKey, outcome).Inc()

	switch outcome {
	case "ok", "skipped":
		msg.Ack(false)
	case "retry":
		msg.Nack(false, true)
	default:
		msg.Nack(false, false)
	}
}

func (tc *TripConsumer) process(ctx context.Context, msg amqp.Delivery) string {
	var body tripMessage
	if err := json.Unmarshal(msg.Body, &body); err != nil {
		log.Printf("[TripConsumer] failed to unmarshal: %v", err)
		return "dropped"
	}
	id, err := uuid.Parse(body.BookingID)
	if err != nil {
		log.Printf("[TripConsumer] invalid booking id %q", body.BookingID)
		return "dropped"
	}

	switch msg.RoutingKey {
	case KeyTripCompleted:
		_, err = tc.bookings.CompleteBooking(ctx, id)
	case KeyTripCancelled:
		_, err = tc.bookings.CancelBooking(ctx, id, body.Reason)
	default:
		log.Printf("[TripConsumer] unexpected routing key %q", msg.RoutingKey)
		return "dropped"
	}

	switch {
	case err == nil:
		log.Printf("[TripConsumer] applied %s to booking %s", msg.RoutingKey, id)
		return "ok"
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidState):
		// Redelivery would fail the same way.
		log.Printf("[TripConsumer] skipping %s for booking %s: %v", msg.RoutingKey, id, err)
		return "skipped"
	default:
		log.Printf("[TripConsumer] failed %s for booking %s: %v", msg.RoutingKey, id, err)
		return "retry"
	}
}
