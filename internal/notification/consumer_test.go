package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carparkly/carparkly-backend-api-final/internal/events"
)

type recordingService struct {
	created []Notification
	err     error
}

func (s *recordingService) Create(_ context.Context, userID, title, body string) (*Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	n := Notification{UserID: userID, Title: title, Body: body}
	s.created = append(s.created, n)
	return &n, nil
}

func (s *recordingService) List(_ context.Context, _ Filter) ([]*Notification, int, error) {
	return nil, 0, nil
}

func (s *recordingService) MarkRead(_ context.Context, _, _ string) error { return nil }

func (s *recordingService) MarkAllRead(_ context.Context, _ string) (int64, error) { return 0, nil }

func delivery(t *testing.T, key string, payload any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return amqp.Delivery{RoutingKey: key, Body: body}
}

func TestHandleDelivery(t *testing.T) {
	ctx := context.Background()

	bookingEvent := events.BookingEvent{
		BookingID: "booking-1",
		ClientID:  "client-1",
		PartnerID: "partner-1",
		StartTime: time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC),
		Status:    "pending",
	}

	t.Run("booking created", func(t *testing.T) {
		svc := &recordingService{}
		c := NewConsumer(ConsumerConfig{}, svc)

		err := c.handleDelivery(ctx, delivery(t, events.KeyBookingCreated, bookingEvent))
		require.NoError(t, err)

		require.Len(t, svc.created, 1)
		n := svc.created[0]
		assert.Equal(t, "client-1", n.UserID)
		assert.Equal(t, "Booking created", n.Title)
		assert.Contains(t, n.Body, "booking-1")
		assert.Contains(t, n.Body, "2025-06-01 14:00 - 2025-06-01 16:00")
	})

	t.Run("booking confirmed", func(t *testing.T) {
		svc := &recordingService{}
		c := NewConsumer(ConsumerConfig{}, svc)

		err := c.handleDelivery(ctx, delivery(t, events.KeyBookingConfirmed, bookingEvent))
		require.NoError(t, err)

		require.Len(t, svc.created, 1)
		assert.Equal(t, "Booking confirmed", svc.created[0].Title)
	})

	t.Run("booking cancelled", func(t *testing.T) {
		svc := &recordingService{}
		c := NewConsumer(ConsumerConfig{}, svc)

		err := c.handleDelivery(ctx, delivery(t, events.KeyBookingCancelled, bookingEvent))
		require.NoError(t, err)

		require.Len(t, svc.created, 1)
		assert.Equal(t, "Booking cancelled", svc.created[0].Title)
	})

	t.Run("payment refunded formats the amount", func(t *testing.T) {
		svc := &recordingService{}
		c := NewConsumer(ConsumerConfig{}, svc)

		ev := events.PaymentEvent{
			PaymentID: "payment-1",
			BookingID: "booking-1",
			ClientID:  "client-1",
			Amount:    12050,
			Currency:  "thb",
			RefundID:  "rfnd_1",
		}

		err := c.handleDelivery(ctx, delivery(t, events.KeyPaymentRefunded, ev))
		require.NoError(t, err)

		require.Len(t, svc.created, 1)
		n := svc.created[0]
		assert.Equal(t, "Payment refunded", n.Title)
		assert.Contains(t, n.Body, "120.50 THB")
		assert.Contains(t, n.Body, "booking-1")
	})

	t.Run("unknown routing key is skipped", func(t *testing.T) {
		svc := &recordingService{}
		c := NewConsumer(ConsumerConfig{}, svc)

		err := c.handleDelivery(ctx, delivery(t, "booking.archived", bookingEvent))
		require.NoError(t, err)
		assert.Empty(t, svc.created)
	})

	t.Run("malformed payload errors", func(t *testing.T) {
		svc := &recordingService{}
		c := NewConsumer(ConsumerConfig{}, svc)

		err := c.handleDelivery(ctx, amqp.Delivery{
			RoutingKey: events.KeyBookingCreated,
			Body:       []byte("{broken"),
		})
		assert.Error(t, err)
		assert.Empty(t, svc.created)
	})
}
