package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/carparkly/carparkly-backend-api-final/internal/docs"
	"github.com/carparkly/carparkly-backend-api-final/internal/events"
)

// ConsumerConfig configures the notification worker queue.
type ConsumerConfig struct {
	URL      string
	Exchange string
	Queue    string
}

const consumerPrefetch = 8

// Consumer turns booking and payment events into notification rows.
type Consumer struct {
	cfg     ConsumerConfig
	service Service

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg ConsumerConfig, service Service) *Consumer {
	return &Consumer{cfg: cfg, service: service}
}

// Connect dials RabbitMQ and binds the worker queue to the lifecycle
// routing keys.
func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s failed: %w", c.cfg.Exchange, err)
	}

	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue failed: %w", err)
	}

	keys := []string{
		events.KeyBookingCreated,
		events.KeyBookingConfirmed,
		events.KeyBookingCancelled,
		events.KeyPaymentRefunded,
	}
	for _, key := range keys {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind queue key=%s failed: %w", key, err)
		}
	}

	if err := ch.Qos(consumerPrefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

// Run consumes deliveries until ctx is cancelled. Deliveries that fail
// to process are dropped, not requeued; notifications are best effort.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handleDelivery(ctx, d); err != nil {
				log.Printf("notification consumer: key=%s err=%v", d.RoutingKey, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.KeyBookingCreated:
		ev, err := events.Decode[events.BookingEvent](d.Body)
		if err != nil {
			return err
		}
		_, err = c.service.Create(ctx, ev.ClientID, "Booking created",
			fmt.Sprintf("Your booking %s is pending payment. Reserved %s.",
				ev.BookingID, humanTimeRange(ev.StartTime, ev.EndTime)))
		return err

	case events.KeyBookingConfirmed:
		ev, err := events.Decode[events.BookingEvent](d.Body)
		if err != nil {
			return err
		}
		_, err = c.service.Create(ctx, ev.ClientID, "Booking confirmed",
			fmt.Sprintf("Your booking %s is confirmed for %s.",
				ev.BookingID, humanTimeRange(ev.StartTime, ev.EndTime)))
		return err

	case events.KeyBookingCancelled:
		ev, err := events.Decode[events.BookingEvent](d.Body)
		if err != nil {
			return err
		}
		_, err = c.service.Create(ctx, ev.ClientID, "Booking cancelled",
			fmt.Sprintf("Your booking %s has been cancelled.", ev.BookingID))
		return err

	case events.KeyPaymentRefunded:
		ev, err := events.Decode[events.PaymentEvent](d.Body)
		if err != nil {
			return err
		}
		_, err = c.service.Create(ctx, ev.ClientID, "Payment refunded",
			fmt.Sprintf("Your payment of %s for booking %s has been refunded.",
				docs.FormatAmount(ev.Amount, ev.Currency), ev.BookingID))
		return err

	default:
		log.Printf("notification consumer: skip unknown key=%s", d.RoutingKey)
		return nil
	}
}

func humanTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s - %s",
		start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
}
