package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Routing keys published to the topic exchange.
const (
	KeyBookingCreated   = "booking.created"
	KeyBookingConfirmed = "booking.confirmed"
	KeyBookingCancelled = "booking.cancelled"
	KeyPaymentRefunded  = "payment.refunded"
)

// BookingEvent is the payload for booking lifecycle events.
type BookingEvent struct {
	BookingID     string    `json:"booking_id"`
	ClientID      string    `json:"client_id"`
	PartnerID     string    `json:"partner_id"`
	ParkingSpotID string    `json:"parking_spot_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
}

// PaymentEvent is the payload for payment lifecycle events.
type PaymentEvent struct {
	PaymentID string `json:"payment_id"`
	BookingID string `json:"booking_id"`
	ClientID  string `json:"client_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	RefundID  string `json:"refund_id,omitempty"`
}

// Decode unmarshals an event body into the given payload type.
func Decode[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode event payload: %w", err)
	}
	return v, nil
}
