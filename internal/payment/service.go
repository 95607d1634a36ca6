package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/carparkly/carparkly-backend-api-final/internal/events"
)

// EventPublisher publishes payment lifecycle events. A nil publisher
// disables events.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type ChargeRequest struct {
	BookingID string
	ClientID  string
	Amount    int64
	CardToken string
}

type Service interface {
	// Charge captures a card payment for a booking. Declined charges
	// are persisted as failed payments and reported as ErrChargeFailed.
	Charge(ctx context.Context, req ChargeRequest) (*Payment, error)

	GetByID(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, filter Filter) ([]*Payment, int, error)

	// ProcessRefund refunds a paid payment in full. Refunding an
	// already refunded payment is a no-op.
	ProcessRefund(ctx context.Context, paymentID string) error
}

type service struct {
	repo     Repository
	gateway  Gateway
	events   EventPublisher
	currency string
}

func NewService(repo Repository, gateway Gateway, pub EventPublisher, currency string) Service {
	return &service{
		repo:     repo,
		gateway:  gateway,
		events:   pub,
		currency: currency,
	}
}

func (s *service) Charge(ctx context.Context, req ChargeRequest) (*Payment, error) {
	if req.Amount <= 0 || req.CardToken == "" || req.BookingID == "" {
		return nil, ErrInvalidCharge
	}

	metadata := map[string]any{"booking_id": req.BookingID}

	result, err := s.gateway.Charge(ctx, req.Amount, s.currency, req.CardToken, metadata)
	if err != nil {
		return nil, err
	}

	p := &Payment{
		BookingID: req.BookingID,
		ClientID:  req.ClientID,
		Amount:    req.Amount,
		Currency:  s.currency,
		ChargeID:  result.ChargeID,
		Status:    StatusPaid,
	}

	if !result.Paid {
		p.Status = StatusFailed
		log.Printf("charge %s for booking %s declined: %s %s",
			result.ChargeID, req.BookingID, result.FailureCode, result.FailureMessage)
		if err := s.repo.Create(ctx, p); err != nil && !errors.Is(err, ErrAlreadyPaid) {
			return nil, err
		}
		return nil, ErrChargeFailed
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// The card was captured but the row was lost to a concurrent
		// payment. Give the money back before reporting the conflict.
		if errors.Is(err, ErrAlreadyPaid) {
			if _, refundErr := s.gateway.Refund(ctx, result.ChargeID, req.Amount); refundErr != nil {
				log.Printf("compensating refund of charge %s failed: %v", result.ChargeID, refundErr)
			}
		}
		return nil, err
	}

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Payment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ProcessRefund(ctx context.Context, paymentID string) error {
	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	if p.Status == StatusRefunded {
		return nil
	}
	if p.Status != StatusPaid {
		return ErrNotRefundable
	}

	refundID, err := s.gateway.Refund(ctx, p.ChargeID, p.Amount)
	if err != nil {
		return fmt.Errorf("refund charge %s: %w", p.ChargeID, err)
	}

	if err := s.repo.MarkRefunded(ctx, p.ID, refundID); err != nil {
		if errors.Is(err, errAlreadyRefunded) {
			return nil
		}
		return err
	}

	p.Status = StatusRefunded
	p.RefundID = &refundID

	s.publishRefunded(ctx, p)

	return nil
}

func (s *service) publishRefunded(ctx context.Context, p *Payment) {
	if s.events == nil {
		return
	}

	ev := events.PaymentEvent{
		PaymentID: p.ID,
		BookingID: p.BookingID,
		ClientID:  p.ClientID,
		Amount:    p.Amount,
		Currency:  p.Currency,
	}
	if p.RefundID != nil {
		ev.RefundID = *p.RefundID
	}

	if err := s.events.PublishJSON(ctx, events.KeyPaymentRefunded, ev); err != nil {
		log.Printf("publish %s for payment %s failed: %v", events.KeyPaymentRefunded, p.ID, err)
	}
}
