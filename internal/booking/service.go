package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/events"
)

// Pending bookings older than this are swept up and auto-cancelled.
const expirationWindow = 30 * time.Minute

// One sweep processes at most this many bookings.
const sweepBatchSize = 500

const autoCancelAction = "Booking auto-cancelled due to expiration"

// PartnerDirectory exposes the partner lookups the booking flow needs.
type PartnerDirectory interface {
	IsBookable(ctx context.Context, partnerID string) (bool, error)
	AppendAuditLog(ctx context.Context, partnerID, bookingID, action string) error
	AppendAuditLogOnce(ctx context.Context, partnerID, bookingID, action, dedupeKey string) error
}

// RefundProcessor issues refunds for captured payments. Implementations
// must be idempotent: refunding an already refunded payment is a no-op.
type RefundProcessor interface {
	ProcessRefund(ctx context.Context, paymentID string) error
}

// EventPublisher publishes booking lifecycle events. A nil publisher
// disables events.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type CreateRequest struct {
	ClientID      string
	ParkingSpotID string
	PartnerID     string
	StartTime     time.Time
	EndTime       time.Time
	Amount        int64
	Status        Status // empty means pending
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel cancels the booking on behalf of the client who owns it,
	// refunding its payment when one exists. Safe to retry.
	Cancel(ctx context.Context, bookingID, clientID string) error

	// UpdateStatus applies an explicit status change after validating
	// the transition, and records it in the partner audit log.
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)

	// Confirm attaches a successful payment and moves the booking to
	// confirmed.
	Confirm(ctx context.Context, bookingID, paymentID string) (*Booking, error)

	// AutoCancelExpired cancels pending bookings older than the
	// expiration window and returns how many were cancelled.
	AutoCancelExpired(ctx context.Context) (int, error)

	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	partners PartnerDirectory
	refunds  RefundProcessor
	events   EventPublisher

	now func() time.Time
}

func NewService(repo Repository, partners PartnerDirectory, refunds RefundProcessor, pub EventPublisher) Service {
	return &service{
		repo:     repo,
		partners: partners,
		refunds:  refunds,
		events:   pub,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate Time Range
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(s.now().UTC()) {
		return nil, ErrStartTimePast
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	// 2. Validate Partner is bookable
	bookable, err := s.partners.IsBookable(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return nil, ErrPartnerUnavailable
	}

	// 3. Check for overlaps against the partner's confirmed bookings
	hasOverlap, err := s.repo.HasOverlap(ctx, req.PartnerID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	// 4. Create Booking. The no-overlap constraint in the database is
	// the backstop for races between the check above and the insert.
	booking := &Booking{
		ClientID:      req.ClientID,
		ParkingSpotID: req.ParkingSpotID,
		PartnerID:     req.PartnerID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        status,
		Amount:        req.Amount,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.KeyBookingCreated, booking)

	return booking, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// cancelStep is one stage of the cancellation saga. Every step must be
// idempotent so the whole cancellation can be retried after a partial
// failure.
type cancelStep struct {
	name string
	run  func(ctx context.Context, b *Booking) error
}

func (s *service) Cancel(ctx context.Context, bookingID, clientID string) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if b.ClientID != clientID {
		return ErrPermissionDenied
	}

	// A booking already cancelled re-enters the saga so an earlier
	// partial failure (e.g. refund done, audit missing) gets finished.
	if b.Status != StatusCancelled && !CanTransition(b.Status, StatusCancelled) {
		return ErrInvalidTransition
	}

	steps := []cancelStep{
		{name: "refund-payment", run: s.refundStep},
		{name: "audit-log", run: s.cancelAuditStep},
		{name: "mark-cancelled", run: s.markCancelledStep},
	}

	for _, step := range steps {
		if err := step.run(ctx, b); err != nil {
			return fmt.Errorf("cancel booking %s: step %s: %w", b.ID, step.name, err)
		}
	}

	s.publish(ctx, events.KeyBookingCancelled, b)

	return nil
}

// refundStep refunds the booking payment in full. The payment service
// skips payments that are already refunded.
func (s *service) refundStep(ctx context.Context, b *Booking) error {
	if b.PaymentID == nil || *b.PaymentID == "" {
		return nil
	}
	return s.refunds.ProcessRefund(ctx, *b.PaymentID)
}

// cancelAuditStep records the cancellation in the partner audit log,
// deduplicated per booking.
func (s *service) cancelAuditStep(ctx context.Context, b *Booking) error {
	return s.partners.AppendAuditLogOnce(ctx, b.PartnerID, b.ID, "Booking cancelled by client", "booking-cancel:"+b.ID)
}

func (s *service) markCancelledStep(ctx context.Context, b *Booking) error {
	if b.Status == StatusCancelled {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, b.ID, StatusCancelled); err != nil {
		return err
	}
	b.Status = StatusCancelled
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(b.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, status); err != nil {
		return nil, err
	}

	prev := b.Status
	b.Status = status

	action := fmt.Sprintf("Booking status changed from %s to %s", prev, status)
	if err := s.partners.AppendAuditLog(ctx, b.PartnerID, b.ID, action); err != nil {
		return nil, fmt.Errorf("audit status change for booking %s: %w", b.ID, err)
	}

	switch status {
	case StatusConfirmed:
		s.publish(ctx, events.KeyBookingConfirmed, b)
	case StatusCancelled:
		s.publish(ctx, events.KeyBookingCancelled, b)
	}

	return b, nil
}

func (s *service) Confirm(ctx context.Context, bookingID, paymentID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(b.Status, StatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Confirm(ctx, b.ID, paymentID); err != nil {
		return nil, err
	}

	b.Status = StatusConfirmed
	b.PaymentID = &paymentID

	if err := s.partners.AppendAuditLog(ctx, b.PartnerID, b.ID, "Booking confirmed after payment"); err != nil {
		return nil, fmt.Errorf("audit confirmation for booking %s: %w", b.ID, err)
	}

	s.publish(ctx, events.KeyBookingConfirmed, b)

	return b, nil
}

func (s *service) AutoCancelExpired(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-expirationWindow)

	expired, err := s.repo.ListExpiredPending(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, b := range expired {
		// One bad row must not stall the sweep; it is retried next tick.
		if err := s.repo.UpdateStatus(ctx, b.ID, StatusCancelled); err != nil {
			log.Printf("auto-cancel booking %s failed: %v", b.ID, err)
			continue
		}
		b.Status = StatusCancelled

		if err := s.partners.AppendAuditLogOnce(ctx, b.PartnerID, b.ID, autoCancelAction, "booking-expire:"+b.ID); err != nil {
			log.Printf("audit auto-cancel for booking %s failed: %v", b.ID, err)
		}

		s.publish(ctx, events.KeyBookingCancelled, b)
		cancelled++
	}

	return cancelled, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// publish emits a lifecycle event. Event delivery is best effort and
// never fails the operation that triggered it.
func (s *service) publish(ctx context.Context, key string, b *Booking) {
	if s.events == nil {
		return
	}

	ev := events.BookingEvent{
		BookingID:     b.ID,
		ClientID:      b.ClientID,
		PartnerID:     b.PartnerID,
		ParkingSpotID: b.ParkingSpotID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
	}

	if err := s.events.PublishJSON(ctx, key, ev); err != nil {
		log.Printf("publish %s for booking %s failed: %v", key, b.ID, err)
	}
}
