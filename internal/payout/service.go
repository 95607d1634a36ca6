package payout

import (
	"context"
	"time"
)

type CreateRequest struct {
	PartnerID   string
	Amount      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type Service interface {
	// Create records a payout owed for a period. New payouts start in
	// status pending.
	Create(ctx context.Context, req CreateRequest) (*Payout, error)
	GetByID(ctx context.Context, id string) (*Payout, error)
	List(ctx context.Context, filter Filter) ([]*Payout, int, error)
	// UpdateStatus settles a pending payout as paid or failed. Settled
	// payouts cannot be reopened.
	UpdateStatus(ctx context.Context, id string, status Status) (*Payout, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Payout, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !req.PeriodStart.Before(req.PeriodEnd) {
		return nil, ErrInvalidPeriod
	}

	p := &Payout{
		PartnerID:   req.PartnerID,
		Amount:      req.Amount,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Payout, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Payout, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Payout, error) {
	if status != StatusPaid && status != StatusFailed {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
