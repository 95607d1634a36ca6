package subscription

import (
	"context"
)

type Service interface {
	// Subscribe opens a new plan term for the partner. Lapsed active
	// terms are expired first so a partner whose term ran out can
	// subscribe again.
	Subscribe(ctx context.Context, partnerID string, plan Plan) (*Subscription, error)

	// Cancel ends the partner's subscription. Only active terms can be
	// cancelled, and only by their owner.
	Cancel(ctx context.Context, id, partnerID string) (*Subscription, error)

	GetByID(ctx context.Context, id string) (*Subscription, error)
	List(ctx context.Context, filter Filter) ([]*Subscription, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Subscribe(ctx context.Context, partnerID string, plan Plan) (*Subscription, error) {
	if !ValidPlan(plan) {
		return nil, ErrInvalidPlan
	}

	if _, err := s.repo.ExpireLapsed(ctx, partnerID); err != nil {
		return nil, err
	}

	sub := &Subscription{
		PartnerID: partnerID,
		Plan:      plan,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) Cancel(ctx context.Context, id, partnerID string) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.PartnerID != partnerID {
		return nil, ErrNotOwner
	}
	if sub.Status != StatusActive {
		return nil, ErrNotActive
	}

	if err := s.repo.UpdateStatus(ctx, sub.ID, StatusCancelled); err != nil {
		return nil, err
	}
	sub.Status = StatusCancelled
	return sub, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Subscription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Subscription, int, error) {
	return s.repo.List(ctx, filter)
}
