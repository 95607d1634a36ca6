package penalty

import (
	"context"
	"strings"
)

type IssueRequest struct {
	ClientID  string
	BookingID *string
	Reason    string
	Amount    int64
}

type Service interface {
	// Issue raises a new penalty against a client. New penalties start
	// in status issued.
	Issue(ctx context.Context, req IssueRequest) (*Penalty, error)
	GetByID(ctx context.Context, id string) (*Penalty, error)
	List(ctx context.Context, filter Filter) ([]*Penalty, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Penalty, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Issue(ctx context.Context, req IssueRequest) (*Penalty, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	p := &Penalty{
		ClientID:  req.ClientID,
		BookingID: req.BookingID,
		Reason:    req.Reason,
		Amount:    req.Amount,
		Status:    StatusIssued,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Penalty, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Penalty, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Penalty, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
