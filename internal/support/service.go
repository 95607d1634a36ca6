package support

import (
	"context"
	"strings"
)

type CreateRequest struct {
	UserID  string
	Subject string
	Message string
}

type Service interface {
	// Create opens a new ticket. New tickets start in status open.
	Create(ctx context.Context, req CreateRequest) (*Ticket, error)
	GetByID(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Ticket, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Ticket, error) {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return nil, ErrSubjectRequired
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}

	t := &Ticket{
		UserID:  req.UserID,
		Subject: subject,
		Message: message,
		Status:  StatusOpen,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Ticket, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Ticket, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
