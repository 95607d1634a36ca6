package client

import (
	"context"
	"strings"
)

// Service defines business logic for client profiles.
type Service interface {
	Create(ctx context.Context, userID string, req CreateRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByUserID(ctx context.Context, userID string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	UpdateByUserID(ctx context.Context, userID string, req UpdateRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
}

// CreateRequest carries the fields for a new client profile.
type CreateRequest struct {
	FullName      string
	Phone         *string
	LicensePlates []string
}

// UpdateRequest carries the editable profile fields. Nil means unchanged.
type UpdateRequest struct {
	FullName      *string
	Phone         *string
	LicensePlates []string
}

type service struct {
	repo Repository
}

// NewService creates a new client Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Client, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}

	cl := &Client{
		UserID:        userID,
		FullName:      fullName,
		Phone:         req.Phone,
		LicensePlates: req.LicensePlates,
	}
	if cl.LicensePlates == nil {
		cl.LicensePlates = []string{}
	}

	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Client, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateByUserID(ctx context.Context, userID string, req UpdateRequest) (*Client, error) {
	cl, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return nil, ErrFullNameRequired
		}
		cl.FullName = fullName
	}
	if req.Phone != nil {
		cl.Phone = req.Phone
	}
	if req.LicensePlates != nil {
		cl.LicensePlates = req.LicensePlates
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
