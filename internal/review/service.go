package review

import (
	"context"
	"strings"
)

type CreateRequest struct {
	ClientID      string
	ParkingSpotID string
	Rating        int
	Comment       string
}

type Service interface {
	// Create stores a new review. A second review of the same spot by
	// the same client fails with ErrAlreadyReviewed.
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	rev := &Review{
		ClientID:      req.ClientID,
		ParkingSpotID: req.ParkingSpotID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
