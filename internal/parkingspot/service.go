package parkingspot

import (
	"context"
	"strings"
)

// Service defines business logic for parking spots.
type Service interface {
	Create(ctx context.Context, partnerID string, req CreateRequest) (*Spot, error)
	GetByID(ctx context.Context, id string) (*Spot, error)
	List(ctx context.Context, filter Filter) ([]*Spot, int, error)
	Update(ctx context.Context, id, partnerID string, req UpdateRequest) (*Spot, error)
	Delete(ctx context.Context, id, partnerID string) error

	// AddPhoto attaches an uploaded file to the spot's photo list.
	AddPhoto(ctx context.Context, id, partnerID, fileID string) (*Spot, error)
	// RemovePhoto detaches a file from the spot's photo list. The file
	// itself stays in storage.
	RemovePhoto(ctx context.Context, id, partnerID, fileID string) (*Spot, error)
}

// CreateRequest carries the fields for a new parking spot.
type CreateRequest struct {
	Name         string
	Description  *string
	Address      string
	City         string
	Latitude     float64
	Longitude    float64
	PricePerHour int64
	Photos       []string
}

// UpdateRequest carries the editable spot fields. Nil means unchanged.
type UpdateRequest struct {
	Name         *string
	Description  *string
	Address      *string
	City         *string
	Latitude     *float64
	Longitude    *float64
	PricePerHour *int64
	Photos       []string
	Status       *Status
}

type service struct {
	repo Repository
}

// NewService creates a new parking spot Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, partnerID string, req CreateRequest) (*Spot, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.PricePerHour <= 0 {
		return nil, ErrInvalidPrice
	}

	sp := &Spot{
		PartnerID:    partnerID,
		Name:         name,
		Description:  req.Description,
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PricePerHour: req.PricePerHour,
		Photos:       req.Photos,
		Status:       StatusAvailable,
	}
	if sp.Photos == nil {
		sp.Photos = []string{}
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Spot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Spot, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id, partnerID string, req UpdateRequest) (*Spot, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp.PartnerID != partnerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		sp.Name = name
	}
	if req.Description != nil {
		sp.Description = req.Description
	}
	if req.Address != nil {
		sp.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		sp.City = strings.TrimSpace(*req.City)
	}
	if req.Latitude != nil {
		sp.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		sp.Longitude = *req.Longitude
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return nil, ErrInvalidPrice
		}
		sp.PricePerHour = *req.PricePerHour
	}
	if req.Photos != nil {
		sp.Photos = req.Photos
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		sp.Status = *req.Status
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) Delete(ctx context.Context, id, partnerID string) error {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sp.PartnerID != partnerID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) AddPhoto(ctx context.Context, id, partnerID, fileID string) (*Spot, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp.PartnerID != partnerID {
		return nil, ErrNotOwner
	}

	for _, existing := range sp.Photos {
		if existing == fileID {
			return sp, nil
		}
	}
	sp.Photos = append(sp.Photos, fileID)

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) RemovePhoto(ctx context.Context, id, partnerID, fileID string) (*Spot, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp.PartnerID != partnerID {
		return nil, ErrNotOwner
	}

	kept := make([]string, 0, len(sp.Photos))
	for _, existing := range sp.Photos {
		if existing != fileID {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(sp.Photos) {
		return nil, ErrPhotoNotFound
	}
	sp.Photos = kept

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}
