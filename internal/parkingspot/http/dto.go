package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/parkingspot"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
)

// CreateSpotRequest defines the payload for listing a new parking spot.
type CreateSpotRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  *string  `json:"description"`
	Address      string   `json:"address" binding:"required"`
	City         string   `json:"city" binding:"required"`
	Latitude     float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude    float64  `json:"longitude" binding:"min=-180,max=180"`
	PricePerHour int64    `json:"price_per_hour" binding:"required,gt=0"`
	Photos       []string `json:"photos" binding:"omitempty,dive,uuid"`
}

// Validate performs custom validation for CreateSpotRequest.
func (r *CreateSpotRequest) Validate() error {
	return nil
}

// UpdateSpotRequest defines the editable spot fields.
type UpdateSpotRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	PricePerHour *int64   `json:"price_per_hour" binding:"omitempty,gt=0"`
	Photos       []string `json:"photos" binding:"omitempty,dive,uuid"`
	Status       *string  `json:"status" binding:"omitempty,oneof=available unavailable maintenance"`
}

// Validate performs custom validation for UpdateSpotRequest.
func (r *UpdateSpotRequest) Validate() error {
	return nil
}

// RemovePhotoRequest identifies one photo of one spot.
type RemovePhotoRequest struct {
	ID     string `uri:"id" binding:"required,uuid"`
	FileID string `uri:"fileId" binding:"required,uuid"`
}

// ListSpotsRequest defines query parameters for browsing parking spots.
type ListSpotsRequest struct {
	request.ListParams
	PartnerID string `form:"partner_id" binding:"omitempty,uuid"`
	City      string `form:"city"`
	Keyword   string `form:"keyword"`
	Status    string `form:"status" binding:"omitempty,oneof=available unavailable maintenance"`
	MaxPrice  int64  `form:"max_price" binding:"omitempty,gt=0"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name price_per_hour created_at"`
}

// Validate performs custom validation for ListSpotsRequest.
func (r *ListSpotsRequest) Validate() error {
	return nil
}

// SpotResponse is the shape of parking spot data in API responses.
type SpotResponse struct {
	ID           string    `json:"id"`
	PartnerID    string    `json:"partner_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	PricePerHour int64     `json:"price_per_hour"`
	Photos       []string  `json:"photos"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSpotResponse converts a domain parkingspot.Spot to a SpotResponse.
func NewSpotResponse(sp *parkingspot.Spot) SpotResponse {
	photos := sp.Photos
	if photos == nil {
		photos = []string{}
	}

	return SpotResponse{
		ID:           sp.ID,
		PartnerID:    sp.PartnerID,
		Name:         sp.Name,
		Description:  sp.Description,
		Address:      sp.Address,
		City:         sp.City,
		Latitude:     sp.Latitude,
		Longitude:    sp.Longitude,
		PricePerHour: sp.PricePerHour,
		Photos:       photos,
		Status:       string(sp.Status),
		CreatedAt:    sp.CreatedAt,
		UpdatedAt:    sp.UpdatedAt,
	}
}
