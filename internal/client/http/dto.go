package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/client"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
)

// CreateClientRequest defines the payload for creating a client profile.
type CreateClientRequest struct {
	FullName      string   `json:"full_name" binding:"required"`
	Phone         *string  `json:"phone"`
	LicensePlates []string `json:"license_plates"`
}

// Validate performs custom validation for CreateClientRequest.
func (r *CreateClientRequest) Validate() error {
	return nil
}

// UpdateClientRequest defines the editable profile fields.
type UpdateClientRequest struct {
	FullName      *string  `json:"full_name"`
	Phone         *string  `json:"phone"`
	LicensePlates []string `json:"license_plates"`
}

// Validate performs custom validation for UpdateClientRequest.
func (r *UpdateClientRequest) Validate() error {
	return nil
}

// ListClientsRequest defines query parameters for listing client profiles.
type ListClientsRequest struct {
	request.ListParams
	FullName string `form:"full_name"`
	Phone    string `form:"phone"`
}

// Validate performs custom validation for ListClientsRequest.
func (r *ListClientsRequest) Validate() error {
	return nil
}

// ClientResponse is the shape of client profile data in API responses.
type ClientResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Phone         *string   `json:"phone"`
	LicensePlates []string  `json:"license_plates"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewClientResponse converts a domain client.Client to a ClientResponse.
func NewClientResponse(cl *client.Client) ClientResponse {
	plates := cl.LicensePlates
	if plates == nil {
		plates = []string{}
	}

	return ClientResponse{
		ID:            cl.ID,
		UserID:        cl.UserID,
		FullName:      cl.FullName,
		Phone:         cl.Phone,
		LicensePlates: plates,
		CreatedAt:     cl.CreatedAt,
		UpdatedAt:     cl.UpdatedAt,
	}
}
