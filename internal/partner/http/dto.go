package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
)

// CreatePartnerRequest defines the payload for creating a partner profile.
type CreatePartnerRequest struct {
	CompanyName string  `json:"company_name" binding:"required"`
	Phone       *string `json:"phone"`
}

// Validate performs custom validation for CreatePartnerRequest.
func (r *CreatePartnerRequest) Validate() error {
	return nil
}

// UpdatePartnerRequest defines the partner-editable fields.
type UpdatePartnerRequest struct {
	CompanyName *string `json:"company_name"`
	Phone       *string `json:"phone"`
}

// Validate performs custom validation for UpdatePartnerRequest.
func (r *UpdatePartnerRequest) Validate() error {
	return nil
}

// UpdatePartnerStatusRequest defines the admin status change payload.
type UpdatePartnerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active suspended"`
}

// Validate performs custom validation for UpdatePartnerStatusRequest.
func (r *UpdatePartnerStatusRequest) Validate() error {
	return nil
}

// ListPartnersRequest defines query parameters for listing partners.
type ListPartnersRequest struct {
	request.ListParams
	CompanyName string `form:"company_name"`
	Status      string `form:"status" binding:"omitempty,oneof=pending active suspended"`
}

// Validate performs custom validation for ListPartnersRequest.
func (r *ListPartnersRequest) Validate() error {
	return nil
}

// ListAuditLogRequest defines query parameters for the audit trail.
type ListAuditLogRequest struct {
	request.ListParams
}

// Validate performs custom validation for ListAuditLogRequest.
func (r *ListAuditLogRequest) Validate() error {
	return nil
}

// PartnerResponse is the shape of partner data in API responses.
type PartnerResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CompanyName string    `json:"company_name"`
	Phone       *string   `json:"phone"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPartnerResponse converts a domain partner.Partner to a PartnerResponse.
func NewPartnerResponse(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		CompanyName: p.CompanyName,
		Phone:       p.Phone,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// AuditEntryResponse is one audit trail line in API responses.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	PartnerID string    `json:"partner_id"`
	BookingID *string   `json:"booking_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuditEntryResponse converts a domain partner.AuditEntry to its DTO.
func NewAuditEntryResponse(e *partner.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        e.ID,
		PartnerID: e.PartnerID,
		BookingID: e.BookingID,
		Action:    e.Action,
		CreatedAt: e.CreatedAt,
	}
}
