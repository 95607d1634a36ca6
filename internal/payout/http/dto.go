package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/payout"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
)

// CreatePayoutRequest defines the payload for recording a payout.
type CreatePayoutRequest struct {
	PartnerID   string    `json:"partner_id" binding:"required,uuid"`
	Amount      int64     `json:"amount" binding:"required,min=1"`
	PeriodStart time.Time `json:"period_start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	PeriodEnd   time.Time `json:"period_end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ListPayoutsRequest defines the query parameters for listing payouts.
type ListPayoutsRequest struct {
	request.ListParams
	PartnerID string `form:"partner_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending paid failed"`
}

// UpdatePayoutStatusRequest defines the payload for settling a payout.
type UpdatePayoutStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid failed"`
}

// PayoutResponse is the API representation of a payout.
type PayoutResponse struct {
	ID          string     `json:"id"`
	PartnerID   string     `json:"partner_id"`
	Amount      int64      `json:"amount"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewPayoutResponse(p *payout.Payout) PayoutResponse {
	return PayoutResponse{
		ID:          p.ID,
		PartnerID:   p.PartnerID,
		Amount:      p.Amount,
		PeriodStart: p.PeriodStart,
		PeriodEnd:   p.PeriodEnd,
		Status:      string(p.Status),
		PaidAt:      p.PaidAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
