package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/penalty"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
)

type IssuePenaltyRequest struct {
	ClientID  string  `json:"client_id" binding:"required,uuid"`
	BookingID *string `json:"booking_id" binding:"omitempty,uuid"`
	Reason    string  `json:"reason" binding:"required"`
	Amount    int64   `json:"amount" binding:"required,gt=0"`
}

// ListPenaltiesRequest defines query parameters for listing penalties.
type ListPenaltiesRequest struct {
	request.ListParams
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=issued paid waived"`
}

type UpdatePenaltyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=issued paid waived"`
}

type PenaltyResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	BookingID *string   `json:"booking_id,omitempty"`
	Reason    string    `json:"reason"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPenaltyResponse(p *penalty.Penalty) PenaltyResponse {
	return PenaltyResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		BookingID: p.BookingID,
		Reason:    p.Reason,
		Amount:    p.Amount,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
