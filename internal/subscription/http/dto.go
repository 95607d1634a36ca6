package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/subscription"
)

type SubscribeRequest struct {
	Plan string `json:"plan" binding:"required,oneof=starter growth enterprise"`
}

// ListSubscriptionsRequest defines query parameters for listing
// subscriptions.
type ListSubscriptionsRequest struct {
	request.ListParams
	PartnerID string `form:"partner_id" binding:"omitempty,uuid"`
	Plan      string `form:"plan" binding:"omitempty,oneof=starter growth enterprise"`
	Status    string `form:"status" binding:"omitempty,oneof=active cancelled expired"`
}

type SubscriptionResponse struct {
	ID        string    `json:"id"`
	PartnerID string    `json:"partner_id"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSubscriptionResponse(sub *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        sub.ID,
		PartnerID: sub.PartnerID,
		Plan:      string(sub.Plan),
		Status:    string(sub.Status),
		StartsAt:  sub.StartsAt,
		EndsAt:    sub.EndsAt,
		CreatedAt: sub.CreatedAt,
		UpdatedAt: sub.UpdatedAt,
	}
}
