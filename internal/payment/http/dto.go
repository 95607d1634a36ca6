package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/payment"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
)

type CreatePaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	CardToken string `json:"card_token" binding:"required"`
}

// ListPaymentsRequest defines query parameters for listing payments.
type ListPaymentsRequest struct {
	request.ListParams
	BookingID string `form:"booking_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=paid refunded failed"`
}

type PaymentResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	RefundID  *string   `json:"refund_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		RefundID:  p.RefundID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
