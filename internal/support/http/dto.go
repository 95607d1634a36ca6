package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/support"
)

// CreateTicketRequest defines the payload for opening a support ticket.
type CreateTicketRequest struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// ListTicketsRequest defines the query parameters for listing tickets.
type ListTicketsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
}

// UpdateTicketStatusRequest defines the payload for moving a ticket
// through its workflow.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress resolved closed"`
}

// TicketResponse is the API representation of a support ticket.
type TicketResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTicketResponse(t *support.Ticket) TicketResponse {
	return TicketResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Subject:   t.Subject,
		Message:   t.Message,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
