package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/notification"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
)

// ListNotificationsRequest defines the query parameters for listing
// the caller's notifications.
type ListNotificationsRequest struct {
	request.ListParams
	UnreadOnly bool `form:"unread_only" binding:"omitempty"`
}

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
