package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

// Notification is one in-app message shown to a user.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	IsRead    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing notifications.
type Filter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
