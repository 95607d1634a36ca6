package support

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("support ticket not found")
	ErrSubjectRequired = errors.New("ticket subject is required")
	ErrMessageRequired = errors.New("ticket message is required")
	ErrInvalidStatus   = errors.New("invalid ticket status")
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Ticket is a support request raised by any user.
type Ticket struct {
	ID        string
	UserID    string
	Subject   string
	Message   string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing tickets.
type Filter struct {
	UserID   string
	Status   string
	Page     int
	PageSize int
}
