package partner

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("partner not found")
	ErrAlreadyExists       = errors.New("partner profile already exists")
	ErrCompanyNameRequired = errors.New("company name is required")
	ErrInvalidStatus       = errors.New("invalid partner status")
)

// Status reflects whether a partner may receive bookings. Only active
// partners are bookable.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// ValidStatus reports whether s is a known partner status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended:
		return true
	}
	return false
}

// Partner is a parking provider on the marketplace. New partners start
// in pending until an admin activates them.
type Partner struct {
	ID          string // UUID
	UserID      string
	CompanyName string
	Phone       *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditEntry is one line in a partner's booking audit trail.
type AuditEntry struct {
	ID        string // UUID
	PartnerID string
	BookingID *string
	Action    string
	CreatedAt time.Time
}

// Filter defines filter options for listing partners.
type Filter struct {
	CompanyName string
	Status      string

	Page      int
	PageSize  int
	SortOrder string
}
