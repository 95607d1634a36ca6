package penalty

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("penalty not found")
	ErrReasonRequired = errors.New("penalty reason is required")
	ErrInvalidAmount  = errors.New("penalty amount must be positive")
	ErrInvalidStatus  = errors.New("invalid penalty status")
)

type Status string

const (
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
	StatusWaived Status = "waived"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusIssued, StatusPaid, StatusWaived:
		return true
	}
	return false
}

// Penalty is a charge raised by an admin against a client, usually for
// a no-show or damage to a spot. Amounts are in the smallest currency
// unit.
type Penalty struct {
	ID        string
	ClientID  string
	BookingID *string
	Reason    string
	Amount    int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing penalties.
type Filter struct {
	ClientID string
	Status   string
	Page     int
	PageSize int
}
