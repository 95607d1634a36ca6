package payout

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("payout not found")
	ErrInvalidAmount = errors.New("payout amount must be positive")
	ErrInvalidPeriod = errors.New("payout period start must be before its end")
	ErrInvalidStatus = errors.New("invalid payout status")
	ErrNotPending    = errors.New("payout has already been settled")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed:
		return true
	}
	return false
}

// Payout is money owed to a partner for bookings completed in a period.
// Amounts are in the smallest currency unit.
type Payout struct {
	ID          string
	PartnerID   string
	Amount      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      Status
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing payouts.
type Filter struct {
	PartnerID string
	Status    string
	Page      int
	PageSize  int
}
