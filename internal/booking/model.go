package booking

import (
	"net/http"
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict       = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange   = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition  = apperror.New(http.StatusConflict, "invalid booking status transition")
	ErrPartnerUnavailable = apperror.New(http.StatusUnprocessableEntity, "partner is not accepting bookings")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast      = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
)

type Booking struct {
	ID            string
	ClientID      string
	ParkingSpotID string
	PartnerID     string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
	Amount        int64 // total charge in the smallest currency unit
	PaymentID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Filter struct {
	ClientID      string
	PartnerID     string
	ParkingSpotID string
	Status        string
	StartTime     *time.Time // Filter bookings starting after this time
	EndTime       *time.Time // Filter bookings ending before this time
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}

// Quote computes the total charge for a window at an hourly rate.
// Partial hours are billed as full hours.
func Quote(pricePerHour int64, start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}

	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours * pricePerHour
}
