package parkingspot

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("parking spot not found")
	ErrNotOwner      = errors.New("parking spot does not belong to this partner")
	ErrNameRequired  = errors.New("parking spot name is required")
	ErrInvalidPrice  = errors.New("price per hour must be positive")
	ErrInvalidStatus = errors.New("invalid parking spot status")
	ErrPhotoNotFound = errors.New("photo not found on this parking spot")
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusMaintenance Status = "maintenance"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusMaintenance:
		return true
	}
	return false
}

// Spot is a bookable parking space listed by a partner. Prices are in
// the smallest currency unit per hour.
type Spot struct {
	ID           string // UUID
	PartnerID    string
	Name         string
	Description  *string
	Address      string
	City         string
	Latitude     float64
	Longitude    float64
	PricePerHour int64
	Photos       []string // file IDs
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines filter options for listing parking spots.
type Filter struct {
	PartnerID string
	City      string
	Keyword   string
	Status    string
	MaxPrice  int64

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
