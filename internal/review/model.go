package review

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("parking spot already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Review is a client's rating of a parking spot. A client may review a
// given spot once.
type Review struct {
	ID            string
	ClientID      string
	ParkingSpotID string
	Rating        int
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing reviews.
type Filter struct {
	ParkingSpotID string
	ClientID      string
	Page          int
	PageSize      int
}
