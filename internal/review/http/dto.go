package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/review"
)

// CreateReviewRequest defines the payload for reviewing a parking spot.
type CreateReviewRequest struct {
	ParkingSpotID string `json:"parking_spot_id" binding:"required,uuid"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" binding:"omitempty,max=2000"`
}

// ListReviewsRequest defines the query parameters for listing reviews.
type ListReviewsRequest struct {
	request.ListParams
	ParkingSpotID string `form:"parking_spot_id" binding:"omitempty,uuid"`
	ClientID      string `form:"client_id" binding:"omitempty,uuid"`
}

// ReviewResponse is the API representation of a review.
type ReviewResponse struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	ParkingSpotID string    `json:"parking_spot_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewReviewResponse(rev *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:            rev.ID,
		ClientID:      rev.ClientID,
		ParkingSpotID: rev.ParkingSpotID,
		Rating:        rev.Rating,
		Comment:       rev.Comment,
		CreatedAt:     rev.CreatedAt,
		UpdatedAt:     rev.UpdatedAt,
	}
}
