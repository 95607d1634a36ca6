package http

import (
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/faq"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
)

// ListFaqsRequest defines query parameters for listing faqs.
type ListFaqsRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
}

// Validate performs custom validation for ListFaqsRequest.
func (r *ListFaqsRequest) Validate() error {
	return nil
}

type CreateFaqRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Position int    `json:"position" binding:"omitempty,min=0"`
}

// Validate performs custom validation for CreateFaqRequest.
func (r *CreateFaqRequest) Validate() error {
	return nil
}

type UpdateFaqRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Position *int    `json:"position" binding:"omitempty,min=0"`
}

// Validate performs custom validation for UpdateFaqRequest.
func (r *UpdateFaqRequest) Validate() error {
	return nil
}

type FaqResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewFaqResponse(f *faq.Faq) FaqResponse {
	return FaqResponse{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		Position:  f.Position,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
