package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/parkingspot"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
	"github.com/carparkly/carparkly-backend-api-final/internal/review"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

type Handler struct {
	service review.Service
	spots   parkingspot.Service
}

func NewHandler(service review.Service, spots parkingspot.Service) *Handler {
	return &Handler{service: service, spots: spots}
}

func isAdmin(c *gin.Context) bool {
	return auth.GetUserRole(c) == string(user.RoleAdmin)
}

// Create stores the caller's review of a parking spot.
func (h *Handler) Create(c *gin.Context) {
	var body CreateReviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if _, err := h.spots.GetByID(c.Request.Context(), body.ParkingSpotID); err != nil {
		switch {
		case errors.Is(err, parkingspot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "parking spot not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		}
		return
	}

	rev, err := h.service.Create(c.Request.Context(), review.CreateRequest{
		ClientID:      auth.GetUserID(c),
		ParkingSpotID: body.ParkingSpotID,
		Rating:        body.Rating,
		Comment:       body.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, review.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": "you have already reviewed this parking spot"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewReviewResponse(rev))
}

// List returns reviews, typically filtered by parking spot. Public.
func (h *Handler) List(c *gin.Context) {
	var req ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := review.Filter{
		ParkingSpotID: req.ParkingSpotID,
		ClientID:      req.ClientID,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}

	reviews, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	items := make([]ReviewResponse, len(reviews))
	for i, rev := range reviews {
		items[i] = NewReviewResponse(rev)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	rev, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get review"})
		}
		return
	}

	c.JSON(http.StatusOK, NewReviewResponse(rev))
}

// Delete removes a review. Allowed for its author and for admins.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	rev, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		}
		return
	}

	if rev.ClientID != auth.GetUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
