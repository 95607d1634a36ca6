package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/penalty"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

type Handler struct {
	service penalty.Service
}

func NewHandler(service penalty.Service) *Handler {
	return &Handler{service: service}
}

func isAdmin(c *gin.Context) bool {
	return auth.GetUserRole(c) == string(user.RoleAdmin)
}

// Issue raises a penalty against a client. Admin only.
func (h *Handler) Issue(c *gin.Context) {
	var body IssuePenaltyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.Issue(c.Request.Context(), penalty.IssueRequest{
		ClientID:  body.ClientID,
		BookingID: body.BookingID,
		Reason:    body.Reason,
		Amount:    body.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, penalty.ErrReasonRequired), errors.Is(err, penalty.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue penalty"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewPenaltyResponse(p))
}

func (h *Handler) List(c *gin.Context) {
	var req ListPenaltiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := penalty.Filter{
		ClientID: req.ClientID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	// Non-admins only see their own penalties.
	if !isAdmin(c) {
		filter.ClientID = auth.GetUserID(c)
	}

	penalties, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list penalties"})
		return
	}

	items := make([]PenaltyResponse, len(penalties))
	for i, p := range penalties {
		items[i] = NewPenaltyResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid penalty id"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, penalty.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "penalty not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get penalty"})
		}
		return
	}

	if p.ClientID != auth.GetUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewPenaltyResponse(p))
}

// UpdateStatus marks a penalty paid or waived. Admin only.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid penalty id"})
		return
	}

	var body UpdatePenaltyStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, penalty.Status(body.Status))
	if err != nil {
		switch {
		case errors.Is(err, penalty.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "penalty not found"})
		case errors.Is(err, penalty.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update penalty status"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPenaltyResponse(p))
}
