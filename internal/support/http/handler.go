package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
	"github.com/carparkly/carparkly-backend-api-final/internal/support"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

type Handler struct {
	service support.Service
}

func NewHandler(service support.Service) *Handler {
	return &Handler{service: service}
}

func isAdmin(c *gin.Context) bool {
	return auth.GetUserRole(c) == string(user.RoleAdmin)
}

// Create opens a support ticket for the caller.
func (h *Handler) Create(c *gin.Context) {
	var body CreateTicketRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), support.CreateRequest{
		UserID:  auth.GetUserID(c),
		Subject: body.Subject,
		Message: body.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, support.ErrSubjectRequired), errors.Is(err, support.ErrMessageRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewTicketResponse(t))
}

func (h *Handler) List(c *gin.Context) {
	var req ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := support.Filter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	// Non-admins only see their own tickets.
	if !isAdmin(c) {
		filter.UserID = auth.GetUserID(c)
	}

	tickets, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}

	items := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		items[i] = NewTicketResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, support.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get ticket"})
		}
		return
	}

	if t.UserID != auth.GetUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewTicketResponse(t))
}

// UpdateStatus moves a ticket through its workflow. Admin only.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	var body UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, support.Status(body.Status))
	if err != nil {
		switch {
		case errors.Is(err, support.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		case errors.Is(err, support.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket status"})
		}
		return
	}

	c.JSON(http.StatusOK, NewTicketResponse(t))
}
