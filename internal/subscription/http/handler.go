package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
	"github.com/carparkly/carparkly-backend-api-final/internal/subscription"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

type Handler struct {
	service  subscription.Service
	partners partner.Service
}

func NewHandler(service subscription.Service, partners partner.Service) *Handler {
	return &Handler{service: service, partners: partners}
}

// resolvePartner loads the partner profile of the authenticated user.
func (h *Handler) resolvePartner(c *gin.Context) (*partner.Partner, bool) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	p, err := h.partners.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, partner.ErrNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "partner profile required"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get partner profile"})
		}
		return nil, false
	}
	return p, true
}

func (h *Handler) Subscribe(c *gin.Context) {
	var body SubscribeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), p.ID, subscription.Plan(body.Plan))
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrInvalidPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, subscription.ErrActiveExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewSubscriptionResponse(sub))
}

// ListMine returns the authenticated partner's subscription history.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListSubscriptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	filter := subscription.Filter{
		PartnerID: p.ID,
		Plan:      req.Plan,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	subs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subscriptions"})
		return
	}

	items := make([]SubscriptionResponse, len(subs))
	for i, sub := range subs {
		items[i] = NewSubscriptionResponse(sub)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription id"})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	sub, err := h.service.Cancel(c.Request.Context(), req.ID, p.ID)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
		case errors.Is(err, subscription.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, subscription.ErrNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, NewSubscriptionResponse(sub))
}

// List returns all subscriptions. Admin only.
func (h *Handler) List(c *gin.Context) {
	var req ListSubscriptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := subscription.Filter{
		PartnerID: req.PartnerID,
		Plan:      req.Plan,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	subs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subscriptions"})
		return
	}

	items := make([]SubscriptionResponse, len(subs))
	for i, sub := range subs {
		items[i] = NewSubscriptionResponse(sub)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription id"})
		return
	}

	sub, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get subscription"})
		}
		return
	}

	if auth.GetUserRole(c) != string(user.RoleAdmin) {
		p, err := h.partners.GetByUserID(c.Request.Context(), auth.GetUserID(c))
		if err != nil || p.ID != sub.PartnerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
	}

	c.JSON(http.StatusOK, NewSubscriptionResponse(sub))
}
