package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	"github.com/carparkly/carparkly-backend-api-final/internal/payout"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

type Handler struct {
	service  payout.Service
	partners partner.Service
}

func NewHandler(service payout.Service, partners partner.Service) *Handler {
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

// Create records a payout owed to a partner. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var body CreatePayoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if _, err := h.partners.GetByID(c.Request.Context(), body.PartnerID); err != nil {
		switch {
		case errors.Is(err, partner.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "partner not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payout"})
		}
		return
	}

	p, err := h.service.Create(c.Request.Context(), payout.CreateRequest{
		PartnerID:   body.PartnerID,
		Amount:      body.Amount,
		PeriodStart: body.PeriodStart,
		PeriodEnd:   body.PeriodEnd,
	})
	if err != nil {
		switch {
		case errors.Is(err, payout.ErrInvalidAmount), errors.Is(err, payout.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payout"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewPayoutResponse(p))
}

// List returns all payouts. Admin only.
func (h *Handler) List(c *gin.Context) {
	var req ListPayoutsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := payout.Filter{
		PartnerID: req.PartnerID,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	payouts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payouts"})
		return
	}

	items := make([]PayoutResponse, len(payouts))
	for i, p := range payouts {
		items[i] = NewPayoutResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// ListMine returns the authenticated partner's payout history.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListPayoutsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	filter := payout.Filter{
		PartnerID: p.ID,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	payouts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payouts"})
		return
	}

	items := make([]PayoutResponse, len(payouts))
	for i, p := range payouts {
		items[i] = NewPayoutResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payout id"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, payout.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payout not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get payout"})
		}
		return
	}

	if auth.GetUserRole(c) != string(user.RoleAdmin) {
		own, err := h.partners.GetByUserID(c.Request.Context(), auth.GetUserID(c))
		if err != nil || own.ID != p.PartnerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
	}

	c.JSON(http.StatusOK, NewPayoutResponse(p))
}

// UpdateStatus settles a pending payout as paid or failed. Admin only.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payout id"})
		return
	}

	var body UpdatePayoutStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, payout.Status(body.Status))
	if err != nil {
		switch {
		case errors.Is(err, payout.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payout not found"})
		case errors.Is(err, payout.ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, payout.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payout status"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPayoutResponse(p))
}
