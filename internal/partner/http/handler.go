package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
)

type PartnerHandler struct {
	partnerService partner.Service
}

func NewHandler(partnerService partner.Service) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// Create creates the partner profile for the authenticated user. New
// partners start in pending and cannot take bookings until activated.
func (h *PartnerHandler) Create(c *gin.Context) {
	var req CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.partnerService.Create(c.Request.Context(), userID, partner.CreateRequest{
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, partner.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, partner.ErrCompanyNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create partner profile"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewPartnerResponse(p))
}

// Me returns the partner profile of the authenticated user.
func (h *PartnerHandler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.partnerService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, partner.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "partner profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get partner profile"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPartnerResponse(p))
}

// UpdateMe updates the partner profile of the authenticated user.
func (h *PartnerHandler) UpdateMe(c *gin.Context) {
	var req UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.partnerService.UpdateByUserID(c.Request.Context(), userID, partner.UpdateRequest{
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, partner.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "partner profile not found"})
		case errors.Is(err, partner.ErrCompanyNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update partner profile"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPartnerResponse(p))
}

// MyAuditLog returns the audit trail of the authenticated partner.
func (h *PartnerHandler) MyAuditLog(c *gin.Context) {
	var req ListAuditLogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.partnerService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, partner.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "partner profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get partner profile"})
		}
		return
	}

	h.renderAuditLog(c, p.ID, req.Page, req.PageSize)
}

// AuditLog returns the audit trail of any partner.
// Access Control: Admin only.
func (h *PartnerHandler) AuditLog(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req ListAuditLogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	h.renderAuditLog(c, uri.ID, req.Page, req.PageSize)
}

func (h *PartnerHandler) renderAuditLog(c *gin.Context, partnerID string, page, pageSize int) {
	entries, total, err := h.partnerService.ListAuditLog(c.Request.Context(), partnerID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit log"})
		return
	}

	items := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewAuditEntryResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// List retrieves a paginated list of partners with optional filtering.
// Access Control: Admin only.
func (h *PartnerHandler) List(c *gin.Context) {
	var req ListPartnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := partner.Filter{
		CompanyName: req.CompanyName,
		Status:      req.Status,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortOrder:   req.SortOrder,
	}

	partners, total, err := h.partnerService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list partners"})
		return
	}

	items := make([]PartnerResponse, len(partners))
	for i, p := range partners {
		items[i] = NewPartnerResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a partner by ID.
func (h *PartnerHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	p, err := h.partnerService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, partner.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "partner not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get partner"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPartnerResponse(p))
}

// UpdateStatus activates or suspends a partner.
// Access Control: Admin only.
func (h *PartnerHandler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdatePartnerStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	p, err := h.partnerService.UpdateStatus(c.Request.Context(), uri.ID, partner.Status(body.Status))
	if err != nil {
		switch {
		case errors.Is(err, partner.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "partner not found"})
		case errors.Is(err, partner.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update partner status"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPartnerResponse(p))
}

// Delete removes a partner profile.
// Access Control: Admin only.
func (h *PartnerHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.partnerService.Delete(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, partner.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "partner not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete partner"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
