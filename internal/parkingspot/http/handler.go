package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	filehttp "github.com/carparkly/carparkly-backend-api-final/internal/file/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/parkingspot"
	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
)

const (
	photoMaxSizeBytes = 5 * 1024 * 1024
)

var photoAllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

type SpotHandler struct {
	spotService    parkingspot.Service
	partnerService partner.Service
	fileHandler    *filehttp.Handler
}

func NewHandler(spotService parkingspot.Service, partnerService partner.Service, fileHandler *filehttp.Handler) *SpotHandler {
	return &SpotHandler{
		spotService:    spotService,
		partnerService: partnerService,
		fileHandler:    fileHandler,
	}
}

// resolvePartner loads the partner profile of the authenticated user.
// Mutating spot endpoints are partner-scoped, so no profile means 403.
func (h *SpotHandler) resolvePartner(c *gin.Context) (*partner.Partner, bool) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	p, err := h.partnerService.GetByUserID(c.Request.Context(), userID)
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

// Create lists a new parking spot owned by the authenticated partner.
func (h *SpotHandler) Create(c *gin.Context) {
	var req CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	sp, err := h.spotService.Create(c.Request.Context(), p.ID, parkingspot.CreateRequest{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PricePerHour: req.PricePerHour,
		Photos:       req.Photos,
	})
	if err != nil {
		switch {
		case errors.Is(err, parkingspot.ErrNameRequired), errors.Is(err, parkingspot.ErrInvalidPrice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create parking spot"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewSpotResponse(sp))
}

// List browses parking spots. Public endpoint.
func (h *SpotHandler) List(c *gin.Context) {
	var req ListSpotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := parkingspot.Filter{
		PartnerID: req.PartnerID,
		City:      req.City,
		Keyword:   req.Keyword,
		Status:    req.Status,
		MaxPrice:  req.MaxPrice,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	spots, total, err := h.spotService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list parking spots"})
		return
	}

	items := make([]SpotResponse, len(spots))
	for i, sp := range spots {
		items[i] = NewSpotResponse(sp)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a parking spot by ID. Public endpoint.
func (h *SpotHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	sp, err := h.spotService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, parkingspot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "parking spot not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get parking spot"})
		}
		return
	}

	c.JSON(http.StatusOK, NewSpotResponse(sp))
}

// Update modifies a parking spot owned by the authenticated partner.
func (h *SpotHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateSpotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	var status *parkingspot.Status
	if body.Status != nil {
		st := parkingspot.Status(*body.Status)
		status = &st
	}

	sp, err := h.spotService.Update(c.Request.Context(), uri.ID, p.ID, parkingspot.UpdateRequest{
		Name:         body.Name,
		Description:  body.Description,
		Address:      body.Address,
		City:         body.City,
		Latitude:     body.Latitude,
		Longitude:    body.Longitude,
		PricePerHour: body.PricePerHour,
		Photos:       body.Photos,
		Status:       status,
	})
	if err != nil {
		switch {
		case errors.Is(err, parkingspot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "parking spot not found"})
		case errors.Is(err, parkingspot.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, parkingspot.ErrNameRequired), errors.Is(err, parkingspot.ErrInvalidPrice), errors.Is(err, parkingspot.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update parking spot"})
		}
		return
	}

	c.JSON(http.StatusOK, NewSpotResponse(sp))
}

// UploadPhoto attaches a new photo to a parking spot owned by the
// authenticated partner.
func (h *SpotHandler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	sp, err := h.spotService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, parkingspot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "parking spot not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get parking spot"})
		}
		return
	}
	if sp.PartnerID != p.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": parkingspot.ErrNotOwner.Error()})
		return
	}

	h.fileHandler.HandleFileUpload(c, filehttp.FileUploadConfig{
		FormFieldName: "photo",
		MaxSizeBytes:  photoMaxSizeBytes,
		AllowedTypes:  photoAllowedTypes,
		ResizeImage:   true,
		AfterUpload: func(ctx context.Context, fileID string) error {
			_, err := h.spotService.AddPhoto(ctx, uri.ID, p.ID, fileID)
			return err
		},
	})
}

// RemovePhoto detaches a photo from a parking spot owned by the
// authenticated partner. The underlying file stays downloadable and is
// removed separately through the files API.
func (h *SpotHandler) RemovePhoto(c *gin.Context) {
	var uri RemovePhotoRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	if _, err := h.spotService.RemovePhoto(c.Request.Context(), uri.ID, p.ID, uri.FileID); err != nil {
		switch {
		case errors.Is(err, parkingspot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "parking spot not found"})
		case errors.Is(err, parkingspot.ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, parkingspot.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove photo"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a parking spot owned by the authenticated partner.
func (h *SpotHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	p, ok := h.resolvePartner(c)
	if !ok {
		return
	}

	if err := h.spotService.Delete(c.Request.Context(), req.ID, p.ID); err != nil {
		switch {
		case errors.Is(err, parkingspot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "parking spot not found"})
		case errors.Is(err, parkingspot.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete parking spot"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
