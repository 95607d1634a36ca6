package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/booking"
	"github.com/carparkly/carparkly-backend-api-final/internal/docs"
	"github.com/carparkly/carparkly-backend-api-final/internal/parkingspot"
	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

type Handler struct {
	service  booking.Service
	spots    parkingspot.Service
	partners partner.Service
	users    user.Service
	currency string
}

func NewHandler(
	service booking.Service,
	spots parkingspot.Service,
	partners partner.Service,
	users user.Service,
	currency string,
) *Handler {
	return &Handler{
		service:  service,
		spots:    spots,
		partners: partners,
		users:    users,
		currency: currency,
	}
}

func isAdmin(c *gin.Context) bool {
	return auth.GetUserRole(c) == string(user.RoleAdmin)
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	filter := booking.Filter{
		ClientID:      req.ClientID,
		PartnerID:     req.PartnerID,
		ParkingSpotID: req.ParkingSpotID,
		Status:        req.Status,
		StartTime:     req.StartTimeFrom,
		EndTime:       req.StartTimeTo,
		Page:          req.Page,
		PageSize:      req.PageSize,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}

	// Admins see everything; partners are scoped to their own spots;
	// everyone else sees only their own bookings.
	switch auth.GetUserRole(c) {
	case string(user.RoleAdmin):
	case string(user.RolePartner):
		p, err := h.partners.GetByUserID(c.Request.Context(), auth.GetUserID(c))
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "partner profile required"})
			return
		}
		filter.PartnerID = p.ID
	default:
		filter.ClientID = auth.GetUserID(c)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	spot, err := h.spots.GetByID(c.Request.Context(), req.ParkingSpotID)
	if err != nil {
		if errors.Is(err, parkingspot.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parking spot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}
	if spot.Status != parkingspot.StatusAvailable {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "parking spot is not available"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		ClientID:      userID,
		ParkingSpotID: spot.ID,
		PartnerID:     spot.PartnerID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Amount:        booking.Quote(spot.PricePerHour, req.StartTime, req.EndTime),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.canAccess(c, b) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// canAccess reports whether the current user may read the booking: the
// owning client, an admin, or the partner hosting it.
func (h *Handler) canAccess(c *gin.Context, b *booking.Booking) bool {
	userID := auth.GetUserID(c)
	if userID == b.ClientID || isAdmin(c) {
		return true
	}
	p, err := h.partners.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return p.ID == b.PartnerID
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), req.ID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), uriReq.ID, booking.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Receipt(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	ctx := c.Request.Context()

	b, err := h.service.GetByID(ctx, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if b.ClientID != auth.GetUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	u, err := h.users.GetByID(ctx, b.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build receipt"})
		return
	}

	spot, err := h.spots.GetByID(ctx, b.ParkingSpotID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build receipt"})
		return
	}

	var paymentID string
	if b.PaymentID != nil {
		paymentID = *b.PaymentID
	}

	pdf, filename, err := docs.BuildBookingReceipt(docs.ReceiptData{
		BookingID:   b.ID,
		ClientName:  displayName(u),
		ClientEmail: u.Email,
		SpotName:    spot.Name,
		SpotAddress: spot.Address,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Amount:      b.Amount,
		Currency:    h.currency,
		Status:      string(b.Status),
		PaymentID:   paymentID,
		IssuedAt:    time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func displayName(u *user.User) string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Email
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
