package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/booking"
	"github.com/carparkly/carparkly-backend-api-final/internal/payment"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

type Handler struct {
	service  payment.Service
	bookings booking.Service
}

func NewHandler(service payment.Service, bookings booking.Service) *Handler {
	return &Handler{service: service, bookings: bookings}
}

// Create charges the booking and confirms it in one request.
func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	userID := auth.GetUserID(c)

	b, err := h.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if b.ClientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}
	if b.Status != booking.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is not payable"})
		return
	}

	p, err := h.service.Charge(ctx, payment.ChargeRequest{
		BookingID: b.ID,
		ClientID:  userID,
		Amount:    b.Amount,
		CardToken: req.CardToken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if _, err := h.bookings.Confirm(ctx, b.ID, p.ID); err != nil {
		// The booking cannot take this payment anymore, so undo the
		// charge instead of keeping the client's money.
		if refundErr := h.service.ProcessRefund(ctx, p.ID); refundErr != nil {
			log.Printf("refund of payment %s after failed confirmation: %v", p.ID, refundErr)
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPaymentResponse(p))
}

func (h *Handler) List(c *gin.Context) {
	var req ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := payment.Filter{
		BookingID: req.BookingID,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	// Non-admins only see their own payments.
	if auth.GetUserRole(c) != string(user.RoleAdmin) {
		filter.ClientID = auth.GetUserID(c)
	}

	payments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}

	items := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = NewPaymentResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if p.ClientID != auth.GetUserID(c) && auth.GetUserRole(c) != string(user.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}
