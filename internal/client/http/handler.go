package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/client"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
)

type ClientHandler struct {
	clientService client.Service
}

func NewHandler(clientService client.Service) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create creates the client profile for the authenticated user.
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
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

	cl, err := h.clientService.Create(c.Request.Context(), userID, client.CreateRequest{
		FullName:      req.FullName,
		Phone:         req.Phone,
		LicensePlates: req.LicensePlates,
	})
	if err != nil {
		switch {
		case errors.Is(err, client.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, client.ErrFullNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client profile"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewClientResponse(cl))
}

// Me returns the client profile of the authenticated user.
func (h *ClientHandler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	cl, err := h.clientService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client profile"})
		}
		return
	}

	c.JSON(http.StatusOK, NewClientResponse(cl))
}

// UpdateMe updates the client profile of the authenticated user.
func (h *ClientHandler) UpdateMe(c *gin.Context) {
	var req UpdateClientRequest
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

	cl, err := h.clientService.UpdateByUserID(c.Request.Context(), userID, client.UpdateRequest{
		FullName:      req.FullName,
		Phone:         req.Phone,
		LicensePlates: req.LicensePlates,
	})
	if err != nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client profile not found"})
		case errors.Is(err, client.ErrFullNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client profile"})
		}
		return
	}

	c.JSON(http.StatusOK, NewClientResponse(cl))
}

// List retrieves a paginated list of client profiles.
// Access Control: Admin only.
func (h *ClientHandler) List(c *gin.Context) {
	var req ListClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := client.Filter{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: req.SortOrder,
	}

	clients, total, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list client profiles"})
		return
	}

	items := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		items[i] = NewClientResponse(cl)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a client profile by ID.
// Access Control: Admin only.
func (h *ClientHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	cl, err := h.clientService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client profile"})
		}
		return
	}

	c.JSON(http.StatusOK, NewClientResponse(cl))
}

// Delete removes a client profile.
// Access Control: Admin only.
func (h *ClientHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete client profile"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
