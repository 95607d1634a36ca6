package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/faq"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/request"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/response"
)

type Handler struct {
	service faq.Service
}

func NewHandler(service faq.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListFaqsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := faq.Filter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list faqs"})
		return
	}

	items := make([]FaqResponse, len(list))
	for i, f := range list {
		items[i] = NewFaqResponse(f)
	}

	resp := response.NewPageResponse(items, req.Page, req.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, faq.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "faq not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get faq"})
		}
		return
	}

	c.JSON(http.StatusOK, NewFaqResponse(f))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateFaqRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.service.Create(c.Request.Context(), faq.CreateRequest{
		Question: body.Question,
		Answer:   body.Answer,
		Position: body.Position,
	})
	if err != nil {
		switch {
		case errors.Is(err, faq.ErrQuestionRequired),
			errors.Is(err, faq.ErrAnswerRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create faq"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewFaqResponse(f))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateFaqRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.service.Update(c.Request.Context(), uri.ID, faq.UpdateRequest{
		Question: body.Question,
		Answer:   body.Answer,
		Position: body.Position,
	})
	if err != nil {
		switch {
		case errors.Is(err, faq.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "faq not found"})
		case errors.Is(err, faq.ErrQuestionRequired),
			errors.Is(err, faq.ErrAnswerRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update faq"})
		}
		return
	}

	c.JSON(http.StatusOK, NewFaqResponse(f))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, faq.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "faq not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete faq"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
