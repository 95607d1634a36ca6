package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/file"
)

// FileUploadConfig defines the constraints for one upload endpoint.
type FileUploadConfig struct {
	FormFieldName string                                         // form field holding the file (default: "file")
	MaxSizeBytes  int64                                          // maximum file size in bytes (0 = no limit)
	AllowedTypes  []string                                       // allowed MIME types (empty = allow all)
	ResizeImage   bool                                           // re-encode as JPEG within 1000x1000
	AfterUpload   func(ctx context.Context, fileID string) error // attach the file to its owning entity
}

// HandleFileUpload is a reusable handler body for upload endpoints. It
// stores the file, runs the after-upload hook, and rolls the upload
// back when the hook fails.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	userID := auth.GetUserID(c)

	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldName + " is required"})
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       userID,
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
		ResizeImage:  config.ResizeImage,
	})
	if err != nil {
		switch {
		case errors.Is(err, file.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case errors.Is(err, file.ErrUnsupportedType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		case errors.Is(err, file.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		}
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(c.Request.Context(), f.ID); err != nil {
			// Roll back the orphaned upload before reporting the failure.
			_ = h.fileService.Delete(c.Request.Context(), f.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach uploaded file"})
			return
		}
	}

	var thumbURL *string
	if f.ThumbnailPath != nil {
		t := file.ThumbnailURL(f.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusOK, FileUploadResponse{
		Message:      "file uploaded successfully",
		FileID:       f.ID,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: thumbURL,
	})
}
