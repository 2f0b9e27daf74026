package controller

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/internal/middleware"
)

type UploadController struct {
	media service.MediaService
}

func NewUploadController(media service.MediaService) *UploadController {
	return &UploadController{
		media: media,
	}
}

// Upload stores a design image and returns its attachment
// POST /api/v1/uploads (multipart field "file")
func (ctrl *UploadController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Upload without file", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.UploadFailed, "Multipart field \"file\" is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err)
		apperrors.BadRequest(c, apperrors.UploadFailed, "Uploaded file could not be read")
		return
	}
	defer file.Close()

	attachment, err := ctrl.media.Upload(c.Request.Context(), service.UploadInput{
		UploaderID:  userID,
		Filename:    filepath.Base(fileHeader.Filename),
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, err, "attachment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"attachment": attachment,
	})
}

// GetAttachment returns attachment metadata
// GET /api/v1/uploads/:id
func (ctrl *UploadController) GetAttachment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attachment, err := ctrl.media.Resolve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "attachment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attachment": attachment,
	})
}
