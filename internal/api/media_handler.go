package api

import (
	"alcyxob/exercise-catalog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MediaHandler hands out presigned URLs for exercise images and videos.
type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadURLRequest names the media slot and the type of the file to upload.
type UploadURLRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=image video"`
	ContentType string `json:"contentType" binding:"required"`
}

// RequestUploadURL godoc
// @Summary Get a presigned upload URL for exercise media
// @Description Returns a URL to PUT the file to and the object key to save on the exercise or variant.
// @Tags Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UploadURLRequest true "Media kind and content type"
// @Success 200 {object} service.UploadTarget
// @Failure 400 {object} gin.H "Unsupported media"
// @Router /exercises/media/upload-url [post]
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	target, err := h.mediaService.CreateUploadURL(c.Request.Context(), userID, service.MediaKind(req.Kind), req.ContentType)
	if err != nil {
		abortWithServiceError(c, err, "Failed to generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, target)
}

// RequestDownloadURL godoc
// @Summary Get a presigned download URL for exercise media
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Param key query string true "Object key stored on the exercise or variant"
// @Success 200 {object} gin.H "downloadUrl"
// @Failure 404 {object} gin.H "Key not owned by or visible to the caller"
// @Router /exercises/media/download-url [get]
func (h *MediaHandler) RequestDownloadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	key := c.Query("key")
	if key == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'key' is required.")
		return
	}

	url, err := h.mediaService.CreateDownloadURL(c.Request.Context(), userID, key)
	if err != nil {
		abortWithServiceError(c, err, "Failed to generate download URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
