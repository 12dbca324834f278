package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shagun/internal/media"
)

const uploadField = "image"

// @Summary Upload product media
// @Description Один файл в поле image: изображение или видео
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "File"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /upload [post]
func (s *Server) upload(c *gin.Context) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded. Please select an image."})
		return
	}
	if s.uploads == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed: media store not configured"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed: " + err.Error()})
		return
	}
	defer f.Close()

	path, err := s.uploads.Upload(c, media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	switch {
	case errors.Is(err, media.ErrNoFile):
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded. Please select an image."})
	case errors.Is(err, media.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Images only!"})
	case err != nil:
		slog.ErrorContext(c, "upload failed", "file", fh.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed: " + err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"path": path})
	}
}
