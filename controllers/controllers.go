package controllers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RohitAgrawal7/Journal-Backend/services"
	"github.com/gin-gonic/gin"
)

// maxUploadSize is the per-file boundary limit for manuscripts and CVs.
const maxUploadSize = 10 * 1024 * 1024

// respondServiceError maps service errors onto HTTP responses. Client errors
// carry their message; server-side failures return a generic payload and the
// cause stays in the log.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
	}
}

// checkUpload enforces the boundary file constraints: allowed extension set
// and the 10 MiB size ceiling. Returns a user-facing message when rejected.
func checkUpload(file *multipart.FileHeader, allowedExts map[string]bool) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		exts := make([]string, 0, len(allowedExts))
		for e := range allowedExts {
			exts = append(exts, e)
		}
		sort.Strings(exts)
		return "Only " + strings.Join(exts, ", ") + " files are allowed"
	}
	if file.Size > maxUploadSize {
		return "File size exceeds 10MB limit"
	}
	return ""
}
