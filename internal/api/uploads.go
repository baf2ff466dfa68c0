package api

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedImageExts are the upload extensions the admin forms accept.
var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// saveUploadedImage stores one uploaded image under uploadDir with a
// uuid-based filename and returns the public path it will be served at
// (e.g. "/uploads/3f1a….jpg").
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image type '%s'", ext)
	}
	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return "/uploads/" + name, nil
}

// saveOptionalImage handles the common "image may or may not be attached"
// case: it returns "" with no error when the form has no file under field.
func saveOptionalImage(c *gin.Context, field, uploadDir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil // no file attached
	}
	return saveUploadedImage(c, file, uploadDir)
}
