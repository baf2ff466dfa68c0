package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/core"
	"fooddelight-backend-go/internal/middleware"
	"fooddelight-backend-go/internal/models"
)

// ContentHandler handles the site-content CRUD endpoints.
type ContentHandler struct {
	contentService core.ContentService
	uploadDir      string
	logger         *zap.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(cs core.ContentService, uploadDir string, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{contentService: cs, uploadDir: uploadDir, logger: logger}
}

// List handles GET /api/v1/content (public).
func (h *ContentHandler) List(c *gin.Context) {
	items, err := h.contentService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch content"})
		return
	}
	if items == nil {
		items = []*models.Content{}
	}
	c.JSON(http.StatusOK, items)
}

// Create handles POST /api/v1/content (admin, multipart with image).
func (h *ContentHandler) Create(c *gin.Context) {
	var req models.CreateContentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
		return
	}

	imagePath, err := saveOptionalImage(c, "image", h.uploadDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid image upload", Details: err.Error()})
		return
	}

	content, err := h.contentService.Create(c.Request.Context(), req, imagePath)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, content)
}

// Update handles PUT /api/v1/content/:id (admin).
func (h *ContentHandler) Update(c *gin.Context) {
	var req models.UpdateContentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
		return
	}

	imagePath, err := saveOptionalImage(c, "image", h.uploadDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid image upload", Details: err.Error()})
		return
	}

	content, err := h.contentService.Update(c.Request.Context(), c.Param("id"), req, imagePath)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

// Delete handles DELETE /api/v1/content/:id (admin). The deleted document is
// echoed in the response so the history trail can name what was removed.
func (h *ContentHandler) Delete(c *gin.Context) {
	content, err := h.contentService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Content deleted", Data: content})
}

func (h *ContentHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrContentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Content not found"})
	case errors.Is(err, core.ErrInvalidCategory), errors.Is(err, core.ErrMissingImage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Content operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
}

// DescribeContentCreate summarizes a content creation for the history trail.
func DescribeContentCreate(req *middleware.RequestInfo, _ []byte) (string, error) {
	return fmt.Sprintf("New content created: %q in category %q",
		req.FormValue("title"), req.FormValue("category")), nil
}

// DescribeContentUpdate summarizes which fields a content update touched.
func DescribeContentUpdate(req *middleware.RequestInfo, _ []byte) (string, error) {
	var changes []string
	if v := req.FormValue("title"); v != "" {
		changes = append(changes, fmt.Sprintf("title: %q", v))
	}
	if v := req.FormValue("category"); v != "" {
		changes = append(changes, fmt.Sprintf("category: %q", v))
	}
	if v := req.FormValue("isActive"); v != "" {
		changes = append(changes, "status: "+v)
	}
	if len(changes) == 0 {
		return fmt.Sprintf("Content updated - ID: %s", req.Param("id")), nil
	}
	return fmt.Sprintf("Content updated (%s) - ID: %s", strings.Join(changes, ", "), req.Param("id")), nil
}

// DescribeContentDelete names the deleted content by title. It runs on the
// recorder's worker after the response, when the document is already gone, so
// it reads the echoed document out of the response body. A response it cannot
// parse yields an error and the recorder's ID-based fallback description.
func DescribeContentDelete(_ *middleware.RequestInfo, responseBody []byte) (string, error) {
	var resp struct {
		Data struct {
			Title    string `json:"title"`
			Category string `json:"category"`
		} `json:"data"`
	}
	if err := json.Unmarshal(responseBody, &resp); err != nil {
		return "", fmt.Errorf("failed to parse delete response: %w", err)
	}
	if resp.Data.Title == "" {
		return "", errors.New("delete response carried no title")
	}
	return fmt.Sprintf("Content deleted: %q from category %q", resp.Data.Title, resp.Data.Category), nil
}
