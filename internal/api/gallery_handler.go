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

// GalleryHandler handles the menu-gallery CRUD endpoints.
type GalleryHandler struct {
	galleryService core.GalleryService
	uploadDir      string
	logger         *zap.Logger
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(gs core.GalleryService, uploadDir string, logger *zap.Logger) *GalleryHandler {
	return &GalleryHandler{galleryService: gs, uploadDir: uploadDir, logger: logger}
}

// List handles GET /api/v1/gallery (public, active items only).
func (h *GalleryHandler) List(c *gin.Context) {
	h.list(c, true)
}

// ListAdmin handles GET /api/v1/gallery/all (admin, includes inactive items).
func (h *GalleryHandler) ListAdmin(c *gin.Context) {
	h.list(c, false)
}

func (h *GalleryHandler) list(c *gin.Context, activeOnly bool) {
	items, err := h.galleryService.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.logger.Error("Failed to list gallery items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch gallery"})
		return
	}
	if items == nil {
		items = []*models.GalleryItem{}
	}
	c.JSON(http.StatusOK, items)
}

// Create handles POST /api/v1/gallery (admin, multipart with image).
func (h *GalleryHandler) Create(c *gin.Context) {
	var req models.CreateGalleryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
		return
	}

	imagePath, err := saveOptionalImage(c, "image", h.uploadDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid image upload", Details: err.Error()})
		return
	}

	item, err := h.galleryService.Create(c.Request.Context(), req, imagePath)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/v1/gallery/:id (admin).
func (h *GalleryHandler) Update(c *gin.Context) {
	var req models.UpdateGalleryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
		return
	}

	imagePath, err := saveOptionalImage(c, "image", h.uploadDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid image upload", Details: err.Error()})
		return
	}

	item, err := h.galleryService.Update(c.Request.Context(), c.Param("id"), req, imagePath)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/v1/gallery/:id (admin). The deleted item is
// echoed in the response so the history trail can name what was removed.
func (h *GalleryHandler) Delete(c *gin.Context) {
	item, err := h.galleryService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Gallery item deleted", Data: item})
}

func (h *GalleryHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrGalleryItemNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Gallery item not found"})
	case errors.Is(err, core.ErrInvalidCategory), errors.Is(err, core.ErrMissingImage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Gallery operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
}

// DescribeGalleryCreate summarizes a gallery-item creation, price included,
// for the history trail.
func DescribeGalleryCreate(req *middleware.RequestInfo, _ []byte) (string, error) {
	desc := fmt.Sprintf("New gallery item created: %q in category %q",
		req.FormValue("title"), req.FormValue("category"))
	if price := req.FormValue("price"); price != "" {
		desc += fmt.Sprintf(" with price $%s", price)
	}
	return desc, nil
}

// DescribeGalleryUpdate summarizes which fields a gallery update touched.
func DescribeGalleryUpdate(req *middleware.RequestInfo, _ []byte) (string, error) {
	var changes []string
	if v := req.FormValue("title"); v != "" {
		changes = append(changes, fmt.Sprintf("title: %q", v))
	}
	if v := req.FormValue("category"); v != "" {
		changes = append(changes, fmt.Sprintf("category: %q", v))
	}
	if v := req.FormValue("price"); v != "" {
		changes = append(changes, "price: $"+v)
	}
	if v := req.FormValue("isActive"); v != "" {
		changes = append(changes, "status: "+v)
	}
	if len(changes) == 0 {
		return fmt.Sprintf("Gallery item updated - ID: %s", req.Param("id")), nil
	}
	return fmt.Sprintf("Gallery item updated (%s) - ID: %s", strings.Join(changes, ", "), req.Param("id")), nil
}

// DescribeGalleryDelete names the deleted item by reading the echoed document
// out of the response body. A response it cannot parse yields an error and
// the recorder's ID-based fallback description.
func DescribeGalleryDelete(_ *middleware.RequestInfo, responseBody []byte) (string, error) {
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
	return fmt.Sprintf("Gallery item deleted: %q from category %q", resp.Data.Title, resp.Data.Category), nil
}
