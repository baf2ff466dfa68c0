package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/core"
	"fooddelight-backend-go/internal/middleware"
	"fooddelight-backend-go/internal/models"
)

// maxStoryImages caps the story-section uploads accepted per submission.
const maxStoryImages = 4

// AboutHandler handles the single-document about page.
type AboutHandler struct {
	aboutService core.AboutService
	uploadDir    string
	logger       *zap.Logger
}

// NewAboutHandler creates a new AboutHandler.
func NewAboutHandler(as core.AboutService, uploadDir string, logger *zap.Logger) *AboutHandler {
	return &AboutHandler{aboutService: as, uploadDir: uploadDir, logger: logger}
}

// Get handles GET /api/v1/about (public). A never-written page is a 404, not
// an empty document.
func (h *AboutHandler) Get(c *gin.Context) {
	about, err := h.aboutService.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, core.ErrAboutNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "About page not found"})
			return
		}
		h.logger.Error("Failed to get about page", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch about page"})
		return
	}
	c.JSON(http.StatusOK, about)
}

// Upsert handles PUT /api/v1/about (admin, multipart). A banner background
// arrives under "bannerBg" and story images under "storyImages" (up to
// maxStoryImages files). Images absent from the form keep their stored values.
func (h *AboutHandler) Upsert(c *gin.Context) {
	var req models.UpsertAboutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
		return
	}

	bannerBg, err := saveOptionalImage(c, "bannerBg", h.uploadDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid banner upload", Details: err.Error()})
		return
	}

	var storyImages []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["storyImages"]
		if len(files) > maxStoryImages {
			files = files[:maxStoryImages]
		}
		for _, file := range files {
			path, err := saveUploadedImage(c, file, h.uploadDir)
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid story image upload", Details: err.Error()})
				return
			}
			storyImages = append(storyImages, path)
		}
	}

	about := &models.About{
		BannerTitle:       req.BannerTitle,
		BannerDescription: req.BannerDescription,
		BannerBg:          bannerBg,
		StoryTitle:        req.StoryTitle,
		StoryImages:       storyImages,
		Paragraph1:        req.Paragraph1,
		Paragraph2:        req.Paragraph2,
		Paragraph3:        req.Paragraph3,
	}
	saved, err := h.aboutService.Upsert(c.Request.Context(), about)
	if err != nil {
		h.logger.Error("Failed to upsert about page", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save about page"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DescribeAboutUpdate summarizes an about-page save for the history trail.
func DescribeAboutUpdate(req *middleware.RequestInfo, _ []byte) (string, error) {
	if title := req.FormValue("bannerTitle"); title != "" {
		return fmt.Sprintf("About page updated: banner %q", title), nil
	}
	return "About page updated", nil
}
