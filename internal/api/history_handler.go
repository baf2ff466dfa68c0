package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/core"
	"fooddelight-backend-go/internal/models"
)

// Listing caps per endpoint, matching the admin dashboard's expectations.
const (
	historyListLimit      = 500
	historyRecentLimit    = 50
	historyDateRangeLimit = 200
)

// historyDateLayout is the query-parameter date format for range queries.
const historyDateLayout = "2006-01-02"

// historyDisplayLayout is how timestamps are rendered in the flattened admin
// rows.
const historyDisplayLayout = "02 Jan 2006, 15:04"

// HistoryHandler exposes the admin-facing history query surface plus the
// manual-entry and retention-purge endpoints.
type HistoryHandler struct {
	historyService core.HistoryService
	retentionDays  int
	logger         *zap.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(hs core.HistoryService, retentionDays int, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{historyService: hs, retentionDays: retentionDays, logger: logger}
}

// List handles GET /api/v1/history. By default the admin allow-list is
// applied, hiding the VIEW_* noise; ?includeViews=true lifts it. The write
// path never enforces this list, only this read surface does.
func (h *HistoryHandler) List(c *gin.Context) {
	filter := models.HistoryFilter{}
	if c.Query("includeViews") != "true" {
		filter.ActionTypes = models.AdminVisibleActionTypes
	}

	entries, err := h.historyService.List(c.Request.Context(), filter, historyListLimit, 0)
	if err != nil {
		h.respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, flattenEntries(entries))
}

// Recent handles GET /api/v1/history/recent with a small fixed cap.
func (h *HistoryHandler) Recent(c *gin.Context) {
	entries, err := h.historyService.List(c.Request.Context(), models.HistoryFilter{}, historyRecentLimit, 0)
	if err != nil {
		h.respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, flattenEntries(entries))
}

// DateRange handles GET /api/v1/history/date-range?startDate=…&endDate=….
// Both bounds are inclusive; endDate covers the whole calendar day. A
// malformed date is a 400, never a silently ignored filter.
func (h *HistoryHandler) DateRange(c *gin.Context) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "startDate and endDate query parameters are required"})
		return
	}

	start, err := time.Parse(historyDateLayout, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid startDate", Details: "expected format " + historyDateLayout})
		return
	}
	end, err := time.Parse(historyDateLayout, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid endDate", Details: "expected format " + historyDateLayout})
		return
	}
	// Make the end bound inclusive of the whole day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	filter := models.HistoryFilter{Start: start.UTC(), End: end.UTC()}
	entries, err := h.historyService.List(c.Request.Context(), filter, historyDateRangeLimit, 0)
	if err != nil {
		h.respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, flattenEntries(entries))
}

// ByAction handles GET /api/v1/history/by-action/:actionType.
func (h *HistoryHandler) ByAction(c *gin.Context) {
	actionType := models.ActionType(c.Param("actionType"))
	if actionType == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "actionType is required"})
		return
	}

	filter := models.HistoryFilter{ActionType: actionType}
	entries, err := h.historyService.List(c.Request.Context(), filter, historyListLimit, 0)
	if err != nil {
		h.respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, flattenEntries(entries))
}

// Stats handles GET /api/v1/history/stats.
func (h *HistoryHandler) Stats(c *gin.Context) {
	stats, err := h.historyService.Stats(c.Request.Context())
	if err != nil {
		h.respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Create handles POST /api/v1/history: a manually submitted entry. Unlike
// the internal write primitive this endpoint rejects tags outside the known
// set; manual entries are typed by humans and typos here are worthless rows.
func (h *HistoryHandler) Create(c *gin.Context) {
	var req models.CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if !models.KnownActionTypes[req.ActionType] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown actionType", Details: string(req.ActionType)})
		return
	}

	record, err := h.historyService.Add(
		c.Request.Context(),
		req.ActionType,
		req.Description,
		map[string]interface{}{"manual": true},
		c.GetString("userID"),
		c.ClientIP(),
	)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid history entry", Details: err.Error()})
			return
		}
		h.logger.Error("Failed to create manual history entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create history entry"})
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "History entry created", Data: record})
}

// Purge handles DELETE /api/v1/history/purge: the administrative retention
// sweep. The cutoff is now minus the configured retention window.
func (h *HistoryHandler) Purge(c *gin.Context) {
	cutoff := time.Now().UTC().AddDate(0, 0, -h.retentionDays)
	deleted, err := h.historyService.PurgeOlderThan(c.Request.Context(), cutoff)
	if err != nil {
		h.logger.Error("History purge failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to purge history"})
		return
	}
	c.JSON(http.StatusOK, PurgeResponse{Deleted: deleted, Cutoff: cutoff.Format(time.RFC3339)})
}

func (h *HistoryHandler) respondListError(c *gin.Context, err error) {
	if errors.Is(err, core.ErrValidation) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid filter", Details: err.Error()})
		return
	}
	h.logger.Error("Failed to query history", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch history"})
}

// flattenEntries converts joined records to the {message, user, date} rows
// the dashboard renders. Always returns a non-nil slice so an empty result
// serializes as [] rather than null.
func flattenEntries(entries []*models.HistoryEntry) []HistoryEntryResponse {
	rows := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, HistoryEntryResponse{
			Message: e.Description,
			User:    e.ActorName,
			Date:    e.CreatedAt.Format(historyDisplayLayout),
		})
	}
	return rows
}
