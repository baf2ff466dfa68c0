package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/models"
)

// capturingHistoryService records every Add call.
type capturingHistoryService struct {
	mu    sync.Mutex
	adds  []addCall
	fail  bool
	block chan struct{} // when non-nil, Add waits until closed
}

type addCall struct {
	actionType  models.ActionType
	description string
	data        map[string]interface{}
	userID      string
	ipAddress   string
}

func (s *capturingHistoryService) Add(_ context.Context, actionType models.ActionType, description string, data map[string]interface{}, userID, ipAddress string) (*models.HistoryRecord, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("store down")
	}
	s.adds = append(s.adds, addCall{actionType, description, data, userID, ipAddress})
	return &models.HistoryRecord{ID: "rec"}, nil
}

func (s *capturingHistoryService) List(context.Context, models.HistoryFilter, int, int) ([]*models.HistoryEntry, error) {
	return nil, nil
}

func (s *capturingHistoryService) Stats(context.Context) (*models.HistoryStats, error) {
	return nil, nil
}

func (s *capturingHistoryService) PurgeOlderThan(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (s *capturingHistoryService) calls() []addCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]addCall, len(s.adds))
	copy(out, s.adds)
	return out
}

func newRecorderRouter(t *testing.T, svc *capturingHistoryService, queueSize int) (*HistoryRecorder, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := NewHistoryRecorder(svc, zap.NewNop(), queueSize)
	return recorder, gin.New()
}

func TestRecorderLogsSuccessfulResponse(t *testing.T) {
	svc := &capturingHistoryService{}
	recorder, router := newRecorderRouter(t, svc, 8)

	router.POST("/content",
		recorder.Record(models.ActionCreateContent, Describe("New content created")),
		func(c *gin.Context) {
			c.Set("userID", "admin-1")
			c.JSON(http.StatusCreated, gin.H{"id": "c1"})
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/content", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"c1"}`, w.Body.String())

	recorder.Close()
	calls := svc.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.ActionCreateContent, calls[0].actionType)
	assert.Equal(t, "New content created", calls[0].description)
	assert.Equal(t, "admin-1", calls[0].userID)
	assert.Equal(t, "POST", calls[0].data["method"])
	assert.Equal(t, "/content", calls[0].data["url"])
	resp, ok := calls[0].data["responseData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "c1", resp["id"])
}

func TestRecorderSkipsErrorResponses(t *testing.T) {
	svc := &capturingHistoryService{}
	recorder, router := newRecorderRouter(t, svc, 8)

	router.GET("/boom",
		recorder.Record(models.ActionViewContent, Describe("viewed")),
		func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nope"})
		})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	recorder.Close()
	assert.Empty(t, svc.calls())
}

func TestRecorderUsesFallbackWhenDescribeFails(t *testing.T) {
	svc := &capturingHistoryService{}
	recorder, router := newRecorderRouter(t, svc, 8)

	failing := func(*RequestInfo, []byte) (string, error) {
		return "", errors.New("describe broke")
	}
	router.DELETE("/content/:id",
		recorder.Record(models.ActionDeleteContent, failing),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "deleted"})
		})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/content/abc123", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	recorder.Close()
	calls := svc.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "DELETE_CONTENT completed (id: abc123)", calls[0].description)
}

func TestRecorderDescribeSeesRequestSnapshot(t *testing.T) {
	svc := &capturingHistoryService{}
	recorder, router := newRecorderRouter(t, svc, 8)

	describe := func(req *RequestInfo, respBody []byte) (string, error) {
		return "updated " + req.Param("id") + " title=" + req.FormValue("title"), nil
	}
	router.PUT("/gallery/:id",
		recorder.Record(models.ActionUpdateGallery, describe),
		func(c *gin.Context) {
			// Binding consumes the JSON body; the middleware must have
			// restored it beforehand.
			var body struct {
				Title string `json:"title"`
			}
			require.NoError(t, c.ShouldBindJSON(&body))
			c.JSON(http.StatusOK, gin.H{"title": body.Title})
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/gallery/g7",
		bytes.NewReader([]byte(`{"title":"Tiramisu"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	recorder.Close()
	calls := svc.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "updated g7 title=Tiramisu", calls[0].description)
}

func TestRecorderRedactsSensitiveFields(t *testing.T) {
	svc := &capturingHistoryService{}
	recorder, router := newRecorderRouter(t, svc, 8)

	router.PUT("/settings",
		recorder.Record(models.ActionUpdateAdminSettings, Describe("Admin settings updated")),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/settings",
		strings.NewReader(`{"newEmail":"a@b.c","newPassword":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	recorder.Close()
	calls := svc.calls()
	require.Len(t, calls, 1)
	body, ok := calls[0].data["requestBody"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@b.c", body["newEmail"])
	assert.Equal(t, "[REDACTED]", body["newPassword"])
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	svc := &capturingHistoryService{block: make(chan struct{})}
	recorder, router := newRecorderRouter(t, svc, 1)

	router.GET("/view",
		recorder.Record(models.ActionViewContent, Describe("viewed")),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// First request occupies the worker, second fills the queue, the rest
	// are dropped. All responses still succeed.
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/view", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	close(svc.block)
	recorder.Close()
	assert.LessOrEqual(t, len(svc.calls()), 3)
	assert.NotEmpty(t, svc.calls())
}

func TestRecorderPersistFailureDoesNotAffectResponse(t *testing.T) {
	svc := &capturingHistoryService{fail: true}
	recorder, router := newRecorderRouter(t, svc, 8)

	router.GET("/view",
		recorder.Record(models.ActionViewContent, Describe("viewed")),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/view", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	recorder.Close()
}
