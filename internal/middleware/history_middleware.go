package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/core"
	"fooddelight-backend-go/internal/models"
)

// maxCapturedBody bounds how much of a request or response body is kept for
// the history record's data payload. Larger bodies are truncated in the
// capture only; the client traffic itself is never touched.
const maxCapturedBody = 64 << 10

// persistTimeout bounds each deferred history write.
const persistTimeout = 10 * time.Second

// RequestInfo is an immutable snapshot of a finished request, taken after the
// response was written. Describe functions run on the recorder's worker
// goroutine and must use this snapshot instead of the gin context, which is
// recycled once the request completes.
type RequestInfo struct {
	Method   string
	Path     string
	Params   map[string]string
	Query    map[string]string
	Form     map[string]string
	Body     map[string]interface{} // parsed JSON request body, if any
	ClientIP string
	UserID   string
}

// Param returns the named route parameter, or "" if absent.
func (r *RequestInfo) Param(name string) string {
	return r.Params[name]
}

// FormValue returns the named form field from the captured request, falling
// back to the parsed JSON body.
func (r *RequestInfo) FormValue(name string) string {
	if v, ok := r.Form[name]; ok {
		return v
	}
	if r.Body != nil {
		if v, ok := r.Body[name].(string); ok {
			return v
		}
	}
	return ""
}

// DescribeFunc builds a human-readable description of a completed action from
// the request snapshot and the JSON response body. It may do its own I/O (it
// runs off the request path); errors trigger a generic fallback description,
// never a dropped record.
type DescribeFunc func(req *RequestInfo, responseBody []byte) (string, error)

// Describe adapts a fixed string to a DescribeFunc.
func Describe(text string) DescribeFunc {
	return func(*RequestInfo, []byte) (string, error) {
		return text, nil
	}
}

// historyJob is one queued deferred write.
type historyJob struct {
	actionType models.ActionType
	describe   DescribeFunc
	req        *RequestInfo
	respBody   []byte
}

// HistoryRecorder attaches activity logging to route handlers. On a
// successful response (status < 400) it snapshots the request, queues a job
// on a bounded channel, and a background worker resolves the description and
// persists the record. The response is sent exactly once, with its original
// body and status, whatever happens to the logging side; persistence failures
// go to the diagnostic logger only.
type HistoryRecorder struct {
	history   core.HistoryService
	logger    *zap.Logger
	jobs      chan historyJob
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewHistoryRecorder creates a recorder and starts its worker. queueSize
// bounds the number of pending deferred writes; when the queue is full new
// records are dropped with a diagnostic log (best-effort audit trail, by
// contract).
func NewHistoryRecorder(history core.HistoryService, logger *zap.Logger, queueSize int) *HistoryRecorder {
	if logger == nil {
		panic("HistoryRecorder requires a non-nil zap.Logger instance")
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	r := &HistoryRecorder{
		history: history,
		logger:  logger,
		jobs:    make(chan historyJob, queueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Record returns middleware that logs a history record after the wrapped
// handler responds successfully. describe is either Describe(fixed) or a
// computed DescribeFunc.
func (r *HistoryRecorder) Record(actionType models.ActionType, describe DescribeFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// JSON request bodies are consumed by the handler's bind; keep a copy
		// and restore a re-readable body so both sides can have it.
		var jsonBody map[string]interface{}
		if c.Request.Body != nil && strings.HasPrefix(c.ContentType(), "application/json") {
			if raw, err := io.ReadAll(c.Request.Body); err == nil {
				c.Request.Body = io.NopCloser(bytes.NewReader(raw))
				if len(raw) <= maxCapturedBody {
					_ = json.Unmarshal(raw, &jsonBody)
				}
			}
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// The response has been written; nothing below can delay or alter
		// what the client received.
		if writer.Status() >= http.StatusBadRequest {
			return
		}

		job := historyJob{
			actionType: actionType,
			describe:   describe,
			req:        snapshotRequest(c, jsonBody),
			respBody:   writer.captured.Bytes(),
		}
		select {
		case r.jobs <- job:
		default:
			r.logger.Warn("History queue full, dropping record",
				zap.String("actionType", string(actionType)),
				zap.String("path", c.Request.URL.Path),
			)
		}
	}
}

// Close stops accepting new records and blocks until queued writes have
// drained. Wired into the server's graceful shutdown.
func (r *HistoryRecorder) Close() {
	r.closeOnce.Do(func() { close(r.jobs) })
	r.wg.Wait()
}

func (r *HistoryRecorder) run() {
	defer r.wg.Done()
	for job := range r.jobs {
		r.process(job)
	}
}

// process resolves the description and persists one record. Every failure
// path still ends in exactly one Add attempt with a non-empty description.
func (r *HistoryRecorder) process(job historyJob) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	description, err := job.describe(job.req, job.respBody)
	if err != nil || description == "" {
		if err != nil {
			r.logger.Warn("History description resolution failed, using fallback",
				zap.String("actionType", string(job.actionType)),
				zap.String("path", job.req.Path),
				zap.Error(err),
			)
		}
		description = fallbackDescription(job.actionType, job.req)
	}

	data := map[string]interface{}{
		"method": job.req.Method,
		"url":    job.req.Path,
	}
	if job.req.Body != nil {
		data["requestBody"] = redactBody(job.req.Body)
	} else if len(job.req.Form) > 0 {
		form := make(map[string]interface{}, len(job.req.Form))
		for k, v := range job.req.Form {
			form[k] = v
		}
		data["requestBody"] = redactBody(form)
	}
	if resp := decodeJSONObject(job.respBody); resp != nil {
		data["responseData"] = resp
	}

	if _, err := r.history.Add(ctx, job.actionType, description, data, job.req.UserID, job.req.ClientIP); err != nil {
		r.logger.Error("Failed to persist history record",
			zap.String("actionType", string(job.actionType)),
			zap.String("path", job.req.Path),
			zap.Error(err),
		)
	}
}

// snapshotRequest copies everything a DescribeFunc may need out of the gin
// context before the context is recycled.
func snapshotRequest(c *gin.Context, jsonBody map[string]interface{}) *RequestInfo {
	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	query := make(map[string]string)
	for k, vs := range c.Request.URL.Query() {
		if len(vs) > 0 {
			query[k] = vs[0]
		}
	}

	// PostForm is populated only if the handler parsed the form; that is
	// fine, an unparsed form was not part of the action either.
	form := make(map[string]string)
	for k, vs := range c.Request.PostForm {
		if len(vs) > 0 {
			form[k] = vs[0]
		}
	}
	if c.Request.MultipartForm != nil {
		for k, vs := range c.Request.MultipartForm.Value {
			if len(vs) > 0 {
				form[k] = vs[0]
			}
		}
	}

	return &RequestInfo{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		Params:   params,
		Query:    query,
		Form:     form,
		Body:     jsonBody,
		ClientIP: c.ClientIP(),
		UserID:   c.GetString("userID"),
	}
}

// fallbackDescription is used when description resolution fails. It still
// names the target resource when a route parameter identifies one.
func fallbackDescription(actionType models.ActionType, req *RequestInfo) string {
	if id := req.Param("id"); id != "" {
		return fmt.Sprintf("%s completed (id: %s)", actionType, id)
	}
	return fmt.Sprintf("%s completed", actionType)
}

// sensitiveFields are request-body keys whose values must never reach the
// history store.
var sensitiveFields = map[string]bool{
	"password":    true,
	"newPassword": true,
	"token":       true,
	"idToken":     true,
}

// redactBody returns a copy of body with sensitive values masked.
func redactBody(body map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(body))
	for k, v := range body {
		if sensitiveFields[k] {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = v
	}
	return out
}

func decodeJSONObject(b []byte) map[string]interface{} {
	if len(b) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

// bodyCaptureWriter tees response writes into a bounded buffer while passing
// them through untouched.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	captured bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	if room := maxCapturedBody - w.captured.Len(); room > 0 {
		if len(b) <= room {
			w.captured.Write(b)
		} else {
			w.captured.Write(b[:room])
		}
	}
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}
