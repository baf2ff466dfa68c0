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

// ContactHandler handles the public contact form and the admin inbox.
type ContactHandler struct {
	contactService core.ContactService
	logger         *zap.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(cs core.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contactService: cs, logger: logger}
}

// Submit handles POST /api/v1/contact (public). A failed notification email
// never fails the submission; the message is already stored.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to store contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit message"})
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Message received", Data: msg})
}

// List handles GET /api/v1/contact (admin), newest first.
func (h *ContactHandler) List(c *gin.Context) {
	msgs, err := h.contactService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list contact messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch messages"})
		return
	}
	if msgs == nil {
		msgs = []*models.ContactMessage{}
	}
	c.JSON(http.StatusOK, msgs)
}

// MarkRead handles PUT /api/v1/contact/:id/read (admin).
func (h *ContactHandler) MarkRead(c *gin.Context) {
	msg, err := h.contactService.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Reply handles POST /api/v1/contact/:id/reply (admin). Unlike Submit, a mail
// failure here is an error; the whole point of the call is the outbound reply.
func (h *ContactHandler) Reply(c *gin.Context) {
	var req models.ReplyContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
		return
	}

	msg, err := h.contactService.Reply(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Reply sent", Data: msg})
}

// Delete handles DELETE /api/v1/contact/:id (admin).
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contactService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Message deleted"})
}

func (h *ContactHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrContactNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Message not found"})
	case errors.Is(err, core.ErrMailDelivery):
		h.logger.Error("Contact reply mail failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to send reply email"})
	default:
		h.logger.Error("Contact operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
}

// DescribeContactSubmit summarizes a public contact submission.
func DescribeContactSubmit(req *middleware.RequestInfo, _ []byte) (string, error) {
	name := req.FormValue("name")
	if name == "" {
		return "", errors.New("contact submission carried no name")
	}
	return fmt.Sprintf("New contact message from %q <%s>", name, req.FormValue("email")), nil
}

// DescribeContactMarkRead summarizes a read-flag update.
func DescribeContactMarkRead(req *middleware.RequestInfo, _ []byte) (string, error) {
	return fmt.Sprintf("Contact message marked as read - ID: %s", req.Param("id")), nil
}

// DescribeContactReply summarizes an admin reply for the history trail.
func DescribeContactReply(req *middleware.RequestInfo, _ []byte) (string, error) {
	return fmt.Sprintf("Replied to contact message - ID: %s", req.Param("id")), nil
}

// DescribeContactDelete summarizes an inbox deletion.
func DescribeContactDelete(req *middleware.RequestInfo, _ []byte) (string, error) {
	return fmt.Sprintf("Contact message deleted - ID: %s", req.Param("id")), nil
}
