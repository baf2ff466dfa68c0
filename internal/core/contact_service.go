package core

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/models"
)

// Custom errors for the ContactService.
var (
	ErrContactNotFound = errors.New("contact message not found")
	ErrMailDelivery    = errors.New("mail delivery failed")
)

// contactService implements the ContactService interface.
type contactService struct {
	contactRepo db.ContactRepository
	mailer      Mailer // may be nil when SMTP is not configured
	adminInbox  string
	logger      *zap.Logger
}

// NewContactService creates a new ContactService instance. mailer may be nil;
// in that case submissions and replies are stored without sending email.
func NewContactService(contactRepo db.ContactRepository, mailer Mailer, adminInbox string, logger *zap.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		mailer:      mailer,
		adminInbox:  adminInbox,
		logger:      logger,
	}
}

// Submit stores a contact-form submission and notifies the admin inbox.
// Mail failures are logged and never fail the stored message.
func (s *contactService) Submit(ctx context.Context, req models.CreateContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	if s.mailer != nil && s.adminInbox != "" {
		phone := msg.Phone
		if phone == "" {
			phone = "N/A"
		}
		body := fmt.Sprintf(
			"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Phone:</strong> %s</p><p><strong>Message:</strong></p><p>%s</p>",
			html.EscapeString(msg.Name), html.EscapeString(msg.Email),
			html.EscapeString(phone), html.EscapeString(msg.Message),
		)
		subject := fmt.Sprintf("New message from %s", msg.Name)
		if err := s.mailer.Send(ctx, s.adminInbox, subject, body); err != nil {
			s.logger.Warn("Failed to send contact notification email",
				zap.String("contactId", msg.ID), zap.Error(err))
		}
	}
	return msg, nil
}

// List returns all contact messages, newest first.
func (s *contactService) List(ctx context.Context) ([]*models.ContactMessage, error) {
	msgs, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

// MarkRead flags a contact message as read.
func (s *contactService) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	msg, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	msg.IsRead = true
	if err := s.contactRepo.Update(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to mark contact message '%s' as read: %w", id, err)
	}
	return msg, nil
}

// Reply sends a reply email to the message's sender and records the reply on
// the message. Unlike Submit, a mail failure here fails the operation: the
// admin needs to know the reply did not go out.
func (s *contactService) Reply(ctx context.Context, id string, message string) (*models.ContactMessage, error) {
	msg, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		body := fmt.Sprintf(
			"<p>Dear %s,</p><p>Thank you for contacting us. Here is our response:</p><blockquote>%s</blockquote><p>Best regards,<br>FoodDelight Team</p>",
			html.EscapeString(msg.Name), html.EscapeString(message),
		)
		if err := s.mailer.Send(ctx, msg.Email, "Re: Your message to FoodDelight", body); err != nil {
			return nil, fmt.Errorf("%w: reply for contact '%s': %v", ErrMailDelivery, id, err)
		}
	}

	now := time.Now().UTC()
	msg.IsReplied = true
	msg.ReplyMessage = message
	msg.RepliedAt = &now
	if err := s.contactRepo.Update(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to record reply on contact message '%s': %w", id, err)
	}
	return msg, nil
}

// Delete removes a contact message by ID.
func (s *contactService) Delete(ctx context.Context, id string) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact message '%s': %w", id, err)
	}
	return nil
}

func (s *contactService) getByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	msg, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrContactNotFound, id)
		}
		return nil, fmt.Errorf("failed to get contact message '%s': %w", id, err)
	}
	return msg, nil
}
