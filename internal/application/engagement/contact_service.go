package engagement

import (
	"context"

	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/engagement"
)

// ContactService handles contact form submissions
type ContactService struct {
	contactRepo engagement.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(contactRepo engagement.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// SubmitContact records a contact form message
func (s *ContactService) SubmitContact(ctx context.Context, input SubmitContactInput) (*ContactView, error) {
	contact, err := engagement.NewContact(input.Name, input.Email, input.Message)
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		s.logger.Error("Failed to save contact message", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Contact message received",
		zap.String("contact_id", contact.ID.String()),
		zap.String("email", contact.Email))

	view := newContactView(contact)
	return &view, nil
}

// ListContacts returns contact messages for the staff inbox, newest first
func (s *ContactService) ListContacts(ctx context.Context, page, pageSize int) ([]ContactView, int64, error) {
	contacts, total, err := s.contactRepo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ContactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, newContactView(c))
	}
	return views, total, nil
}
