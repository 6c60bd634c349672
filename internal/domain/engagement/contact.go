package engagement

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/parkly/backend/internal/domain/shared"
)

// Contact is a write-once message submitted through the contact form
type Contact struct {
	shared.BaseEntity
	Name      string
	Email     string
	Message   string
	Timestamp time.Time
}

var contactEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NewContact creates a new contact message
func NewContact(name, email, message string) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	email = strings.TrimSpace(email)
	if !contactEmailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}

	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Message:    message,
		Timestamp:  time.Now(),
	}, nil
}

// ContactRepository persists contact messages
type ContactRepository interface {
	// Create appends a contact message
	Create(ctx context.Context, contact *Contact) error

	// FindAll returns contact messages, newest first
	FindAll(ctx context.Context, page, pageSize int) ([]*Contact, int64, error)
}
