// Package support holds messages visitors send to the marketplace team.
package support

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
)

const maxMessageLength = 5000

// ContactMessage is an enquiry from the contact form. ClientID is set when
// the sender was signed in.
type ContactMessage struct {
	shared.BaseEntity
	ClientID  *uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Subject   string
	Message   string
	Handled   bool
}

// ContactDetails is what the sender fills in
type ContactDetails struct {
	FirstName string
	LastName  string
	Email     string
	Subject   string
	Message   string
}

// NewContactMessage validates and creates an unhandled message
func NewContactMessage(clientID *uuid.UUID, d ContactDetails) (*ContactMessage, error) {
	email := strings.TrimSpace(d.Email)
	if email == "" {
		return nil, shared.InvalidInput("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.InvalidInput("email is not a valid address")
	}
	body := strings.TrimSpace(d.Message)
	if body == "" {
		return nil, shared.InvalidInput("message is required")
	}
	if len(body) > maxMessageLength {
		return nil, shared.InvalidInput("message is too long")
	}
	return &ContactMessage{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		FirstName:  strings.TrimSpace(d.FirstName),
		LastName:   strings.TrimSpace(d.LastName),
		Email:      email,
		Subject:    strings.TrimSpace(d.Subject),
		Message:    body,
	}, nil
}

// MarkHandled closes the message
func (m *ContactMessage) MarkHandled() error {
	if m.Handled {
		return shared.InvalidState("contact message is already handled")
	}
	m.Handled = true
	m.Touch()
	return nil
}
