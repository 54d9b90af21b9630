package support

import (
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/support"
)

// ContactRequest is the public contact form
type ContactRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" form:"last_name" binding:"max=100"`
	Email     string `json:"email" form:"email" binding:"required,email,max=254"`
	Subject   string `json:"subject" form:"subject" binding:"max=200"`
	Message   string `json:"message" form:"message" binding:"required,max=5000"`
}

// ContactListFilter narrows the admin inbox
type ContactListFilter struct {
	Handled  *bool `form:"handled"`
	Page     int   `form:"page" binding:"omitempty,min=1"`
	PageSize int   `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ContactResponse is a contact message in API responses
type ContactResponse struct {
	ID        uuid.UUID  `json:"id"`
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Handled   bool       `json:"handled"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToContactResponse converts a domain message to its response
func ToContactResponse(m *support.ContactMessage) ContactResponse {
	return ContactResponse{
		ID:        m.ID,
		ClientID:  m.ClientID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Handled:   m.Handled,
		CreatedAt: m.CreatedAt,
	}
}

func (r ContactRequest) details() support.ContactDetails {
	return support.ContactDetails{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Subject:   r.Subject,
		Message:   r.Message,
	}
}
