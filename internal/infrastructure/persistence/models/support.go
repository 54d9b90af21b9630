package models

import (
	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/support"
)

// ContactMessageModel is the persistence model for support.ContactMessage
type ContactMessageModel struct {
	BaseModel
	ClientID  *uuid.UUID `gorm:"type:uuid;index"`
	FirstName string     `gorm:"type:varchar(120)"`
	LastName  string     `gorm:"type:varchar(120)"`
	Email     string     `gorm:"type:varchar(254);not null"`
	Subject   string     `gorm:"type:varchar(255)"`
	Message   string     `gorm:"type:text;not null"`
	Handled   bool       `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

// ToDomain converts the model to a contact message
func (m *ContactMessageModel) ToDomain() *support.ContactMessage {
	return &support.ContactMessage{
		BaseEntity: m.ToEntity(),
		ClientID:   m.ClientID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		Subject:    m.Subject,
		Message:    m.Message,
		Handled:    m.Handled,
	}
}

// ContactMessageModelFromDomain creates a model from a contact message
func ContactMessageModelFromDomain(msg *support.ContactMessage) *ContactMessageModel {
	m := &ContactMessageModel{
		ClientID:  msg.ClientID,
		FirstName: msg.FirstName,
		LastName:  msg.LastName,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Handled:   msg.Handled,
	}
	m.SetEntity(msg.BaseEntity)
	return m
}
