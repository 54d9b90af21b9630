package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
)

// Client is the marketplace profile of an account, one per account
type Client struct {
	shared.BaseEntity
	AccountID  uuid.UUID
	Phone      string
	District   string
	Location   string
	JoinDate   time.Time
	IsVerified bool
}

// NewClient creates an unverified client for the account
func NewClient(accountID uuid.UUID) (*Client, error) {
	if accountID == uuid.Nil {
		return nil, shared.InvalidInput("account ID is required")
	}
	c := &Client{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
	}
	c.JoinDate = c.CreatedAt
	return c, nil
}

// UpdateContact replaces phone, district and location
func (c *Client) UpdateContact(phone, district, location string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > 20 {
		return shared.InvalidInput("phone cannot exceed 20 characters")
	}
	if len(district) > 100 {
		return shared.InvalidInput("district cannot exceed 100 characters")
	}
	c.Phone = phone
	c.District = strings.TrimSpace(district)
	c.Location = strings.TrimSpace(location)
	c.Touch()
	return nil
}

// Verify marks the client as verified
func (c *Client) Verify() {
	c.IsVerified = true
	c.Touch()
}
